package service

import "errors"

// ErrInvalidInput marks request errors detected past the validator
// layer, e.g. enum values arriving through tri-state update fields.
var ErrInvalidInput = errors.New("invalid input")

func clampPageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
