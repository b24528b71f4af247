package service

import (
	"time"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
)

// applyOptionalString writes an optional string onto target: a value
// assigns, an explicit null clears, an absent field leaves it alone.
func applyOptionalString(field dto.Optional[string], target *string) {
	if !field.Set {
		return
	}
	if value, ok := field.Get(); ok {
		*target = value
		return
	}
	*target = ""
}

// applyOptionalTime mirrors applyOptionalString for nullable dates.
func applyOptionalTime(field dto.Optional[time.Time], target **time.Time) {
	if !field.Set {
		return
	}
	if value, ok := field.Get(); ok {
		*target = &value
		return
	}
	*target = nil
}
