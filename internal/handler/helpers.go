package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

const queryDateLayout = "2006-01-02"

func parseQueryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(queryDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// filterQuery reads an exact-match filter; the literal "all" means
// unfiltered and maps to the empty string.
func filterQuery(c *fiber.Ctx, key string) string {
	value := strings.TrimSpace(c.Query(key))
	if strings.EqualFold(value, "all") {
		return ""
	}
	return value
}

func userIDFromContext(c *fiber.Ctx) uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return id
		}
		if id, ok := v.(int); ok {
			if id < 0 {
				return 0
			}
			return uint(id)
		}
	}
	return 0
}

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func campusIDFromContext(c *fiber.Ctx) *uint {
	if v := c.Locals("campus_id"); v != nil {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// campusScope resolves the tenant scope for the caller. A caller with
// no campus assignment only gets the unscoped global view when they
// hold the admin role; everyone else is rejected.
func campusScope(c *fiber.Ctx) (*uint, bool) {
	if campusID := campusIDFromContext(c); campusID != nil {
		return campusID, true
	}
	if userRoleFromContext(c) == "admin" {
		return nil, true
	}
	return nil, false
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
