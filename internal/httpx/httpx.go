// Package httpx holds the response envelope and query helpers shared by the
// Fiber handlers.
package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/logging"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"from and to are required"`
}

var ErrBadParam = errors.New("invalid query parameter")

// BadRequest writes a 400 with the given error code.
func BadRequest(c *fiber.Ctx, code string, err error) error {
	resp := ErrorResponse{Error: code}
	if err != nil {
		resp.Message = err.Error()
	}
	return c.Status(http.StatusBadRequest).JSON(resp)
}

// Unprocessable writes a 422; used when the request was valid but the data
// behind it cannot be computed over.
func Unprocessable(c *fiber.Ctx, code string, err error) error {
	return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

// Internal logs err and writes an opaque 500.
func Internal(c *fiber.Ctx, err error) error {
	logging.Error().Err(err).Str("route", c.Route().Path).Msg("request failed")
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal_server_error",
	})
}

// DataIntegrity writes a 422 for calc.DataIntegrityError. It reports false
// when err is not one.
func DataIntegrity(c *fiber.Ctx, err error) (bool, error) {
	if !errors.Is(err, calc.ErrDataIntegrity) {
		return false, nil
	}
	return true, Unprocessable(c, "data_integrity_error", err)
}

// RequiredInt64 parses a mandatory integer query parameter.
func RequiredInt64(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, missing(name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalid(name)
	}
	return v, nil
}

// OptionalFloat parses an optional float query parameter.
func OptionalFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalid(name)
	}
	return &v, nil
}

// OptionalBool parses an optional boolean query parameter.
func OptionalBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalid(name)
	}
	return &v, nil
}

// OptionalString returns nil for an absent or blank parameter.
func OptionalString(c *fiber.Ctx, name string) *string {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	return &v
}

// List splits a comma separated parameter, dropping blanks.
func List(c *fiber.Ctx, name string) []string {
	var out []string
	for _, p := range strings.Split(c.Query(name), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func missing(name string) error {
	return &paramError{name: name, reason: "is required"}
}

func invalid(name string) error {
	return &paramError{name: name, reason: "is invalid"}
}

type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string { return "'" + e.name + "' " + e.reason }
func (e *paramError) Unwrap() error { return ErrBadParam }
