package book

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return sf.Tag.Get("form")
	})
	validate.RegisterValidation("float", validateNumber)
	validate.RegisterValidation("positive", validatePositive)
	validate.RegisterValidation("nonnegative", validateNonNegative)
	validate.RegisterValidation("integer", validateInteger)
	validate.RegisterValidation("atleast", validateAtLeast)
	validate.RegisterValidation("date", validateDate)
}

// parseNumber accepts any finite decimal, exponent forms included.
func parseNumber(fl validator.FieldLevel) (float64, bool) {
	v, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func validateNumber(fl validator.FieldLevel) bool {
	_, ok := parseNumber(fl)
	return ok
}

func validatePositive(fl validator.FieldLevel) bool {
	v, ok := parseNumber(fl)
	return ok && v > 0
}

func validateNonNegative(fl validator.FieldLevel) bool {
	v, ok := parseNumber(fl)
	return ok && v >= 0
}

// validateInteger accepts whole numbers in any numeric spelling, so "3.0"
// and "1e2" pass.
func validateInteger(fl validator.FieldLevel) bool {
	v, ok := parseNumber(fl)
	return ok && v == math.Trunc(v)
}

func validateAtLeast(fl validator.FieldLevel) bool {
	limit, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		return false
	}
	v, ok := parseNumber(fl)
	return ok && v >= limit
}

// Release dates arrive either as full timestamps or as plain calendar dates.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validateDate(fl validator.FieldLevel) bool {
	_, ok := parseDate(fl.Field().String())
	return ok
}

// FieldErrors maps a form field to the message of its first violated rule.
type FieldErrors map[string]string

func validateForm(f Form) FieldErrors {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	errs := FieldErrors{}
	for _, fe := range err.(validator.ValidationErrors) {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = fieldMessage(Columns.Header(field), fe.Tag(), fe.Param())
	}
	return errs
}

func fieldMessage(label, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "float":
		return fmt.Sprintf("%s must be a number", label)
	case "positive":
		return fmt.Sprintf("%s must be positive", label)
	case "nonnegative":
		return fmt.Sprintf("%s must not be negative", label)
	case "integer":
		return fmt.Sprintf("%s must be an integer", label)
	case "atleast":
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "date":
		return fmt.Sprintf("%s must be a valid date", label)
	default:
		return fmt.Sprintf("%s is invalid", strings.TrimSpace(label))
	}
}
