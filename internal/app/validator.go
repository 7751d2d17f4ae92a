package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"weightmelters/internal/domain"
)

// FieldError describes a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects the field errors for one submission. It is
// expected, user-correctable input failure, not a system fault.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid entry: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// ValidatedEntry is a submission that passed validation. Date is always a
// concrete "2006-01-02" day.
type ValidatedEntry struct {
	Date     string
	WeightKg float64
}

// EntryValidator normalizes and validates raw form values before they reach
// the store.
type EntryValidator struct {
	limits Limits
}

// NewEntryValidator creates a validator with the given limits.
func NewEntryValidator(limits Limits) *EntryValidator {
	if limits.Location == nil {
		limits.Location = time.Local
	}
	return &EntryValidator{limits: limits}
}

// Today returns the current day in the validator's configured location.
func (v *EntryValidator) Today() string {
	return time.Now().In(v.limits.Location).Format(domain.DateLayout)
}

// Validate checks a raw (date, weight) pair. An empty date defaults to
// today. On failure it returns a *ValidationError naming every bad field.
func (v *EntryValidator) Validate(rawDate, rawWeight string) (ValidatedEntry, error) {
	verr := &ValidationError{}

	date := strings.TrimSpace(rawDate)
	if date == "" {
		date = v.Today()
	} else if t, err := time.Parse(domain.DateLayout, date); err != nil {
		verr.add("date", "Enter a valid date.")
	} else {
		date = t.Format(domain.DateLayout)
	}

	weight := v.validateWeight(strings.TrimSpace(rawWeight), verr)
	if len(verr.Fields) > 0 {
		return ValidatedEntry{}, verr
	}
	return ValidatedEntry{Date: date, WeightKg: weight}, nil
}

func (v *EntryValidator) validateWeight(raw string, verr *ValidationError) float64 {
	if raw == "" {
		verr.add("weight", "This field is required.")
		return 0
	}
	// Reject exponent notation up front; the form field is a plain decimal.
	if strings.ContainsAny(raw, "eE") {
		verr.add("weight", "Enter a number.")
		return 0
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		verr.add("weight", "Enter a number.")
		return 0
	}
	// ParseFloat also accepts "NaN" and "Inf"; neither is a weight, and NaN
	// slips past every bound comparison below.
	if math.IsNaN(w) || math.IsInf(w, 0) {
		verr.add("weight", "Enter a number.")
		return 0
	}
	if frac := fractionDigits(raw); frac > v.limits.MaxFractionDigits {
		verr.add("weight", fmt.Sprintf("Ensure that there are no more than %d decimal places.", v.limits.MaxFractionDigits))
		return 0
	}
	if w < v.limits.MinWeightKg {
		verr.add("weight", "Weight must be greater than 0")
		return 0
	}
	if w > v.limits.MaxWeightKg {
		verr.add("weight", fmt.Sprintf("Weight must be no more than %s kg",
			strconv.FormatFloat(v.limits.MaxWeightKg, 'f', -1, 64)))
		return 0
	}
	return w
}

func fractionDigits(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
