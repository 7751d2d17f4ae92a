package app_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"weightmelters/internal/app"
)

func newValidator(t *testing.T) *app.EntryValidator {
	t.Helper()
	return app.NewEntryValidator(app.DefaultLimits())
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *app.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	out := make(map[string]string)
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	v := newValidator(t)

	entry, err := v.Validate("2024-01-15", "75.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Date != "2024-01-15" {
		t.Errorf("expected date 2024-01-15, got %q", entry.Date)
	}
	if entry.WeightKg != 75.5 {
		t.Errorf("expected weight 75.5, got %v", entry.WeightKg)
	}
}

func TestValidate_ValidRange(t *testing.T) {
	v := newValidator(t)
	for _, weight := range []string{"30", "75.5", "150.25", "500", "199.9", "0.01", "999.99"} {
		if _, err := v.Validate("2024-01-15", weight); err != nil {
			t.Errorf("weight %s should be valid, got %v", weight, err)
		}
	}
}

func TestValidate_BadWeights(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		weight string
	}{
		{"zero", "0"},
		{"negative", "-5"},
		{"too large", "1000"},
		{"not a number", "heavy"},
		{"exponent", "1e2"},
		{"nan", "NaN"},
		{"negative nan", "-nan"},
		{"infinity", "Inf"},
		{"negative infinity", "-Infinity"},
		{"too many decimals", "75.555"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Validate("2024-01-15", tc.weight)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := fieldErrors(t, err)["weight"]; !ok {
				t.Errorf("expected weight field error, got %v", err)
			}
		})
	}
}

func TestValidate_BadDate(t *testing.T) {
	v := newValidator(t)

	for _, date := range []string{"not-a-date", "2024-13-01", "2024-02-30", "15/01/2024"} {
		_, err := v.Validate(date, "80")
		if err == nil {
			t.Fatalf("expected error for date %q", date)
		}
		if _, ok := fieldErrors(t, err)["date"]; !ok {
			t.Errorf("expected date field error for %q, got %v", date, err)
		}
	}
}

func TestValidate_EmptyFormReportsBothFields(t *testing.T) {
	v := newValidator(t)

	// Empty date defaults to today; only weight is required.
	_, err := v.Validate("", "")
	fields := fieldErrors(t, err)
	if _, ok := fields["weight"]; !ok {
		t.Errorf("expected weight error, got %v", fields)
	}

	_, err = v.Validate("garbage", "")
	fields = fieldErrors(t, err)
	if len(fields) != 2 {
		t.Errorf("expected errors on both fields, got %v", fields)
	}
}

func TestValidate_EmptyDateDefaultsToToday(t *testing.T) {
	loc := time.UTC
	limits := app.DefaultLimits()
	limits.Location = loc
	v := app.NewEntryValidator(limits)

	entry, err := v.Validate("", "80")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Now().In(loc).Format("2006-01-02")
	if entry.Date != want {
		t.Errorf("expected today %s, got %s", want, entry.Date)
	}
}

func TestValidate_ConfigurableFractionDigits(t *testing.T) {
	limits := app.DefaultLimits()
	limits.MaxFractionDigits = 1
	v := app.NewEntryValidator(limits)

	if _, err := v.Validate("2024-01-15", "250.555"); err == nil {
		t.Error("expected 250.555 rejected with max 1 fraction digit")
	}
	if _, err := v.Validate("2024-01-15", "199.9"); err != nil {
		t.Errorf("expected 199.9 accepted, got %v", err)
	}
}

func TestValidate_ConfigurableMaxWeight(t *testing.T) {
	limits := app.DefaultLimits()
	limits.MaxWeightKg = 300
	v := app.NewEntryValidator(limits)

	_, err := v.Validate("2024-01-15", "300.01")
	if err == nil {
		t.Fatal("expected weight above configured max rejected")
	}
	// The message names the configured bound, not a hardcoded one.
	if msg := fieldErrors(t, err)["weight"]; !strings.Contains(msg, "300") {
		t.Errorf("expected message to mention the 300 kg bound, got %q", msg)
	}
	if _, err := v.Validate("2024-01-15", "300"); err != nil {
		t.Errorf("expected 300 accepted, got %v", err)
	}
}
