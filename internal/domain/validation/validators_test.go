package validation

import (
	"errors"
	"testing"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name   string
		maxLen int
		value  string
		errMsg string
	}{
		{name: "valid input", maxLen: 10, value: "valid"},
		{name: "empty string", maxLen: 10, value: "", errMsg: "Please provide company"},
		{name: "whitespace only", maxLen: 10, value: "   ", errMsg: "Please provide company"},
		{name: "exceeds max length", maxLen: 5, value: "toolong", errMsg: "Company cannot exceed 5 characters."},
		{name: "exactly max length", maxLen: 5, value: "exact"},
		{name: "unicode within limit", maxLen: 5, value: "ééééé"},
		{name: "unicode exceeds limit", maxLen: 5, value: "éééééé", errMsg: "Company cannot exceed 5 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Required("Company", tt.maxLen)(tt.value); got != tt.errMsg {
				t.Errorf("Required() = %q, want %q", got, tt.errMsg)
			}
		})
	}
}

func TestRequiredRange(t *testing.T) {
	v := RequiredRange("Name", 3, 20)
	if got := v("ab"); got != "Name must be between 3 and 20 characters." {
		t.Errorf("unexpected message %q", got)
	}
	if got := v(" bob "); got != "" {
		t.Errorf("expected trimmed value to pass, got %q", got)
	}
	if got := v(""); got != "Please provide name" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestMinLength(t *testing.T) {
	v := MinLength("Password", 6)
	if got := v("12345"); got != "Password must be at least 6 characters." {
		t.Errorf("unexpected message %q", got)
	}
	if got := v("123456"); got != "" {
		t.Errorf("expected pass, got %q", got)
	}
	if got := v(""); got != "Please provide password" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestOneOf(t *testing.T) {
	v := OneOf("Status", []string{"pending", "interview", "declined"})
	tests := map[string]bool{
		"pending":  true,
		"declined": true,
		"":         true,
		"PENDING":  false,
		"accepted": false,
	}
	for in, ok := range tests {
		if got := v(in); (got == "") != ok {
			t.Errorf("OneOf(%q) = %q, want ok=%v", in, got, ok)
		}
	}
}

func TestEmail(t *testing.T) {
	v := Email("Email")
	tests := map[string]bool{
		"john@example.com":         true,
		"":                         true,
		"not-an-email":             false,
		"John <john@example.com>":  false,
		"john@example.com, x@y.io": false,
	}
	for in, ok := range tests {
		if got := v(in); (got == "") != ok {
			t.Errorf("Email(%q) = %q, want ok=%v", in, got, ok)
		}
	}
}

func TestOptional(t *testing.T) {
	v := Optional("Location", 5)
	if got := v(""); got != "" {
		t.Errorf("empty optional should pass, got %q", got)
	}
	if got := v("toolong"); got != "Location cannot exceed 5 characters." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestFieldValidator_StopsAtFirstErrorPerField(t *testing.T) {
	fv := New().Validate("password", "", MinLength("Password", 6), Optional("Password", 2))
	errs := fv.Errors()
	if len(errs) != 1 || errs["password"] != "Please provide password" {
		t.Errorf("unexpected errors %v", errs)
	}
}

func TestFieldValidator_ErrReturnsFirstInOrder(t *testing.T) {
	fv := New().
		Validate("company", "acme", Required("Company", 50)).
		Validate("position", "", Required("Position", 100)).
		Validate("status", "bogus", OneOf("Status", []string{"pending"}))

	err := fv.Err()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if verr.Field != "position" || verr.Message != "Please provide position" {
		t.Errorf("unexpected first error %+v", verr)
	}
	if len(fv.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %v", fv.Errors())
	}
}

func TestFieldValidator_NoErrors(t *testing.T) {
	if err := New().Validate("name", "ok", Required("Name", 10)).Err(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
