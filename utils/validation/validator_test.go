package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"student@college.edu", true},
		{"first.last+tag@example.co.in", true},
		{"", false},
		{"no-at-sign", false},
		{"@missing-local.com", false},
		{"missing-domain@", false},
		{"spaces in@example.com", false},
	}

	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	if ok, _ := ValidateUsername("ab"); ok {
		t.Error("expected two-character username to be rejected")
	}
	if ok, _ := ValidateUsername("abc"); !ok {
		t.Error("expected three-character username to be accepted")
	}
	long := make([]byte, 31)
	for i := range long {
		long[i] = 'x'
	}
	if ok, _ := ValidateUsername(string(long)); ok {
		t.Error("expected 31-character username to be rejected")
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Student@College.EDU", "student@college.edu"},
		{"  padded@example.com  ", "padded@example.com"},
		{"already@lower.com", "already@lower.com"},
	}

	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("expected null bytes and padding removed, got %q", got)
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=3"`
	}

	v := NewValidator()

	if err := v.ValidateStruct(payload{Email: "a@b.com", Name: "abc"}); err != nil {
		t.Errorf("expected valid struct to pass, got %v", err)
	}

	err := v.ValidateStruct(payload{Email: "nope", Name: "x"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	fields := FormatValidationErrors(err)
	if _, ok := fields["email"]; !ok {
		t.Error("expected an error for email")
	}
	if _, ok := fields["name"]; !ok {
		t.Error("expected an error for name")
	}
}
