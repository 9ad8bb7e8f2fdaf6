package user

import (
	"encoding/json"
	"testing"

	"gorm.io/datatypes"

	"github.com/hackagra/mindverse-api/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestApplySeniorProfileOmittedFieldsUntouched(t *testing.T) {
	updates, err := applySeniorProfile(&SeniorProfileRequest{
		Description: strPtr("final year CS, happy to help"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the description and the activation side effect
	if len(updates) != 2 {
		t.Fatalf("expected exactly 2 updates, got %d: %v", len(updates), updates)
	}
	if updates["senior_description"] != "final year CS, happy to help" {
		t.Errorf("unexpected description update: %v", updates["senior_description"])
	}
}

// Every profile update activates the profile, even when the request touches
// an unrelated field or nothing at all. There is no deactivation operation.
func TestApplySeniorProfileAlwaysActivates(t *testing.T) {
	cases := []struct {
		name string
		req  SeniorProfileRequest
	}{
		{"empty request", SeniorProfileRequest{}},
		{"unrelated field", SeniorProfileRequest{Availability: strPtr("Mon-Fri")}},
		{"subjects only", SeniorProfileRequest{Subjects: &[]model.SeniorSubject{{Subject: "Maths", Marks: "90"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			updates, err := applySeniorProfile(&tc.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := updates["is_senior_profile_active"]
			if !ok {
				t.Fatal("expected is_senior_profile_active to be set")
			}
			if got != true {
				t.Errorf("expected activation, got %v", got)
			}
		})
	}
}

func TestApplySeniorProfileRejectsDeactivation(t *testing.T) {
	// The activation flag is not part of the request DTO; a client sending it
	// has no effect beyond the unconditional activation.
	var req SeniorProfileRequest
	if err := json.Unmarshal([]byte(`{"is_senior_profile_active": false, "availability": "weekends"}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updates, err := applySeniorProfile(&req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates["is_senior_profile_active"] != true {
		t.Errorf("expected profile to stay activated, got %v", updates["is_senior_profile_active"])
	}
	if updates["availability"] != "weekends" {
		t.Errorf("expected availability applied, got %v", updates["availability"])
	}
}

func TestApplySeniorProfileExplicitZeroApplied(t *testing.T) {
	updates, err := applySeniorProfile(&SeniorProfileRequest{
		SessionsTaken: intPtr(0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := updates["sessions_taken"]; !ok || got != 0 {
		t.Errorf("expected explicit zero to be applied, got %v (present=%v)", got, ok)
	}
}

func TestApplySeniorProfileNegativeSessionsRejected(t *testing.T) {
	if _, err := applySeniorProfile(&SeniorProfileRequest{SessionsTaken: intPtr(-1)}); err == nil {
		t.Error("expected negative sessions_taken to be rejected")
	}
	if _, err := applySeniorProfile(&SeniorProfileRequest{SessionsAttended: intPtr(-5)}); err == nil {
		t.Error("expected negative sessions_attended to be rejected")
	}
}

func TestApplySeniorProfileSubjectsPreserveOrder(t *testing.T) {
	subjects := []model.SeniorSubject{
		{Subject: "Maths", Marks: "92"},
		{Subject: "Physics", Marks: "88"},
		{Subject: "Chemistry", Marks: "85"},
	}

	updates, err := applySeniorProfile(&SeniorProfileRequest{Subjects: &subjects})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, ok := updates["senior_subjects"].(datatypes.JSON)
	if !ok {
		t.Fatalf("expected senior_subjects to be datatypes.JSON, got %T", updates["senior_subjects"])
	}

	var decoded []model.SeniorSubject
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("failed to decode stored subjects: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("expected 3 subjects, got %d", len(decoded))
	}
	for i, want := range []string{"Maths", "Physics", "Chemistry"} {
		if decoded[i].Subject != want {
			t.Errorf("subject %d: expected %q, got %q", i, want, decoded[i].Subject)
		}
	}
}

func TestApplySeniorProfileEmptySubjectsClears(t *testing.T) {
	subjects := []model.SeniorSubject{}
	updates, err := applySeniorProfile(&SeniorProfileRequest{Subjects: &subjects})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw := updates["senior_subjects"].(datatypes.JSON)
	if string(raw) != "[]" {
		t.Errorf("expected empty array, got %s", string(raw))
	}
}

func TestApplyDetailsDateParsing(t *testing.T) {
	updates, err := applyDetails(&DetailsRequest{DateOfBirth: strPtr("2003-05-14")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := updates["date_of_birth"]; !ok {
		t.Error("expected date_of_birth to be set")
	}

	if _, err := applyDetails(&DetailsRequest{DateOfBirth: strPtr("14/05/2003")}); err == nil {
		t.Error("expected invalid date format to be rejected")
	}

	// Explicit empty string clears the date
	updates, err = applyDetails(&DetailsRequest{DateOfBirth: strPtr("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := updates["date_of_birth"]; !ok || v != nil {
		t.Errorf("expected nil to clear date_of_birth, got %v", v)
	}
}

func TestApplyDetailsUsernameValidated(t *testing.T) {
	if _, err := applyDetails(&DetailsRequest{Username: strPtr("ab")}); err == nil {
		t.Error("expected short username to be rejected")
	}

	updates, err := applyDetails(&DetailsRequest{Username: strPtr("  valid_name  ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates["username"] != "valid_name" {
		t.Errorf("expected sanitized username, got %v", updates["username"])
	}
}
