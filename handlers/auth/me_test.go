package auth

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hackagra/mindverse-api/model"
)

func TestMeResponseIncludesReviews(t *testing.T) {
	user := &model.User{
		ID:       7,
		Username: "senior_b",
		Email:    "b@college.edu",
		Role:     model.RoleUser,
		Reviews: []model.Review{
			{
				ID:         1,
				SeniorID:   7,
				ReviewerID: 3,
				Rating:     5,
				Comment:    "cleared all my doubts",
				CreatedAt:  time.Now(),
				Reviewer: model.User{
					ID:       3,
					Username: "junior_a",
					Email:    "a@college.edu",
				},
			},
		},
	}

	raw, err := json.Marshal(NewMeResponse(user))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	reviews, ok := decoded["reviews"].([]interface{})
	if !ok {
		t.Fatalf("expected reviews array, got %T", decoded["reviews"])
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}

	review := reviews[0].(map[string]interface{})
	if review["rating"] != float64(5) {
		t.Errorf("expected rating 5, got %v", review["rating"])
	}
	reviewer, ok := review["reviewer"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected reviewer projection, got %T", review["reviewer"])
	}
	if reviewer["username"] != "junior_a" {
		t.Errorf("expected reviewer username junior_a, got %v", reviewer["username"])
	}

	// The reviewer projection must not leak the reviewer's email
	if strings.Contains(string(raw), "a@college.edu") {
		t.Error("reviewer email must not appear in the response")
	}
}

func TestMeResponseEmptyReviews(t *testing.T) {
	raw, err := json.Marshal(NewMeResponse(&model.User{ID: 1, Username: "fresh"}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	reviews, ok := decoded["reviews"].([]interface{})
	if !ok {
		t.Fatalf("expected reviews key even when empty, got %T", decoded["reviews"])
	}
	if len(reviews) != 0 {
		t.Errorf("expected no reviews, got %d", len(reviews))
	}
}
