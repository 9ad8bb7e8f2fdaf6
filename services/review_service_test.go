package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestMeanRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []int{4}, 4},
		{"uniform", []int{5, 5, 5}, 5},
		{"mixed", []int{1, 2, 3, 4, 5}, 3},
		{"fractional", []int{4, 5}, 4.5},
		{"thirds", []int{5, 4, 4}, 13.0 / 3.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MeanRating(tc.ratings)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("MeanRating(%v) = %v, want %v", tc.ratings, got, tc.want)
			}
		})
	}
}

// Input validation runs before any database access, so a nil DB is safe for
// the rejection paths.
func TestSubmitReviewValidation(t *testing.T) {
	s := NewReviewService(nil)
	ctx := context.Background()

	cases := []struct {
		name       string
		reviewerID uint
		seniorID   uint
		rating     int
		comment    string
		wantErr    error
	}{
		{"rating too low", 1, 2, 0, "fine", ErrInvalidRating},
		{"rating too high", 1, 2, 6, "fine", ErrInvalidRating},
		{"missing comment", 1, 2, 4, "", ErrCommentMissing},
		{"comment too long", 1, 2, 4, strings.Repeat("x", MaxCommentLength+1), ErrCommentTooLong},
		{"self review", 7, 7, 4, "great mentor", ErrSelfReview},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SubmitReview(ctx, tc.reviewerID, tc.seniorID, tc.rating, tc.comment)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// The limit counts characters, not bytes, so multibyte comments are not
// penalized for their encoding.
func TestSubmitReviewCommentLengthInRunes(t *testing.T) {
	s := NewReviewService(nil)
	ctx := context.Background()

	// 501 characters is over the limit regardless of encoding
	_, err := s.SubmitReview(ctx, 1, 2, 4, strings.Repeat("अ", MaxCommentLength+1))
	if !errors.Is(err, ErrCommentTooLong) {
		t.Errorf("expected ErrCommentTooLong for %d characters, got %v", MaxCommentLength+1, err)
	}

	// 400 multibyte characters exceed 500 bytes but must pass validation;
	// the nil DB then panics inside the transaction, proving it got through.
	defer func() { _ = recover() }()
	_, err = s.SubmitReview(ctx, 1, 2, 4, strings.Repeat("अ", 400))
	if errors.Is(err, ErrCommentTooLong) {
		t.Error("expected 400-character multibyte comment to be accepted")
	}
}

func TestSubmitReviewCommentAtLimit(t *testing.T) {
	s := NewReviewService(nil)

	// A comment exactly at the limit passes validation; the nil DB then
	// panics inside the transaction, which is the signal that validation
	// let it through.
	defer func() { _ = recover() }()
	_, err := s.SubmitReview(context.Background(), 1, 2, 4, strings.Repeat("x", MaxCommentLength))
	if errors.Is(err, ErrCommentTooLong) {
		t.Errorf("comment of exactly %d characters should be accepted", MaxCommentLength)
	}
}
