package services

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hackagra/mindverse-api/model"
)

// Requires a running PostgreSQL. Set RUN_INTEGRATION_TESTS=true and the usual
// DB_* environment variables to run.
func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host,
		os.Getenv("DB_USER_NAME"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Review{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// Reviews first, FK points at users
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM users")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, senior bool) *model.User {
	t.Helper()
	user := model.User{
		Username:              username,
		Email:                 username + "@test.local",
		PasswordHash:          "x",
		Role:                  model.RoleUser,
		IsSeniorProfileActive: senior,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return &user
}

func TestSubmitReviewUpdatesAverage(t *testing.T) {
	db := integrationDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	senior := seedUser(t, db, "senior1", true)
	r1 := seedUser(t, db, "reviewer1", false)
	r2 := seedUser(t, db, "reviewer2", false)

	if _, err := svc.SubmitReview(ctx, r1.ID, senior.ID, 5, "excellent mentor"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.SubmitReview(ctx, r2.ID, senior.ID, 4, "very helpful"); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	var reloaded model.User
	if err := db.First(&reloaded, senior.ID).Error; err != nil {
		t.Fatalf("failed to reload senior: %v", err)
	}
	if math.Abs(reloaded.AverageRating-4.5) > 1e-9 {
		t.Errorf("expected average 4.5, got %v", reloaded.AverageRating)
	}
}

func TestSubmitReviewInactiveSenior(t *testing.T) {
	db := integrationDB(t)
	svc := NewReviewService(db)

	inactive := seedUser(t, db, "inactive", false)
	reviewer := seedUser(t, db, "reviewer", false)

	_, err := svc.SubmitReview(context.Background(), reviewer.ID, inactive.ID, 4, "should not land")
	if err != ErrSeniorNotFound {
		t.Errorf("expected ErrSeniorNotFound, got %v", err)
	}
}

// Concurrent submissions must serialize on the senior row so the stored
// average reflects every review.
func TestSubmitReviewConcurrent(t *testing.T) {
	db := integrationDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	senior := seedUser(t, db, "busy_senior", true)

	const n = 10
	reviewers := make([]*model.User, n)
	for i := 0; i < n; i++ {
		reviewers[i] = seedUser(t, db, fmt.Sprintf("conc_reviewer_%d", i), false)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rating := (i % 5) + 1
			if _, err := svc.SubmitReview(ctx, reviewers[i].ID, senior.ID, rating, "concurrent review"); err != nil {
				t.Errorf("review %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	var ratings []int
	if err := db.Model(&model.Review{}).Where("senior_id = ?", senior.ID).Pluck("rating", &ratings).Error; err != nil {
		t.Fatalf("failed to load ratings: %v", err)
	}
	if len(ratings) != n {
		t.Fatalf("expected %d reviews, got %d", n, len(ratings))
	}

	var reloaded model.User
	if err := db.First(&reloaded, senior.ID).Error; err != nil {
		t.Fatalf("failed to reload senior: %v", err)
	}
	if math.Abs(reloaded.AverageRating-MeanRating(ratings)) > 1e-9 {
		t.Errorf("stored average %v does not match ledger mean %v", reloaded.AverageRating, MeanRating(ratings))
	}
}

func TestReconcileAverageRatings(t *testing.T) {
	db := integrationDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	senior := seedUser(t, db, "drifted", true)
	reviewer := seedUser(t, db, "drift_reviewer", false)

	if _, err := svc.SubmitReview(ctx, reviewer.ID, senior.ID, 3, "fine"); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	// Simulate drift
	if err := db.Model(&model.User{}).Where("id = ?", senior.ID).UpdateColumn("average_rating", 1.0).Error; err != nil {
		t.Fatalf("failed to inject drift: %v", err)
	}

	updated, err := svc.ReconcileAverageRatings(ctx)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if updated < 1 {
		t.Errorf("expected at least one row repaired, got %d", updated)
	}

	var reloaded model.User
	if err := db.First(&reloaded, senior.ID).Error; err != nil {
		t.Fatalf("failed to reload senior: %v", err)
	}
	if math.Abs(reloaded.AverageRating-3.0) > 1e-9 {
		t.Errorf("expected average repaired to 3, got %v", reloaded.AverageRating)
	}
}
