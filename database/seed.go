package database

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/auth"
)

// RunSeeds populates demo data for local development. Seeding is idempotent:
// existing users (matched by email) are left alone.
func RunSeeds(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedDemoSeniors(db); err != nil {
		return err
	}
	return nil
}

// seedAdmin creates an admin account from ADMIN_EMAIL and ADMIN_PASSWORD.
// Skipped when either variable is unset.
func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Println("Admin user already exists, skipping")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := model.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Println("Created admin user:", email)
	return nil
}

func seedDemoSeniors(db *gorm.DB) error {
	type demoSenior struct {
		username string
		subjects []model.SeniorSubject
		desc     string
	}

	seniors := []demoSenior{
		{
			username: "aarav_mentor",
			subjects: []model.SeniorSubject{{Subject: "Data Structures", Marks: "95"}, {Subject: "DBMS", Marks: "91"}},
			desc:     "Final year CSE, happy to help with placements and core subjects.",
		},
		{
			username: "priya_senior",
			subjects: []model.SeniorSubject{{Subject: "Operating Systems", Marks: "89"}, {Subject: "Networks", Marks: "93"}},
			desc:     "GATE qualified, can guide on exam prep and project work.",
		},
	}

	for _, s := range seniors {
		email := s.username + "@demo.local"

		var existing model.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			continue
		}

		hash, err := auth.HashPassword("demo-password")
		if err != nil {
			return err
		}

		raw, err := json.Marshal(s.subjects)
		if err != nil {
			return err
		}

		user := model.User{
			Username:              s.username,
			Email:                 email,
			PasswordHash:          hash,
			Role:                  model.RoleUser,
			IsSeniorProfileActive: true,
			SeniorSubjects:        datatypes.JSON(raw),
			SeniorDescription:     s.desc,
			Availability:          "weekends",
			CreatedAt:             time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed senior %s: %w", s.username, err)
		}
		fmt.Println("Created demo senior:", s.username)
	}

	return nil
}
