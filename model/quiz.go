package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuizResult represents one completed quiz attempt. The leaderboard is
// derived from the best score per user.
type QuizResult struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UserID     uint           `gorm:"index;not null" json:"user_id"`
	Topic      string         `gorm:"type:varchar(100)" json:"topic,omitempty"`
	Score      int            `gorm:"not null" json:"score"`
	TotalMarks int            `gorm:"not null" json:"total_marks"`
	Answers    datatypes.JSON `gorm:"type:jsonb" json:"answers,omitempty"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// LeaderboardEntry is one ranked row of the quiz leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}
