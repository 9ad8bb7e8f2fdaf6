package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
)

// LeaderboardService derives the quiz leaderboard from stored quiz results
type LeaderboardService struct {
	db *gorm.DB
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// leaderboardRow is the raw aggregation row before ranking
type leaderboardRow struct {
	UserID   uint
	Username string
	Score    int
}

// TopScores returns the leaderboard: each user's best score, ranked. Users
// with equal scores share a rank (competition ranking).
func (s *LeaderboardService) TopScores(ctx context.Context, topic string, limit int) ([]model.LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := s.db.WithContext(ctx).
		Model(&model.QuizResult{}).
		Select("quiz_results.user_id, users.username, MAX(quiz_results.score) AS score").
		Joins("JOIN users ON users.id = quiz_results.user_id").
		Group("quiz_results.user_id, users.username").
		Order("score DESC, quiz_results.user_id ASC").
		Limit(limit)

	if topic != "" {
		query = query.Where("quiz_results.topic = ?", topic)
	}

	var rows []leaderboardRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.LeaderboardEntry{
			UserID:   row.UserID,
			Username: row.Username,
			Score:    row.Score,
		}
	}
	AssignRanks(entries)
	return entries, nil
}

// AssignRanks fills in competition ranks over entries already sorted by score
// descending. Equal scores share a rank; the next distinct score gets the
// rank it would have without ties (1, 2, 2, 4).
func AssignRanks(entries []model.LeaderboardEntry) {
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
}
