package services

import (
	"testing"

	"github.com/hackagra/mindverse-api/model"
)

func TestAssignRanks(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{UserID: 1, Score: 95},
		{UserID: 2, Score: 90},
		{UserID: 3, Score: 90},
		{UserID: 4, Score: 80},
	}

	AssignRanks(entries)

	wantRanks := []int{1, 2, 2, 4}
	for i, want := range wantRanks {
		if entries[i].Rank != want {
			t.Errorf("entry %d: expected rank %d, got %d", i, want, entries[i].Rank)
		}
	}
}

func TestAssignRanksEmpty(t *testing.T) {
	var entries []model.LeaderboardEntry
	AssignRanks(entries) // must not panic
}

func TestAssignRanksAllTied(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{UserID: 1, Score: 50},
		{UserID: 2, Score: 50},
		{UserID: 3, Score: 50},
	}

	AssignRanks(entries)

	for i := range entries {
		if entries[i].Rank != 1 {
			t.Errorf("entry %d: expected rank 1, got %d", i, entries[i].Rank)
		}
	}
}
