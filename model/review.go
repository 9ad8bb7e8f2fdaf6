package model

import "time"

// Review is a rating+comment left by one user about a senior. Reviews are
// written once and never updated or deleted.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	SeniorID   uint      `gorm:"index;not null" json:"senior_id"`
	ReviewerID uint      `gorm:"index;not null" json:"reviewer_id"`
	Rating     int       `gorm:"not null" json:"rating"` // 1-5
	Comment    string    `gorm:"type:varchar(500);not null" json:"comment"`

	// Relationships
	Senior   User `gorm:"foreignKey:SeniorID;constraint:OnDelete:CASCADE" json:"-"`
	Reviewer User `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"reviewer,omitempty"`
}

// ReviewerInfo is the public projection of a reviewer attached to a review
// (no email or other PII).
type ReviewerInfo struct {
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// ReviewResponse represents the API response format for a review
type ReviewResponse struct {
	ID        uint          `json:"id"`
	SeniorID  uint          `json:"senior_id"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment"`
	Reviewer  *ReviewerInfo `json:"reviewer,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ToResponse converts a Review to ReviewResponse. The Reviewer relation must
// be preloaded for the reviewer projection to be populated.
func (r *Review) ToResponse() ReviewResponse {
	res := ReviewResponse{
		ID:        r.ID,
		SeniorID:  r.SeniorID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.Reviewer.ID != 0 {
		res.Reviewer = &ReviewerInfo{
			Username:          r.Reviewer.Username,
			ProfilePictureURL: r.Reviewer.ProfilePictureURL,
		}
	}
	return res
}
