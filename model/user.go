package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SeniorSubject is one entry of a senior's subject list, kept as an ordered
// JSON array on the user row (the order the senior entered them in matters
// for display).
type SeniorSubject struct {
	Subject string `json:"subject"`
	Marks   string `json:"marks"`
}

// User represents a registered user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Username     string         `gorm:"not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string         `gorm:"type:varchar(20);default:'user'" json:"role"` // user, admin

	// Senior mentorship profile
	IsSeniorProfileActive bool           `gorm:"default:false" json:"is_senior_profile_active"`
	SeniorSubjects        datatypes.JSON `gorm:"type:jsonb" json:"senior_subjects,omitempty"`
	SeniorDescription     string         `gorm:"type:text" json:"senior_description,omitempty"`
	ProfilePictureURL     string         `json:"profile_picture_url,omitempty"`
	Availability          string         `json:"availability,omitempty"`
	ConnectionLink        string         `json:"connection_link,omitempty"`
	AverageRating         float64        `gorm:"default:0" json:"average_rating"` // derived from reviews, never set by clients
	SessionsTaken         int            `gorm:"default:0" json:"sessions_taken"`
	SessionsAttended      int            `gorm:"default:0" json:"sessions_attended"`

	// Personal details
	RollNumber  string     `json:"roll_number,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Address     string     `gorm:"type:text" json:"address,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`

	// Educational details
	TenthMarks   string `json:"tenth_marks,omitempty"`
	TwelfthMarks string `json:"twelfth_marks,omitempty"`
	Course       string `json:"course,omitempty"`
	University   string `json:"university,omitempty"`

	// Social links
	LinkedinProfile  string `json:"linkedin_profile,omitempty"`
	GithubProfile    string `json:"github_profile,omitempty"`
	PortfolioWebsite string `json:"portfolio_website,omitempty"`

	// Relationships
	Reviews []Review   `gorm:"foreignKey:SeniorID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Files   []UserFile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// SubjectList decodes the stored JSON subject array. Returns an empty slice
// when the profile has no subjects or the column is empty.
func (u *User) SubjectList() []SeniorSubject {
	if len(u.SeniorSubjects) == 0 {
		return []SeniorSubject{}
	}
	var subjects []SeniorSubject
	if err := json.Unmarshal(u.SeniorSubjects, &subjects); err != nil {
		return []SeniorSubject{}
	}
	return subjects
}

// UserFile represents an uploaded file owned by a user
type UserFile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	Filename   string    `gorm:"not null" json:"filename"`
	FileURL    string    `gorm:"not null;type:text" json:"file_url"`
	SpacesKey  string    `gorm:"type:varchar(500)" json:"spaces_key,omitempty"` // empty for URLs saved from external uploads
	FileType   string    `gorm:"type:varchar(100);default:'unknown'" json:"file_type"`
	FileSize   int64     `gorm:"default:0" json:"file_size"`
	UploadedAt time.Time `gorm:"index" json:"uploaded_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
