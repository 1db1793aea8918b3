package models

import "time"

// Interests maps a catalog category to the options a student picked in it.
type Interests map[string][]string

// Student defines the student model based on the 'students' table
type Student struct {
	ID                 int64     `json:"id" db:"id" example:"1"`
	ERNNumber          string    `json:"ern_number" db:"ern_number" example:"E100"`
	Name               string    `json:"name" db:"name" example:"Asha Rao"`
	Email              string    `json:"email" db:"email" example:"asha@x.edu"`
	Branch             string    `json:"branch" db:"branch" example:"CSE"`
	BatchYear          int       `json:"batch_year" db:"batch_year" example:"2026"`
	Section            string    `json:"section" db:"section" example:"A"`
	MobileNumber       *string   `json:"mobile_number,omitempty" db:"mobile_number" example:"9876543210"`
	Password           *string   `json:"-" db:"password"`
	FirstLogin         bool      `json:"first_login" db:"first_login" example:"true"`
	Interests          Interests `json:"interests" db:"interests"`
	ProfilePicURL      *string   `json:"profile_pic_url,omitempty" db:"profile_pic_url"`
	ProfilePicPublicID *string   `json:"profile_pic_public_id,omitempty" db:"profile_pic_public_id"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// HasPassword reports whether the row can log in.
func (s *Student) HasPassword() bool {
	return s.Password != nil && *s.Password != ""
}

// AuthorSummary is the denormalized author attached to content documents.
type AuthorSummary struct {
	ID        int64   `json:"id" example:"1"`
	Name      string  `json:"name" example:"Asha Rao"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
