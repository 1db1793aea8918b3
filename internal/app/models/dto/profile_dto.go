package dto

import "github.com/yigit/collegesocial/internal/app/models"

// ProfileResponse is the caller's full profile.
type ProfileResponse struct {
	Success bool            `json:"success" example:"true"`
	Profile *models.Student `json:"profile"`
}

// UpdateProfileRequest carries the editable profile fields. Absent fields are left as is.
type UpdateProfileRequest struct {
	ProfilePicURL      *string           `json:"profile_pic_url"`
	ProfilePicPublicID *string           `json:"profile_pic_public_id"`
	MobileNumber       *string           `json:"mobile_number" binding:"omitempty,max=20"`
	Interests          *models.Interests `json:"interests"`
}

// StudentCard is the public view of another student.
type StudentCard struct {
	ID            int64            `json:"id" example:"2"`
	Name          string           `json:"name" example:"Ravi Kumar"`
	ERNNumber     string           `json:"ern_number" example:"E101"`
	Branch        string           `json:"branch" example:"ECE"`
	BatchYear     int              `json:"batch_year" example:"2026"`
	Section       string           `json:"section" example:"B"`
	ProfilePicURL *string          `json:"profile_pic_url,omitempty"`
	Interests     models.Interests `json:"interests"`
}

// NewStudentCard projects a student onto its public card.
func NewStudentCard(s *models.Student) StudentCard {
	interests := s.Interests
	if interests == nil {
		interests = models.Interests{}
	}
	return StudentCard{
		ID:            s.ID,
		Name:          s.Name,
		ERNNumber:     s.ERNNumber,
		Branch:        s.Branch,
		BatchYear:     s.BatchYear,
		Section:       s.Section,
		ProfilePicURL: s.ProfilePicURL,
		Interests:     interests,
	}
}

// StudentResponse wraps one public card.
type StudentResponse struct {
	Success bool        `json:"success" example:"true"`
	Student StudentCard `json:"student"`
}

// StudentsResponse wraps search results.
type StudentsResponse struct {
	Success  bool          `json:"success" example:"true"`
	Students []StudentCard `json:"students"`
}

// InterestsResponse lists the interest catalog.
type InterestsResponse struct {
	Success    bool                      `json:"success" example:"true"`
	Categories []models.InterestCategory `json:"categories"`
}
