package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/middleware"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
)

// ProfileService is what ProfileController needs from the profile service.
type ProfileService interface {
	Get(ctx context.Context, studentID int64) (*models.Student, error)
	Card(ctx context.Context, studentID int64) (dto.StudentCard, error)
	Search(ctx context.Context, callerID int64, query string) ([]dto.StudentCard, error)
	Update(ctx context.Context, studentID int64, req dto.UpdateProfileRequest) (*models.Student, error)
}

// InterestCatalog lists the interest catalog.
type InterestCatalog interface {
	List(ctx context.Context) ([]models.InterestCategory, error)
}

// ProfileController serves profiles, student lookup and the interest catalog.
type ProfileController struct {
	profiles  ProfileService
	interests InterestCatalog
}

// NewProfileController creates a new ProfileController
func NewProfileController(profiles ProfileService, interests InterestCatalog) *ProfileController {
	return &ProfileController{profiles: profiles, interests: interests}
}

// GetProfile returns the caller's profile
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Success 200 {object} dto.ProfileResponse "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /user/profile [get]
// @Security BearerAuth
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	student, err := c.profiles.Get(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProfileResponse{Success: true, Profile: student})
}

// UpdateProfile edits the caller's profile
// @Summary Update my profile
// @Description All fields are optional. A new picture releases the previous one from object storage first.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.ProfileResponse "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 502 {object} dto.ErrorResponse "Previous picture could not be removed"
// @Router /user/profile [put]
// @Security BearerAuth
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.profiles.Update(ctx.Request.Context(), studentID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProfileResponse{Success: true, Profile: student})
}

// GetStudent returns another student's public card
// @Summary Get a student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentResponse "Student card"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
// @Security BearerAuth
func (c *ProfileController) GetStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid student id").WithField("id"))
		return
	}

	card, err := c.profiles.Card(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentResponse{Success: true, Student: card})
}

// SearchStudents finds students by name or ERN prefix
// @Summary Search students
// @Tags students
// @Produce json
// @Param q query string true "Name or ERN prefix"
// @Success 200 {object} dto.StudentsResponse "Matches, at most 20"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students/search [get]
// @Security BearerAuth
func (c *ProfileController) SearchStudents(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	cards, err := c.profiles.Search(ctx.Request.Context(), studentID, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentsResponse{Success: true, Students: cards})
}

// ListInterests returns the interest catalog
// @Summary List interests
// @Tags profile
// @Produce json
// @Success 200 {object} dto.InterestsResponse "Catalog"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /interests [get]
// @Security BearerAuth
func (c *ProfileController) ListInterests(ctx *gin.Context) {
	catalog, err := c.interests.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if catalog == nil {
		catalog = []models.InterestCategory{}
	}
	ctx.JSON(http.StatusOK, dto.InterestsResponse{Success: true, Categories: catalog})
}
