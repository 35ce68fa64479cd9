// Package application provides HTTP handlers for program application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/nateekarni/dsu-intensive-global/internal/admission"
	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/eligibility"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
	"github.com/nateekarni/dsu-intensive-global/internal/utilities"
)

// ApplicationController handles program application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

// applicationResponse is an application decorated with the derived stage and
// its Thai status label.
type applicationResponse struct {
	Application model.Applicant         `json:"application"`
	Program     model.Program           `json:"program"`
	Stage       string                  `json:"stage"`
	Badge       eligibility.StatusBadge `json:"badge"`
}

// applicationDetailResponse additionally carries the stepper for the detail
// page.
type applicationDetailResponse struct {
	applicationResponse
	Steps []eligibility.Step `json:"steps"`
}

// ApplyHandler handles the creation of a new application by a student.
// @Summary Apply to a program
// @Description Only student user can access this endpoint. The request body may override parts of the stored profile; the merged result becomes the application snapshot.
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of program to apply to"
// @Param bio body model.StudentBio false "Overrides for the stored student profile"
// @Success 201 {object} model.Applicant "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Program not open, window closed, grade not eligible, duplicate application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as student"
// @Failure 404 {object} utilities.ErrorResponse "Program not found"
// @Failure 409 {object} utilities.ErrorResponse "Program is full"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/program/{id} [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	prog := model.Program{}
	if err := ac.DB.Preload("Documents").Where("id = ?", c.Param("id")).First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Program not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return
	}

	// Prevent duplicate applications to the same program
	existing := model.Applicant{}
	if err := ac.DB.
		Where("user_id = ? AND program_id = ?", user.ID, prog.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already applied to this program",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing application",
		})
		return
	}

	profile := model.StudentProfile{}
	if err := ac.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	// Merge request-body overrides into the stored profile snapshot.
	var override model.StudentBio
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&override); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
	}
	bio := profile.StudentBio
	utilities.MergeNonEmpty(&bio, &override)

	applicant, err := admission.NewApplicant(&prog, user.ID, bio, time.Now())
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, admission.ErrConflict) {
			status = http.StatusConflict
		}
		c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&applicant).Error; err != nil {
			return err
		}
		return tx.Model(&model.Program{}).
			Where("id = ?", prog.ID).
			UpdateColumn("current_participants", gorm.Expr("current_participants + 1")).Error
	})
	if err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid program reference: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, applicant)
}

// GetMyApplications lists every application of the logged-in student with its
// derived stage and list label.
// @Summary Get applications of the logged-in student
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} applicationResponse "Applications with stage and label"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/me [get]
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var applicants []model.Applicant
	if err := ac.DB.Preload("Documents").
		Where("user_id = ?", user.ID).
		Order("applied_at DESC").
		Find(&applicants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	responses := []applicationResponse{}
	for _, a := range applicants {
		prog := model.Program{}
		if err := ac.DB.Preload("Documents").Where("id = ?", a.ProgramID).First(&prog).Error; err != nil {
			continue
		}
		stage := eligibility.StageOf(&prog, &a)
		responses = append(responses, applicationResponse{
			Application: a,
			Program:     prog,
			Stage:       stage.String(),
			Badge:       eligibility.ListLabel(stage),
		})
	}

	c.JSON(http.StatusOK, responses)
}

// GetMyApplicationByID returns one application of the logged-in student with
// the stepper for the detail page.
// @Summary Get one application of the logged-in student
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Success 200 {object} applicationDetailResponse "Application with stage, label and steps"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id} [get]
func (ac *ApplicationController) GetMyApplicationByID(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	applicant := model.Applicant{}
	if err := ac.DB.Preload("Documents").
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	prog := model.Program{}
	if err := ac.DB.Preload("Documents").Where("id = ?", applicant.ProgramID).First(&prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return
	}

	stage := eligibility.StageOf(&prog, &applicant)
	c.JSON(http.StatusOK, applicationDetailResponse{
		applicationResponse: applicationResponse{
			Application: applicant,
			Program:     prog,
			Stage:       stage.String(),
			Badge:       eligibility.DetailLabel(stage),
		},
		Steps: eligibility.Steps(&prog, &applicant),
	})
}

// GetProfile returns the stored student profile of the logged-in user.
// @Summary Get student profile
// @Tags Student
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.StudentProfile "Stored profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /student/profile [get]
func (ac *ApplicationController) GetProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile := model.StudentProfile{}
	if err := ac.DB.Preload("User").Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile merges non-empty fields of the request body into the stored
// student profile. Application snapshots taken earlier are not touched.
// @Summary Update student profile
// @Tags Student
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param bio body model.StudentBio true "Fields to change"
// @Success 200 {object} model.StudentProfile "Updated profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /student/profile [patch]
func (ac *ApplicationController) UpdateProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var incoming model.StudentBio
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	profile := model.StudentProfile{}
	err = ac.DB.Where("user_id = ?", user.ID).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = model.StudentProfile{UserID: user.ID, StudentBio: incoming}
		if err := ac.DB.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create profile: %s", err.Error()),
			})
			return
		}
	case err == nil:
		utilities.MergeNonEmpty(&profile.StudentBio, &incoming)
		if err := ac.DB.Save(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
			})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}
