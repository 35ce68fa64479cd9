// Package review provides the admin-side HTTP handlers that move an
// application through document review, interview and payment.
package review

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nateekarni/dsu-intensive-global/internal/admission"
	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/eligibility"
	"github.com/nateekarni/dsu-intensive-global/internal/messaging"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
	"github.com/nateekarni/dsu-intensive-global/internal/overview"
	"github.com/nateekarni/dsu-intensive-global/internal/utilities"
)

// ReviewController handles admin review related endpoints
type ReviewController struct {
	DB  *database.DBinstanceStruct
	Bus *messaging.Bus
}

// NewReviewController creates a new instance of ReviewController
func NewReviewController(db *database.DBinstanceStruct, bus *messaging.Bus) *ReviewController {
	return &ReviewController{
		DB:  db,
		Bus: bus,
	}
}

// loadApplicant fetches an applicant with its uploads and owning program, or
// writes the error response and returns false.
func (rc *ReviewController) loadApplicant(c *gin.Context, id string) (model.Applicant, model.Program, bool) {
	applicant := model.Applicant{}
	if err := rc.DB.Preload("Documents").Where("id = ?", id).First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Applicant not found"})
			return applicant, model.Program{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve applicant: %s", err.Error()),
		})
		return applicant, model.Program{}, false
	}

	prog := model.Program{}
	if err := rc.DB.Preload("Documents").Where("id = ?", applicant.ProgramID).First(&prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return applicant, prog, false
	}
	return applicant, prog, true
}

// saveAndRespond persists the mutated applicant, publishes the stage event
// when the derived stage moved, and writes the updated record.
func (rc *ReviewController) saveAndRespond(c *gin.Context, applicant *model.Applicant, prog *model.Program, before eligibility.Stage) {
	if err := rc.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(applicant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update applicant: %s", err.Error()),
		})
		return
	}

	after := eligibility.StageOf(prog, applicant)
	messaging.PublishStageChange(rc.Bus, applicant, before, after, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"application": applicant,
		"stage":       after.String(),
		"badge":       eligibility.DetailLabel(after),
	})
}

type reviewDocumentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Note     string `json:"note"`
}

// ReviewDocumentHandler records an approve/reject decision on one uploaded
// document.
// @Summary Review an uploaded document
// @Description Only admin have access to this endpoint
// @Tags Review
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the applicant"
// @Param documentId path integer true "ID of the document requirement"
// @Param decision body reviewDocumentRequest true "Decision, either approved or rejected"
// @Success 200 {object} object{application=model.Applicant,stage=string,badge=eligibility.StatusBadge}
// @Failure 400 {object} utilities.ErrorResponse "Invalid decision or no upload for the requirement"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Applicant not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applicant/{id}/document/{documentId} [patch]
func (rc *ReviewController) ReviewDocumentHandler(c *gin.Context) {
	var req reviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "decision must be approved or rejected",
		})
		return
	}

	applicant, prog, ok := rc.loadApplicant(c, c.Param("id"))
	if !ok {
		return
	}

	var documentID uint
	if _, err := fmt.Sscan(c.Param("documentId"), &documentID); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "documentId must be an integer"})
		return
	}

	before := eligibility.StageOf(&prog, &applicant)
	if err := admission.ReviewDocument(&applicant, documentID, req.Decision, req.Note, time.Now()); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, admission.ErrNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	rc.saveAndRespond(c, &applicant, &prog, before)
}

type cashPaymentRequest struct {
	Note string `json:"note"`
}

// RecordCashPaymentHandler records an in-person cash payment for an
// applicant.
// @Summary Record a cash payment
// @Description Only admin have access to this endpoint. The amount is taken from the program price.
// @Tags Review
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the applicant"
// @Param note body cashPaymentRequest false "Optional note"
// @Success 200 {object} object{application=model.Applicant,stage=string,badge=eligibility.StatusBadge}
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Applicant not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applicant/{id}/payment/cash [post]
func (rc *ReviewController) RecordCashPaymentHandler(c *gin.Context) {
	var req cashPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
			})
			return
		}
	}

	applicant, prog, ok := rc.loadApplicant(c, c.Param("id"))
	if !ok {
		return
	}

	before := eligibility.StageOf(&prog, &applicant)
	admission.RecordCashPayment(&applicant, &prog, time.Now())
	applicant.Payment.Note = req.Note

	rc.saveAndRespond(c, &applicant, &prog, before)
}

type interviewResultRequest struct {
	Result string  `json:"result" binding:"required,oneof=passed failed"`
	Score  float64 `json:"score"`
	Notes  string  `json:"notes"`
}

// RecordInterviewHandler writes the interview outcome for an applicant.
// @Summary Record an interview result
// @Description Only admin have access to this endpoint. Score must fall inside [0, max_score].
// @Tags Review
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the applicant"
// @Param result body interviewResultRequest true "Interview outcome"
// @Success 200 {object} object{application=model.Applicant,stage=string,badge=eligibility.StatusBadge}
// @Failure 400 {object} utilities.ErrorResponse "Invalid result or score out of range"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Applicant not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applicant/{id}/interview [post]
func (rc *ReviewController) RecordInterviewHandler(c *gin.Context) {
	var req interviewResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "result must be passed or failed",
		})
		return
	}

	applicant, prog, ok := rc.loadApplicant(c, c.Param("id"))
	if !ok {
		return
	}

	before := eligibility.StageOf(&prog, &applicant)
	if err := admission.RecordInterviewResult(&applicant, req.Result, req.Score, req.Notes, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	rc.saveAndRespond(c, &applicant, &prog, before)
}

// ResetInterviewHandler reopens a decided interview, moving a rejected
// applicant back into the pipeline.
// @Summary Reset an interview to pending
// @Description Only admin have access to this endpoint
// @Tags Review
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the applicant"
// @Success 200 {object} object{application=model.Applicant,stage=string,badge=eligibility.StatusBadge}
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Applicant not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applicant/{id}/interview/reset [post]
func (rc *ReviewController) ResetInterviewHandler(c *gin.Context) {
	applicant, prog, ok := rc.loadApplicant(c, c.Param("id"))
	if !ok {
		return
	}

	before := eligibility.StageOf(&prog, &applicant)
	admission.ResetInterviewToPending(&applicant)

	rc.saveAndRespond(c, &applicant, &prog, before)
}

// GetApplicantByID returns one applicant with its derived stage, label and
// stepper, for the admin detail page.
// @Summary Get applicant detail
// @Description Only admin have access to this endpoint
// @Tags Review
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the applicant"
// @Success 200 {object} object{application=model.Applicant,stage=string,badge=eligibility.StatusBadge,steps=[]eligibility.Step}
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Applicant not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applicant/{id} [get]
func (rc *ReviewController) GetApplicantByID(c *gin.Context) {
	applicant, prog, ok := rc.loadApplicant(c, c.Param("id"))
	if !ok {
		return
	}

	stage := eligibility.StageOf(&prog, &applicant)
	c.JSON(http.StatusOK, gin.H{
		"application": applicant,
		"program":     prog,
		"stage":       stage.String(),
		"badge":       eligibility.DetailLabel(stage),
		"steps":       eligibility.Steps(&prog, &applicant),
	})
}

// GetRoster returns every applicant of a program with the derived per-row
// status used by the admin roster table.
// @Summary Get the roster of a program
// @Description Only admin have access to this endpoint
// @Tags Review
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the program"
// @Success 200 {array} overview.RosterRow "Roster rows"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Program not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/program/{id}/roster [get]
func (rc *ReviewController) GetRoster(c *gin.Context) {
	prog := model.Program{}
	if err := rc.DB.Preload("Documents").Where("id = ?", c.Param("id")).First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Program not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return
	}

	var applicants []model.Applicant
	if err := rc.DB.Preload("Documents").
		Where("program_id = ?", prog.ID).
		Order("applied_at ASC").
		Find(&applicants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applicants: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, overview.Roster(&prog, applicants))
}
