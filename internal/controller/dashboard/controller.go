// Package dashboard provides the admin overview endpoints. Every number is
// recomputed from the live rows on each request.
package dashboard

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
	"github.com/nateekarni/dsu-intensive-global/internal/overview"
	"github.com/nateekarni/dsu-intensive-global/internal/utilities"
)

// DefaultDeadlineWindow is the day range of the "closing soon" panel.
const DefaultDeadlineWindow = 14

// DashboardController handles admin dashboard endpoints
type DashboardController struct {
	DB *database.DBinstanceStruct
}

// NewDashboardController creates a new instance of DashboardController
func NewDashboardController(db *database.DBinstanceStruct) *DashboardController {
	return &DashboardController{
		DB: db,
	}
}

func (dc *DashboardController) loadAll(c *gin.Context) ([]model.Program, []model.Applicant, bool) {
	var programs []model.Program
	if err := dc.DB.Preload("Documents").
		Where("status <> ?", model.ProgramStatusArchived).
		Find(&programs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch programs: %s", err.Error()),
		})
		return nil, nil, false
	}

	var applicants []model.Applicant
	if err := dc.DB.Preload("Documents").Find(&applicants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applicants: %s", err.Error()),
		})
		return nil, nil, false
	}
	return programs, applicants, true
}

// GetOverview returns the dashboard headline counters, the most recent
// applications and the programs whose deadline falls inside the window.
// @Summary Get the admin dashboard overview
// @Description Only admin have access to this endpoint
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param window query integer false "Deadline window in days, default 14"
// @Param recent query integer false "Number of recent applications, default 5"
// @Success 200 {object} object{counters=overview.Counters,recent_applications=[]model.Applicant,deadline_soon=[]overview.DeadlineEntry}
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/dashboard [get]
func (dc *DashboardController) GetOverview(c *gin.Context) {
	programs, applicants, ok := dc.loadAll(c)
	if !ok {
		return
	}

	window := DefaultDeadlineWindow
	if raw := c.Query("window"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			window = parsed
		}
	}

	recent := 5
	if raw := c.Query("recent"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			recent = parsed
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"counters":            overview.CountAll(programs, applicants),
		"recent_applications": overview.RecentApplications(applicants, recent),
		"deadline_soon":       overview.DeadlineSoon(programs, time.Now(), window),
	})
}

// GetStudents returns every student that has applied, grouped with their
// application history.
// @Summary Get the students listing
// @Description Only admin have access to this endpoint
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} overview.StudentGroup "Students with their applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/students [get]
func (dc *DashboardController) GetStudents(c *gin.Context) {
	programs, applicants, ok := dc.loadAll(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, overview.StudentHistory(programs, applicants))
}
