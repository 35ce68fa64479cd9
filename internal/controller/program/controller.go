// Package program provides HTTP handlers for exchange program operations.
package program

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
	"github.com/nateekarni/dsu-intensive-global/internal/utilities"
)

// ProgramController handles program related endpoints
type ProgramController struct {
	DB *database.DBinstanceStruct
}

// NewProgramController creates a new instance of ProgramController
func NewProgramController(db *database.DBinstanceStruct) *ProgramController {
	return &ProgramController{
		DB: db,
	}
}

// validateDates enforces the chronological ordering a program must satisfy
// before it can be saved.
func validateDates(info *model.EditableProgramInfo) error {
	if info.RegistrationOpen.After(info.ApplicationDeadline) {
		return errors.New("registration_open must not be after application_deadline")
	}
	if info.ApplicationDeadline.After(info.StartDate) {
		return errors.New("application_deadline must not be after start_date")
	}
	if info.StartDate.After(info.EndDate) {
		return errors.New("start_date must not be after end_date")
	}
	return nil
}

// GetPrograms fetches all non-archived programs that match query from the database
// and returns them as a JSON response.
// @Summary Get non-archived programs based on query
// @Description Every query are not required, but they have specific use defined in their description
// @Tags Program
// @Produce json
// @Param search query string false "Search from program title with substring matching and case insensitive"
// @Param status query string false "Program status field, must exactly match to get result"
// @Param continent query string false "Continent field with substring matching and case insensitive"
// @Param country query string false "Country field with substring matching and case insensitive"
// @Param admission query string false "Admission type, must exactly match to get result"
// @Param grade query integer false "Keep only programs whose eligible grades contain this grade"
// @Param tag query string false "Search if tags field contain tag param, no substring matching and case insensitive"
// @Param desc query boolean false "Sorting by application deadline in descending if true, otherwise ascending"
// @Success 200 {array} model.Program "Return non-archived program(s)"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /program [get]
func (pc *ProgramController) GetPrograms(c *gin.Context) {

	rawSearch := c.Query("search")
	rawStatus := c.Query("status")
	rawContinent := c.Query("continent")
	rawCountry := c.Query("country")
	rawAdmission := c.Query("admission")
	rawGrade := c.Query("grade")
	rawTag := c.Query("tag")
	rawDesc := c.Query("desc")

	var programs []model.Program

	result := pc.DB.Preload("Documents").
		Where("status <> ?", model.ProgramStatusArchived)

	if rawSearch != "" {
		result = result.Where("title ILIKE ?", "%"+rawSearch+"%")
	}

	if rawStatus != "" {
		result = result.Where("status = ?", rawStatus)
	}

	if rawContinent != "" {
		result = result.Where("continent ILIKE ?", "%"+rawContinent+"%")
	}

	if rawCountry != "" {
		result = result.Where("country ILIKE ?", "%"+rawCountry+"%")
	}

	if rawAdmission != "" {
		result = result.Where("admission_type = ?", rawAdmission)
	}

	if rawGrade != "" {
		grade, err := strconv.Atoi(rawGrade)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "grade query must be an integer",
			})
			return
		}
		result = result.Where("? = ANY(eligible_grades)", grade)
	}

	if rawTag != "" {
		result = result.Where("? ILIKE ANY(tags)", rawTag)
	}

	result = result.Order(clause.OrderByColumn{
		Column: clause.Column{Name: "application_deadline"},
		Desc:   strings.ToLower(rawDesc) == "true",
	}).Find(&programs)

	if err := result.Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch programs: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, programs)
}

// GetProgramByID fetches a program by its ID from the database
// and returns it as a JSON response.
// @Summary Get program by ID
// @Description Retrieve a specific program with its documents and itinerary
// @Tags Program
// @Produce json
// @Param id path integer true "ID of desired program"
// @Success 200 {object} model.Program "Return the program with the specified ID"
// @Failure 404 {object} utilities.ErrorResponse "Program not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /program/{id} [get]
func (pc *ProgramController) GetProgramByID(c *gin.Context) {
	id := c.Param("id")

	prog := model.Program{}
	if err := pc.DB.
		Preload("Documents").
		Preload("Itinerary").
		Where("id = ?", id).
		First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Program not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, prog)
}

type createProgramRequest struct {
	model.EditableProgramInfo
	Documents []model.DocumentRequirement `json:"documents"`
	Itinerary []model.ItineraryEntry      `json:"itinerary"`
}

// CreateProgramHandler handles the creation of a new program by an admin.
// @Summary Create program based on given json structure
// @Description Only admin have access to this endpoint
// @Tags Program
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Program body createProgramRequest true "Input program information"
// @Success 201 {object} model.Program "Successfully create program"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or date ordering"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /program [post]
func (pc *ProgramController) CreateProgramHandler(c *gin.Context) {

	var req createProgramRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if err := validateDates(&req.EditableProgramInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if req.Status == "" {
		req.Status = model.ProgramStatusUpcoming
	}
	if req.AdmissionType != model.AdmissionFirstCome && req.AdmissionType != model.AdmissionInterview {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "admission_type must be first-come or interview",
		})
		return
	}

	prog := model.Program{
		EditableProgramInfo: req.EditableProgramInfo,
		Documents:           req.Documents,
		Itinerary:           req.Itinerary,
	}

	if err := pc.DB.Create(&prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create program: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, prog)
}

// EditProgramHandler merges non-empty fields of the request body into an
// existing program.
// @Summary Edit an existing program
// @Description Only admin have access to this endpoint. Empty fields keep their current value.
// @Tags Program
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of program to edit"
// @Param Program body model.EditableProgramInfo true "Fields to change"
// @Success 200 {object} model.Program "Successfully edit program"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body or date ordering"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Program not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /program/{id} [patch]
func (pc *ProgramController) EditProgramHandler(c *gin.Context) {
	id := c.Param("id")

	var incoming model.EditableProgramInfo
	if err := c.ShouldBindJSON(&incoming); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	prog := model.Program{}
	if err := pc.DB.Where("id = ?", id).First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Program not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&prog.EditableProgramInfo, &incoming)

	if err := validateDates(&prog.EditableProgramInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := pc.DB.Save(&prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update program: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, prog)
}

// ArchiveProgramHandler hides a program from every listing.
// @Summary Archive a program
// @Description Only admin have access to this endpoint
// @Tags Program
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of program to archive"
// @Success 200 {object} model.Program "Successfully archive program"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Program not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /program/{id}/archive [post]
func (pc *ProgramController) ArchiveProgramHandler(c *gin.Context) {
	id := c.Param("id")

	prog := model.Program{}
	if err := pc.DB.Where("id = ?", id).First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Program not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return
	}

	prog.Status = model.ProgramStatusArchived
	if err := pc.DB.Save(&prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to archive program: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, prog)
}
