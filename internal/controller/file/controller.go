// Package file provides HTTP handlers for file-related operations: student
// document and payment slip uploads, admin template uploads, and downloads.
package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nateekarni/dsu-intensive-global/internal/admission"
	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/eligibility"
	"github.com/nateekarni/dsu-intensive-global/internal/messaging"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
	"github.com/nateekarni/dsu-intensive-global/internal/utilities"
)

// FileController handles file related endpoints
type FileController struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
	Bus     *messaging.Bus
}

const (
	documentObjectPrefix = "documents"
	slipObjectPrefix     = "slips"
	templateObjectPrefix = "templates"
)

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// NewFileController creates a new instance of FileController
func NewFileController(db *database.DBinstanceStruct, storage StorageClient, bus *messaging.Bus) *FileController {
	return &FileController{
		DB:      db,
		Storage: storage,
		Bus:     bus,
	}
}

// readFormFile validates and reads one multipart file field. On failure it
// writes the error response and returns nil bytes.
func readFormFile(c *gin.Context, fieldName string) ([]byte, string) {
	rawFile, err := c.FormFile(fieldName)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return nil, ""
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return nil, ""
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !allowedUploadExtensions[extension] {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return nil, ""
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return nil, ""
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close uploaded file: %v", err)
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return nil, ""
	}

	return fileBytes, extension
}

// UploadDocument stores an uploaded document for one requirement of the
// student's application. A re-upload replaces the previous file and resets
// the review to pending.
// @Summary Upload a document for an application
// @Description Only the student who owns the application can access this endpoint. Allowed extensions: .pdf, .jpg, .jpeg, .png
// @Tags File
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Param documentId path integer true "ID of the document requirement"
// @Param document formData file true "The document file"
// @Success 200 {object} model.Applicant "Successfully upload document"
// @Failure 400 {object} utilities.ErrorResponse "Invalid file or unknown requirement"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id}/document/{documentId} [post]
func (fc *FileController) UploadDocument(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	applicant := model.Applicant{}
	if err := fc.DB.Preload("Documents").
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
	if err := fc.DB.Preload("Documents").Where("id = ?", applicant.ProgramID).First(&prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return
	}

	requirementID, err := strconv.ParseUint(c.Param("documentId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "documentId must be an integer"})
		return
	}
	known := false
	for _, req := range prog.Documents {
		if req.ID == uint(requirementID) {
			known = true
			break
		}
	}
	if !known {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Unknown document requirement for this program",
		})
		return
	}

	fileBytes, extension := readFormFile(c, "document")
	if fileBytes == nil {
		return
	}

	stored := model.File{}
	if err := fc.persistFileData(&stored, fileBytes, extension, documentObjectPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store document: %s", err.Error()),
		})
		return
	}
	if err := fc.DB.Create(&stored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save file record: %s", err.Error()),
		})
		return
	}

	before := eligibility.StageOf(&prog, &applicant)
	if err := admission.UploadDocument(&applicant, uint(requirementID), fmt.Sprintf("/file/%d", stored.ID), time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := fc.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(&applicant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	after := eligibility.StageOf(&prog, &applicant)
	messaging.PublishStageChange(fc.Bus, &applicant, before, after, time.Now())

	c.JSON(http.StatusOK, applicant)
}

// UploadSlip records a bank-transfer payment with its slip for the student's
// application.
// @Summary Upload a payment slip
// @Description Only the student who owns the application can access this endpoint. The amount form field is optional and advisory.
// @Tags File
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Param slip formData file true "The slip image or PDF"
// @Param amount formData integer false "Paid amount, defaults to the program price"
// @Success 200 {object} model.Applicant "Successfully record transfer payment"
// @Failure 400 {object} utilities.ErrorResponse "Invalid file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 413 {object} utilities.ErrorResponse "File too large"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id}/payment/slip [post]
func (fc *FileController) UploadSlip(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	applicant := model.Applicant{}
	if err := fc.DB.Preload("Documents").
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
	if err := fc.DB.Preload("Documents").Where("id = ?", applicant.ProgramID).First(&prog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve program: %s", err.Error()),
		})
		return
	}

	fileBytes, extension := readFormFile(c, "slip")
	if fileBytes == nil {
		return
	}

	stored := model.File{}
	if err := fc.persistFileData(&stored, fileBytes, extension, slipObjectPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store slip: %s", err.Error()),
		})
		return
	}
	if err := fc.DB.Create(&stored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save file record: %s", err.Error()),
		})
		return
	}

	amount := prog.PriceAmount
	if raw := c.PostForm("amount"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			amount = parsed
		}
	}

	before := eligibility.StageOf(&prog, &applicant)
	if err := admission.RecordTransferPayment(&applicant, fmt.Sprintf("/file/%d", stored.ID), amount, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := fc.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(&applicant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	after := eligibility.StageOf(&prog, &applicant)
	messaging.PublishStageChange(fc.Bus, &applicant, before, after, time.Now())

	c.JSON(http.StatusOK, applicant)
}

// UploadTemplate attaches a downloadable blank form to a document
// requirement.
// @Summary Upload a template file for a document requirement
// @Description Only admin have access to this endpoint
// @Tags File
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param documentId path integer true "ID of the document requirement"
// @Param template formData file true "The template file"
// @Success 200 {object} model.DocumentRequirement "Successfully upload template"
// @Failure 400 {object} utilities.ErrorResponse "Invalid file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Document requirement not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/document/{documentId}/template [post]
func (fc *FileController) UploadTemplate(c *gin.Context) {
	requirement := model.DocumentRequirement{}
	if err := fc.DB.Where("id = ?", c.Param("documentId")).First(&requirement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Document requirement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve document requirement: %s", err.Error()),
		})
		return
	}

	fileBytes, extension := readFormFile(c, "template")
	if fileBytes == nil {
		return
	}

	stored := model.File{}
	if err := fc.persistFileData(&stored, fileBytes, extension, templateObjectPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store template: %s", err.Error()),
		})
		return
	}
	if err := fc.DB.Create(&stored).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save file record: %s", err.Error()),
		})
		return
	}

	requirement.TemplateFileID = &stored.ID
	if err := fc.DB.Save(&requirement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update document requirement: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, requirement)
}

// GetFile function retrieves a file from the database and sends it as a downloadable attachment in
// the response.
// @Summary Retrieve dowloadable attachment
// @Tags File
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of wanted file"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Given file id not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /file/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	var file model.File
	id := c.Param("id")

	if err := fc.DB.First(&file, id).Error; err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	fc.writeFileResponse(c, &file)
}

func (fc *FileController) writeFileResponse(c *gin.Context, file *model.File) {
	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+fmt.Sprint(file.ID)+file.Extension)
	c.Writer.Header().Set("Content-Type", "application/octet-stream")

	if file.StorageObjectName != nil {
		if fc.Storage == nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Cloud storage is disabled while the requested file is stored remotely",
			})
			return
		}
		reader, size, err := fc.Storage.DownloadFile(*file.StorageObjectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to download file from storage: %s", err.Error()),
			})
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("failed to close storage reader: %v", err)
			}
		}()

		if size > 0 {
			c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
		}
		if _, err := io.Copy(c.Writer, reader); err != nil {
			fc.handleWriterError(c, err)
		}
		return
	}

	c.Writer.Header().Set("Content-Length", fmt.Sprint(len(file.Content)))
	if _, err := c.Writer.Write(file.Content); err != nil {
		fc.handleWriterError(c, err)
	}
}

func (fc *FileController) handleWriterError(c *gin.Context, err error) {
	if !c.Writer.Written() {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to send file content",
		})
	} else {
		c.Abort()
	}
}

func (fc *FileController) persistFileData(file *model.File, fileBytes []byte, extension, prefix string) error {
	file.Extension = extension
	if fc.Storage == nil {
		file.Content = fileBytes
		file.StorageObjectName = nil
		return nil
	}

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), extension)
	if err := fc.Storage.UploadFile(objectName, bytes.NewReader(fileBytes)); err != nil {
		return err
	}

	file.StorageObjectName = &objectName
	file.Content = nil
	return nil
}
