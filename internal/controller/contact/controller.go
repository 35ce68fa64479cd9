// Package contact provides HTTP handlers for the public contact form.
package contact

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nateekarni/dsu-intensive-global/internal/database"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
	"github.com/nateekarni/dsu-intensive-global/internal/utilities"
)

// ContactController handles contact form related endpoints
type ContactController struct {
	DB *database.DBinstanceStruct
}

// NewContactController creates a new instance of ContactController
func NewContactController(db *database.DBinstanceStruct) *ContactController {
	return &ContactController{
		DB: db,
	}
}

// ContactRequest represents the request body of the public contact form.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SubmitHandler stores an incoming message from the public contact form.
// @Summary Submit a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body ContactRequest true "Message information"
// @Success 201 {object} object{message=string,contact_id=integer} "Message stored"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /contact [post]
func (cc *ContactController) SubmitHandler(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	message := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
		Status:  model.ContactStatusNew,
	}

	if err := cc.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Database error: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Message sent successfully",
		"contact_id": message.ID,
	})
}

// ListHandler lists contact messages for admins, newest first.
// @Summary List contact messages
// @Description Only admin have access to this endpoint
// @Tags Contact
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param status query string false "Filter by status: new, read or replied"
// @Success 200 {array} model.ContactMessage "Messages"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/contact [get]
func (cc *ContactController) ListHandler(c *gin.Context) {
	query := cc.DB.Model(&model.ContactMessage{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var messages []model.ContactMessage
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch messages: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, messages)
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=new read replied"`
}

// UpdateStatusHandler changes the status of one contact message.
// @Summary Update contact message status
// @Description Only admin have access to this endpoint
// @Tags Contact
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the message"
// @Param status body statusUpdateRequest true "New status"
// @Success 200 {object} model.ContactMessage "Updated message"
// @Failure 400 {object} utilities.ErrorResponse "Invalid status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Message not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/contact/{id} [patch]
func (cc *ContactController) UpdateStatusHandler(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "status must be new, read or replied",
		})
		return
	}

	message := model.ContactMessage{}
	if err := cc.DB.Where("id = ?", c.Param("id")).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve message: %s", err.Error()),
		})
		return
	}

	message.Status = req.Status
	if err := cc.DB.Save(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update message: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, message)
}
