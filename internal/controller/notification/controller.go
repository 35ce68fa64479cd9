// Package notification provides the in-app notification feed and the
// subscriber that turns stage transitions into feed entries.
package notification

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

// NotificationController handles notification feed endpoints
type NotificationController struct {
	DB *database.DBinstanceStruct
}

// NewNotificationController creates a new instance of NotificationController
func NewNotificationController(db *database.DBinstanceStruct) *NotificationController {
	return &NotificationController{
		DB: db,
	}
}

// GetMyNotifications lists the logged-in user's notifications, newest first.
// Admins additionally see admin-wide entries.
// @Summary Get notifications of the logged-in user
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param unread query boolean false "Keep only unread notifications if true"
// @Success 200 {array} model.Notification "Notifications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notification [get]
func (nc *NotificationController) GetMyNotifications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	query := nc.DB.Model(&model.Notification{})
	if user.Role == model.RoleAdmin {
		query = query.Where("user_id = ? OR user_id IS NULL", user.ID)
	} else {
		query = query.Where("user_id = ?", user.ID)
	}

	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch notifications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead marks one notification of the logged-in user as read.
// @Summary Mark a notification as read
// @Tags Notification
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the notification"
// @Success 200 {object} model.Notification "Updated notification"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Notification not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /notification/{id}/read [post]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	notification := model.Notification{}
	query := nc.DB.Where("id = ?", c.Param("id"))
	if user.Role == model.RoleAdmin {
		query = query.Where("user_id = ? OR user_id IS NULL", user.ID)
	} else {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve notification: %s", err.Error()),
		})
		return
	}

	notification.IsRead = true
	if err := nc.DB.Save(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update notification: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, notification)
}
