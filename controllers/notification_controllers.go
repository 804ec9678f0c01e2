package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> notifikasi milik user, terbaru dulu, maksimal 50
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	var notifs []models.Notification
	if err := nc.DB.Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Limit(50).
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

// MarkAsRead -> is_read hanya bergerak false -> true
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	notifID := c.Param("notif_id")

	var notif models.Notification
	if err := nc.DB.Where("user_id = ?", currentUserID(c)).
		First(&notif, notifID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	if !notif.IsRead {
		notif.IsRead = true
		if err := nc.DB.Save(&notif).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}

// CreateNotification -> dipakai admin untuk broadcast ke user tertentu
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		UserID  uint    `json:"user_id" binding:"required"`
		Title   *string `json:"title"`
		Message string  `json:"message" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	notif := models.Notification{
		UserID:  body.UserID,
		Title:   body.Title,
		Message: body.Message,
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Notification created: %v", notif.Message)
	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}
