package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/parking-app/controllers"
	"github.com/yeremiapane/parking-app/models"
	"github.com/yeremiapane/parking-app/utils"
)

func setupTestDBForNotifications(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupNotificationRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", notifCtrl.GetAllNotifications)
	router.PUT("/notifications/:notif_id/read", notifCtrl.MarkAsRead)
	return router
}

func TestGetAllNotificationsLimit(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t)
	user := models.User{Email: "a@example.com", Password: "x", FullName: "A", Role: "user"}
	db.Create(&user)

	// Seed 60 notifikasi, endpoint hanya boleh mengembalikan 50 terbaru
	for i := 0; i < 60; i++ {
		db.Create(&models.Notification{UserID: user.ID, Message: fmt.Sprintf("message %d", i)})
	}

	router := setupNotificationRouter(db, user.ID)
	req, _ := http.NewRequest("GET", "/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 50)
}

func TestMarkAsRead(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t)
	user := models.User{Email: "a@example.com", Password: "x", FullName: "A", Role: "user"}
	db.Create(&user)
	notif := models.Notification{UserID: user.ID, Message: "vehicle parked"}
	db.Create(&notif)

	router := setupNotificationRouter(db, user.ID)
	url := "/notifications/" + strconv.Itoa(int(notif.ID)) + "/read"
	req, _ := http.NewRequest("PUT", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Notification
	db.First(&got, notif.ID)
	assert.True(t, got.IsRead)

	// Mark-read idempotent, tetap 200 dan tetap read
	req, _ = http.NewRequest("PUT", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	db.First(&got, notif.ID)
	assert.True(t, got.IsRead)
}

func TestMarkAsReadOtherUsersNotification(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t)
	user := models.User{Email: "a@example.com", Password: "x", FullName: "A", Role: "user"}
	other := models.User{Email: "b@example.com", Password: "x", FullName: "B", Role: "user"}
	db.Create(&user)
	db.Create(&other)
	notif := models.Notification{UserID: other.ID, Message: "not yours"}
	db.Create(&notif)

	router := setupNotificationRouter(db, user.ID)
	url := "/notifications/" + strconv.Itoa(int(notif.ID)) + "/read"
	req, _ := http.NewRequest("PUT", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
