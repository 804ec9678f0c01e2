package Controllers_test

import (
	"bytes"
	"encoding/json"
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

func setupTestDBForVehicles(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.ParkingSlot{}, &models.ParkingSession{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupVehicleRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	vehicleCtrl := controllers.NewVehicleController(db)
	router.GET("/vehicles", vehicleCtrl.GetAllVehicles)
	router.POST("/vehicles", vehicleCtrl.CreateVehicle)
	router.DELETE("/vehicles/:vehicle_id", vehicleCtrl.DeleteVehicle)
	return router
}

func createVehicleRequest(t *testing.T, router *gin.Engine, number, vtype string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(map[string]string{
		"vehicle_number": number,
		"vehicle_type":   vtype,
	})
	req, err := http.NewRequest("POST", "/vehicles", bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateVehicle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	user := models.User{Email: "a@example.com", Password: "x", FullName: "A", Role: "user"}
	db.Create(&user)
	router := setupVehicleRouter(db, user.ID)

	w := createVehicleRequest(t, router, "B1111AAA", models.VehicleTypeCar)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "B1111AAA", data["vehicle_number"])
}

func TestCreateVehicleDuplicateNumber(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	user := models.User{Email: "a@example.com", Password: "x", FullName: "A", Role: "user"}
	db.Create(&user)
	router := setupVehicleRouter(db, user.ID)

	w := createVehicleRequest(t, router, "B1111AAA", models.VehicleTypeCar)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = createVehicleRequest(t, router, "B1111AAA", models.VehicleTypeBike)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "vehicle already registered", response["message"])
}

func TestCreateVehicleUnknownType(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	user := models.User{Email: "a@example.com", Password: "x", FullName: "A", Role: "user"}
	db.Create(&user)
	router := setupVehicleRouter(db, user.ID)

	w := createVehicleRequest(t, router, "B2222BBB", "Spaceship")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllVehiclesScopedToUser(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	user := models.User{Email: "a@example.com", Password: "x", FullName: "A", Role: "user"}
	other := models.User{Email: "b@example.com", Password: "x", FullName: "B", Role: "user"}
	db.Create(&user)
	db.Create(&other)

	db.Create(&models.Vehicle{UserID: user.ID, VehicleNumber: "B1111AAA", VehicleType: models.VehicleTypeCar})
	db.Create(&models.Vehicle{UserID: other.ID, VehicleNumber: "B2222BBB", VehicleType: models.VehicleTypeBike})

	router := setupVehicleRouter(db, user.ID)
	req, _ := http.NewRequest("GET", "/vehicles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, "B1111AAA", data[0].(map[string]interface{})["vehicle_number"])
}

func TestDeleteVehicleBlockedWhileParked(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForVehicles(t)
	user := models.User{Email: "a@example.com", Password: "x", FullName: "A", Role: "user"}
	db.Create(&user)
	vehicle := models.Vehicle{UserID: user.ID, VehicleNumber: "B1111AAA", VehicleType: models.VehicleTypeCar}
	db.Create(&vehicle)
	slot := models.ParkingSlot{SlotNumber: "A1", SlotType: models.VehicleTypeCar, IsOccupied: true}
	db.Create(&slot)
	db.Create(&models.ParkingSession{
		TicketCode: "t-1", VehicleID: vehicle.ID, SlotID: slot.ID, UserID: user.ID,
		Status: models.SessionStatusActive,
	})

	router := setupVehicleRouter(db, user.ID)
	url := "/vehicles/" + strconv.Itoa(int(vehicle.ID))
	req, _ := http.NewRequest("DELETE", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Setelah sesi selesai, kendaraan boleh dihapus
	db.Model(&models.ParkingSession{}).Where("vehicle_id = ?", vehicle.ID).
		Update("status", models.SessionStatusCompleted)

	req, _ = http.NewRequest("DELETE", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
