package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// roomColumns maps wire field names onto DB columns; anything else in an
// update payload (ids, timestamps, unknown keys) is dropped.
var roomColumns = map[string]string{
	"designation":     "designation",
	"singleBeds":      "single_beds",
	"doubleBeds":      "double_beds",
	"bathrooms":       "bathrooms",
	"airConditioning": "air_conditioning",
	"parkingSpaces":   "parking_spaces",
	"active":          "active",
	"floor":           "floor",
	"price":           "price",
	"description":     "description",
}

func normalizeRoomUpdates(raw map[string]interface{}) map[string]interface{} {
	updates := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if column, ok := roomColumns[key]; ok {
			updates[column] = value
		}
	}
	return updates
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		log.Printf("GetRooms error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to retrieve rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "rooms retrieved", rooms)
}

func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "room not found")
			return
		}
		log.Printf("GetRoomByID error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to retrieve room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "room retrieved", room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid room payload")
		return
	}

	if strings.TrimSpace(room.Designation) == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.missingDesignation", "designation is required")
		return
	}

	if err := ctrl.RoomSvc.Create(&room); err != nil {
		if errors.Is(err, services.ErrRoomNeedsBeds) {
			utils.JSONError(c, http.StatusUnprocessableEntity, "error.roomNeedsBeds", "room must have at least one bed")
			return
		}
		if isDuplicateKeyError(err) {
			utils.JSONError(c, http.StatusConflict, "error.duplicateDesignation",
				fmt.Sprintf("room '%s' already exists", room.Designation))
			return
		}
		log.Printf("CreateRoom error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to create room")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "room created", room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid update payload")
		return
	}

	updates = normalizeRoomUpdates(updates)
	if len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.emptyPayload", "no updatable fields provided")
		return
	}

	if err := ctrl.RoomSvc.Update(id, updates); err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "room not found")
		case errors.Is(err, services.ErrRoomNeedsBeds):
			utils.JSONError(c, http.StatusUnprocessableEntity, "error.roomNeedsBeds", "room must have at least one bed")
		default:
			log.Printf("UpdateRoom error for room %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to update room")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "room updated", nil)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deactivated, err := ctrl.RoomSvc.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "room not found")
			return
		}
		log.Printf("DeleteRoom error for room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "failed to delete room")
		return
	}

	if deactivated {
		utils.JSONSuccess(c, http.StatusOK, "room has booking history and was deactivated", gin.H{"deactivated": true})
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "room deleted", gin.H{"deactivated": false})
}
