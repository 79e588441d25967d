package controllers

import (
	"errors"
	"log"
	"net/http"

	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

func respondGuestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGuestNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.guestNotFound", "guest not found")
	case errors.Is(err, services.ErrCompanionDepth):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.companionOfCompanion", "a companion cannot be linked to another companion")
	case errors.Is(err, services.ErrGuestHasCompanions):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.guestHasCompanions", "remove the guest's companions first")
	case errors.Is(err, services.ErrGuestHasBookings):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.guestHasBookings", "guest has active or upcoming bookings")
	default:
		log.Printf("guest handler error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

func (ctrl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctrl.GuestSvc.GetAll()
	if err != nil {
		respondGuestError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "guests retrieved", guests)
}

func (ctrl *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	guest, err := ctrl.GuestSvc.GetByID(id)
	if err != nil {
		respondGuestError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "guest retrieved", guest)
}

func (ctrl *GuestController) GetCompanions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	companions, err := ctrl.GuestSvc.Companions(id)
	if err != nil {
		respondGuestError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "companions retrieved", companions)
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid guest payload")
		return
	}
	if guest.FullName == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.missingFullName", "fullName is required")
		return
	}
	if err := ctrl.GuestSvc.Create(&guest); err != nil {
		respondGuestError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "guest created", guest)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid guest payload")
		return
	}
	guest.ID = id
	if err := ctrl.GuestSvc.Update(&guest); err != nil {
		respondGuestError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "guest updated", guest)
}

func (ctrl *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.GuestSvc.Delete(id); err != nil {
		respondGuestError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "guest deleted", nil)
}
