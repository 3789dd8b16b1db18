package handlers

import (
	"errors"
	"net/http"

	"citaflow/models"
	"citaflow/services/booking"
	"citaflow/services/scheduling"
	"citaflow/utils"

	"github.com/gin-gonic/gin"
)

// PanelHandler exposes the booking panel engine over HTTP.
type PanelHandler struct {
	Service booking.PanelService
}

func NewPanelHandler(service booking.PanelService) *PanelHandler {
	return &PanelHandler{Service: service}
}

// OpenPanel creates a new booking panel session.
func (h *PanelHandler) OpenPanel(c *gin.Context) {
	sessionID, snapshot := h.Service.OpenPanel()
	c.JSON(http.StatusCreated, gin.H{
		"sessionID": sessionID,
		"panel":     snapshot,
	})
}

type selectionChangeRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ChangeSelection mutates one selection field and returns the new panel state.
func (h *PanelHandler) ChangeSelection(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input selectionChangeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	snapshot, err := h.Service.SetField(sessionID, input.Field, input.Value)
	if err != nil {
		h.panelError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"panel": snapshot})
}

type slotPickRequest struct {
	StartTime         string `json:"startTime" binding:"required"`
	EndTime           string `json:"endTime" binding:"required"`
	AvailableCapacity int    `json:"availableCapacity"`
	TotalCapacity     int    `json:"totalCapacity" binding:"required"`
}

// PickSlot commits a concrete slot selection, the terminal trigger of a
// validation cycle.
func (h *PanelHandler) PickSlot(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input slotPickRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slot, err := models.NewSlot(input.StartTime, input.EndTime, input.AvailableCapacity, input.TotalCapacity)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid slot", err.Error())
		return
	}

	snapshot, err := h.Service.PickSlot(sessionID, slot)
	if err != nil {
		h.panelError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"panel": snapshot})
}

// ValidationState returns the current panel snapshot for rendering.
func (h *PanelHandler) ValidationState(c *gin.Context) {
	sessionID := c.Param("sessionID")
	snapshot, err := h.Service.PanelState(sessionID)
	if err != nil {
		h.panelError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"panel": snapshot})
}

// ConfirmSlot runs the pre-submit re-validation gate.
func (h *PanelHandler) ConfirmSlot(c *gin.Context) {
	sessionID := c.Param("sessionID")
	result, err := h.Service.ConfirmSlot(c.Request.Context(), sessionID)
	if err != nil {
		var netErr *scheduling.NetworkError
		switch {
		case errors.As(err, &netErr):
			// "Unable to check availability" is distinct from "unavailable".
			c.JSON(http.StatusBadGateway, gin.H{
				"error":  "unable to check availability",
				"result": result,
			})
		case errors.Is(err, booking.ErrSelectionIncomplete):
			utils.JSONError(c, http.StatusConflict, "selection is incomplete", err.Error())
		default:
			h.panelError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClosePanel tears down the panel session.
func (h *PanelHandler) ClosePanel(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Service.ClosePanel(sessionID); err != nil {
		h.panelError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PanelHandler) panelError(c *gin.Context, err error) {
	if errors.Is(err, booking.ErrPanelNotFound) {
		utils.JSONError(c, http.StatusNotFound, "booking panel not found", err.Error())
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "request failed", err.Error())
}
