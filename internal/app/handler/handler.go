package handler

import (
	"net/http"

	"backend/internal/app/hooks"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Adapter *hooks.Adapter
}

func NewHandler(a *hooks.Adapter) *Handler {
	return &Handler{Adapter: a}
}

// Register the HTML templates for the form fragment
func (h *Handler) RegisterStatic(router *gin.Engine) {
	router.LoadHTMLGlob("templates/*")
}

// Register the routes
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	// Form fragment for the ticket-edit page (id 0 = new ticket)
	router.GET("/tickets/:id/cost-form", h.GetCostForm)

	// Lifecycle hooks forwarded by the host
	router.POST("/hooks/ticket-created", h.TicketCreated)
	router.POST("/hooks/ticket-updated", h.TicketUpdated)
	router.POST("/hooks/ticket-pre-update", h.TicketPreUpdate)
}

// Centralized error handling
func (h *Handler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}

func (h *Handler) hookOK(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
