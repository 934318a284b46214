package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/services"
)

var (
	orderService *services.OrderService
	debtService  *services.DebtService
	eventBus     *services.EventBus
	dataStore    services.Store
)

// Init wires the services the controllers call into. Invoked once from
// route setup.
func Init(st services.Store, bus *services.EventBus, notify services.Notifier) {
	dataStore = st
	eventBus = bus
	orderService = services.NewOrderService(st, bus, notify)
	debtService = services.NewDebtService(st)
}

// actorID returns the authenticated principal id set by the auth
// middleware, empty for unauthenticated routes.
func actorID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}

// respondError maps service errors onto HTTP statuses. Unexpected
// errors are logged and redacted in release mode.
func respondError(c *gin.Context, err error) {
	var nf *services.NotFoundError
	var ve *services.ValidationError
	var is *services.InsufficientStockError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.As(err, &is):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     is.Error(),
			"product":   is.ProductName,
			"available": is.Available,
			"requested": is.Requested,
		})
	case errors.Is(err, services.ErrMissingDueDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrMissingDueDate.Error()})
	default:
		log.Printf("internal error: %v", err)
		msg := err.Error()
		if gin.Mode() == gin.ReleaseMode {
			msg = "internal server error"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
