package controllers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/services"
)

func CreateOrder(c *gin.Context) {
	var input models.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := orderService.Create(c.Request.Context(), input, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// orderFilterFromQuery reads the optional client/branch/status/date
// query params shared by the list endpoint and daily-index counting.
func orderFilterFromQuery(c *gin.Context) (services.OrderFilter, error) {
	var f services.OrderFilter
	if v := c.Query("client"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return f, &services.ValidationError{Field: "client", Message: "invalid id"}
		}
		f.ClientID = id
	}
	if v := c.Query("branch"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return f, &services.ValidationError{Field: "branch", Message: "invalid id"}
		}
		f.BranchID = id
	}
	f.Status = c.Query("status")
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, &services.ValidationError{Field: "from", Message: "expected YYYY-MM-DD"}
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, &services.ValidationError{Field: "to", Message: "expected YYYY-MM-DD"}
		}
		f.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return f, nil
}

func ListOrders(c *gin.Context) {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	orders, err := orderService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func GetOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	order, err := orderService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func UpdateOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	var patch models.UpdateOrderInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := orderService.Update(c.Request.Context(), id, patch, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus is the dedicated status endpoint. It runs the same
// transition rules as the general update.
func UpdateOrderStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := orderService.Transition(c.Request.Context(), id, body.Status, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func DeleteOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	if err := orderService.SoftDelete(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// StreamOrderEvents pushes new_order / order_updated events to the
// caller as server-sent events, optionally scoped to one branch.
func StreamOrderEvents(c *gin.Context) {
	branch := c.Query("branch")
	events, cancel := eventBus.Subscribe(branch, 32)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
