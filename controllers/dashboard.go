package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/config"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// Dashboard returns today's order count and revenue, open debt totals
// and the low-stock product count.
func Dashboard(c *gin.Context) {
	ctx := context.TODO()
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	ordersToday, err := config.OrderCollection.CountDocuments(ctx, bson.M{
		"is_deleted": bson.M{"$ne": true},
		"created_at": bson.M{"$gte": dayStart},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
		return
	}

	revenuePipe := []bson.M{
		{"$match": bson.M{
			"is_deleted": bson.M{"$ne": true},
			"status":     models.OrderStatusCompleted,
			"created_at": bson.M{"$gte": dayStart},
		}},
		{"$group": bson.M{
			"_id": nil,
			"usd": bson.M{"$sum": "$paid_amount.usd"},
			"uzs": bson.M{"$sum": "$paid_amount.uzs"},
		}},
	}
	revenue := models.Money{}
	cursor, err := config.OrderCollection.Aggregate(ctx, revenuePipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate revenue"})
		return
	}
	var revenueRows []struct {
		USD float64 `bson:"usd"`
		UZS float64 `bson:"uzs"`
	}
	if err := cursor.All(ctx, &revenueRows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode revenue"})
		return
	}
	if len(revenueRows) > 0 {
		revenue = models.Money{USD: revenueRows[0].USD, UZS: revenueRows[0].UZS}
	}

	debtPipe := []bson.M{
		{"$match": bson.M{
			"is_deleted": bson.M{"$ne": true},
			"status":     bson.M{"$ne": models.DebtorStatusPaid},
		}},
		{"$group": bson.M{
			"_id": nil,
			"usd": bson.M{"$sum": "$remaining_debt.usd"},
			"uzs": bson.M{"$sum": "$remaining_debt.uzs"},
		}},
	}
	openDebt := models.Money{}
	cursor, err = config.DebtorCollection.Aggregate(ctx, debtPipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate debt"})
		return
	}
	var debtRows []struct {
		USD float64 `bson:"usd"`
		UZS float64 `bson:"uzs"`
	}
	if err := cursor.All(ctx, &debtRows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode debt"})
		return
	}
	if len(debtRows) > 0 {
		openDebt = models.Money{USD: debtRows[0].USD, UZS: debtRows[0].UZS}
	}

	lowStock, err := config.ProductCollection.CountDocuments(ctx, bson.M{
		"is_deleted": bson.M{"$ne": true},
		"$expr":      bson.M{"$lte": bson.A{"$quantity", "$min_quantity"}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count low stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders_today":  ordersToday,
		"revenue_today": revenue,
		"open_debt":     openDebt,
		"low_stock":     lowStock,
	})
}
