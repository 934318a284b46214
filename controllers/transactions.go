package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/config"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/services"
)

// CreateTransaction records a manual cash event. Order and debt
// transactions are written by their own flows, never through here.
func CreateTransaction(c *gin.Context) {
	var input models.CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch input.Type {
	case models.TxCashIn, models.TxCashOut, models.TxService:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be cash-in, cash-out or service"})
		return
	}
	if !input.Amount.HasPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	tx := &models.Transaction{
		ID:          primitive.NewObjectID(),
		Type:        input.Type,
		Amount:      input.Amount,
		PaymentType: input.PaymentType,
		Description: input.Description,
		CreatedBy:   actorID(c),
		CreatedAt:   time.Now(),
	}
	if input.ClientID != "" {
		clientID, err := primitive.ObjectIDFromHex(input.ClientID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
			return
		}
		tx.ClientID = clientID
	}
	if input.BranchID != "" {
		branchID, err := primitive.ObjectIDFromHex(input.BranchID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
			return
		}
		tx.BranchID = branchID
	}

	services.RecordTransaction(c.Request.Context(), dataStore, tx)
	c.JSON(http.StatusCreated, tx)
}

func ListTransactions(c *gin.Context) {
	filter := bson.M{"is_deleted": bson.M{"$ne": true}}
	if txType := c.Query("type"); txType != "" {
		filter["type"] = txType
	}
	if client := c.Query("client"); client != "" {
		clientID, err := primitive.ObjectIDFromHex(client)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
			return
		}
		filter["client"] = clientID
	}
	if branch := c.Query("branch"); branch != "" {
		branchID, err := primitive.ObjectIDFromHex(branch)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
			return
		}
		filter["branch"] = branchID
	}
	created := bson.M{}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from: expected YYYY-MM-DD"})
			return
		}
		created["$gte"] = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to: expected YYYY-MM-DD"})
			return
		}
		created["$lte"] = t.Add(24*time.Hour - time.Nanosecond)
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	cursor, err := config.TransactionCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}
	defer cursor.Close(context.TODO())

	transactions := []models.Transaction{}
	if err = cursor.All(context.TODO(), &transactions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// DeleteTransaction soft-deletes the record. The balance is corrected
// with a compensating adjustment rather than by editing history.
func DeleteTransaction(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var tx models.Transaction
	err = config.TransactionCollection.FindOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&tx)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	_, err = config.TransactionCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	services.ReverseBalance(c.Request.Context(), dataStore, &tx)
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

func GetBalance(c *gin.Context) {
	var balance models.Balance
	err := config.BalanceCollection.FindOne(context.TODO(), bson.M{}).Decode(&balance)
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}
	c.JSON(http.StatusOK, balance)
}

// TransactionStats aggregates sums grouped by type, by day and by
// payment method over the optional from/to window.
func TransactionStats(c *gin.Context) {
	match := bson.M{"is_deleted": bson.M{"$ne": true}}
	created := bson.M{}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from: expected YYYY-MM-DD"})
			return
		}
		created["$gte"] = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to: expected YYYY-MM-DD"})
			return
		}
		created["$lte"] = t.Add(24*time.Hour - time.Nanosecond)
	}
	if len(created) > 0 {
		match["created_at"] = created
	}

	group := func(key interface{}) mongo.Pipeline {
		return mongo.Pipeline{
			{{Key: "$match", Value: match}},
			{{Key: "$group", Value: bson.M{
				"_id":   key,
				"usd":   bson.M{"$sum": "$amount.usd"},
				"uzs":   bson.M{"$sum": "$amount.uzs"},
				"count": bson.M{"$sum": 1},
			}}},
			{{Key: "$sort", Value: bson.M{"_id": 1}}},
		}
	}

	run := func(pipeline mongo.Pipeline) ([]bson.M, error) {
		cursor, err := config.TransactionCollection.Aggregate(context.TODO(), pipeline)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(context.TODO())
		results := []bson.M{}
		if err := cursor.All(context.TODO(), &results); err != nil {
			return nil, err
		}
		return results, nil
	}

	byType, err := run(group("$type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate by type"})
		return
	}
	byDay, err := run(group(bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate by day"})
		return
	}
	byPayment, err := run(group("$payment_type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate by payment type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"by_type":         byType,
		"by_day":          byDay,
		"by_payment_type": byPayment,
	})
}
