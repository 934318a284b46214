package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/config"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// CreateDebtor records a debt entered directly, outside any order.
func CreateDebtor(c *gin.Context) {
	var input models.CreateDebtorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	debtor, err := debtService.CreateDirect(c.Request.Context(), input, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, debtor)
}

func ListDebtors(c *gin.Context) {
	filter := bson.M{"is_deleted": bson.M{"$ne": true}}
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
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := config.DebtorCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve debtors"})
		return
	}
	defer cursor.Close(context.TODO())

	debtors := []models.Debtor{}
	if err = cursor.All(context.TODO(), &debtors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode debtors"})
		return
	}
	c.JSON(http.StatusOK, debtors)
}

func GetDebtor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid debtor ID"})
		return
	}
	var debtor models.Debtor
	err = config.DebtorCollection.FindOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&debtor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Debtor not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve debtor"})
		}
		return
	}
	c.JSON(http.StatusOK, debtor)
}

// PayDebtor applies a payment against the debtor record.
func PayDebtor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid debtor ID"})
		return
	}
	var input models.DebtPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	debtor, err := debtService.Pay(c.Request.Context(), id, input, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, debtor)
}

func DeleteDebtor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid debtor ID"})
		return
	}
	if err := debtService.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Debtor deleted"})
}
