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
)

func CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if client.BranchID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch is required"})
		return
	}

	client.ID = primitive.NewObjectID()
	client.Debt = models.Money{}
	client.CreatedAt = time.Now()
	client.UpdatedAt = time.Now()

	if _, err := config.ClientCollection.InsertOne(context.TODO(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}
	c.JSON(http.StatusCreated, client)
}

func ListClients(c *gin.Context) {
	filter := bson.M{"is_deleted": bson.M{"$ne": true}}
	if branch := c.Query("branch"); branch != "" {
		branchID, err := primitive.ObjectIDFromHex(branch)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
			return
		}
		filter["branch"] = branchID
	}
	if search := c.Query("search"); search != "" {
		filter["$or"] = []bson.M{
			{"full_name": bson.M{"$regex": search, "$options": "i"}},
			{"phone": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	if c.Query("vip") == "true" {
		filter["is_vip"] = true
	}
	if c.Query("debtors") == "true" {
		filter["$or"] = []bson.M{
			{"debt.usd": bson.M{"$gt": 0}},
			{"debt.uzs": bson.M{"$gt": 0}},
		}
	}

	cursor, err := config.ClientCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}
	defer cursor.Close(context.TODO())

	clients := []models.Client{}
	if err = cursor.All(context.TODO(), &clients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func GetClient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}

	var client models.Client
	err = config.ClientCollection.FindOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client"})
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient applies the allow-listed fields only; debt is never
// writable here.
func UpdateClient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}
	var patch models.UpdateClient
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.FullName != nil {
		set["full_name"] = *patch.FullName
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.IsVIP != nil {
		set["is_vip"] = *patch.IsVIP
	}
	if patch.BirthDate != nil {
		set["birth_date"] = *patch.BirthDate
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	result, err := config.ClientCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client updated"})
}

func DeleteClient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
		return
	}
	result, err := config.ClientCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
