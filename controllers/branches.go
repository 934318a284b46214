package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/config"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

func CreateBranch(c *gin.Context) {
	var branch models.Branch
	if err := c.ShouldBindJSON(&branch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	branch.ID = primitive.NewObjectID()
	branch.CreatedAt = time.Now()
	branch.UpdatedAt = time.Now()

	if _, err := config.BranchCollection.InsertOne(context.TODO(), branch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		return
	}
	c.JSON(http.StatusCreated, branch)
}

func ListBranches(c *gin.Context) {
	cursor, err := config.BranchCollection.Find(context.TODO(),
		bson.M{"is_deleted": bson.M{"$ne": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve branches"})
		return
	}
	defer cursor.Close(context.TODO())

	branches := []models.Branch{}
	if err = cursor.All(context.TODO(), &branches); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode branches"})
		return
	}
	c.JSON(http.StatusOK, branches)
}

func GetBranch(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}
	var branch models.Branch
	err = config.BranchCollection.FindOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&branch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve branch"})
		}
		return
	}
	c.JSON(http.StatusOK, branch)
}

func UpdateBranch(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}
	var patch struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}

	result, err := config.BranchCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update branch"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Branch updated"})
}

func DeleteBranch(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}
	result, err := config.BranchCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete branch"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted"})
}
