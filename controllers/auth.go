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
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/utils"
)

func Login(c *gin.Context) {
	var input struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := config.UserCollection.FindOne(context.TODO(),
		bson.M{"phone": input.Phone, "is_deleted": bson.M{"$ne": true}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone or password"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone or password"})
		return
	}

	branch := ""
	if !user.BranchID.IsZero() {
		branch = user.BranchID.Hex()
	}
	token, err := utils.GenerateToken(user.ID.Hex(), user.Role, branch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"full_name": user.FullName,
			"phone":     user.Phone,
			"role":      user.Role,
			"branch":    user.BranchID,
		},
	})
}

// CreateUser registers an admin or worker account. Admin only.
func CreateUser(c *gin.Context) {
	var input struct {
		FullName string `json:"full_name" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
		BranchID string `json:"branch"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role != models.RoleAdmin && input.Role != models.RoleWorker {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be admin or worker"})
		return
	}

	count, err := config.UserCollection.CountDocuments(context.TODO(),
		bson.M{"phone": input.Phone, "is_deleted": bson.M{"$ne": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check phone"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone already registered"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  input.FullName,
		Phone:     input.Phone,
		Password:  hash,
		Role:      input.Role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if input.BranchID != "" {
		branchID, err := primitive.ObjectIDFromHex(input.BranchID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
			return
		}
		user.BranchID = branchID
	}

	if _, err := config.UserCollection.InsertOne(context.TODO(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	user.Password = ""
	c.JSON(http.StatusCreated, user)
}
