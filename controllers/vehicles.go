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

func CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if vehicle.ClientID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client is required"})
		return
	}
	err := config.ClientCollection.FindOne(context.TODO(),
		bson.M{"_id": vehicle.ClientID, "is_deleted": bson.M{"$ne": true}}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check client"})
		}
		return
	}

	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	if _, err := config.VehicleCollection.InsertOne(context.TODO(), vehicle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func ListVehicles(c *gin.Context) {
	filter := bson.M{"is_deleted": bson.M{"$ne": true}}
	if client := c.Query("client"); client != "" {
		clientID, err := primitive.ObjectIDFromHex(client)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client ID"})
			return
		}
		filter["client"] = clientID
	}
	if plate := c.Query("plate"); plate != "" {
		filter["plate_number"] = bson.M{"$regex": plate, "$options": "i"}
	}

	cursor, err := config.VehicleCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicles"})
		return
	}
	defer cursor.Close(context.TODO())

	vehicles := []models.Vehicle{}
	if err = cursor.All(context.TODO(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode vehicles"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func GetVehicle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}
	var vehicle models.Vehicle
	err = config.VehicleCollection.FindOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle"})
		}
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func UpdateVehicle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}
	var patch models.UpdateVehicle
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.PlateNumber != nil {
		set["plate_number"] = *patch.PlateNumber
	}
	if patch.Make != nil {
		set["make"] = *patch.Make
	}
	if patch.Model != nil {
		set["model"] = *patch.Model
	}
	if patch.Year != nil {
		set["year"] = *patch.Year
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	result, err := config.VehicleCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated"})
}

func DeleteVehicle(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}
	result, err := config.VehicleCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}
