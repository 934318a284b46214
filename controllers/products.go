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

func CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if product.BranchID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch is required"})
		return
	}
	if product.Currency != models.CurrencyUSD && product.Currency != models.CurrencyUZS {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency must be usd or uzs"})
		return
	}
	if product.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
		return
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if _, err := config.ProductCollection.InsertOne(context.TODO(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func ListProducts(c *gin.Context) {
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
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"barcode": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	// Products at or below their minimum quantity.
	if c.Query("low_stock") == "true" {
		filter["$expr"] = bson.M{"$lte": bson.A{"$quantity", "$min_quantity"}}
	}

	cursor, err := config.ProductCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	defer cursor.Close(context.TODO())

	products := []models.Product{}
	if err = cursor.All(context.TODO(), &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	var product models.Product
	err = config.ProductCollection.FindOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct writes the allow-listed fields. Setting quantity here
// is a stock correction, not a sale: orders adjust it through their
// own flow.
func UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	var patch models.UpdateProduct
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Currency != nil && *patch.Currency != models.CurrencyUSD && *patch.Currency != models.CurrencyUZS {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency must be usd or uzs"})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Unit != nil {
		set["unit"] = *patch.Unit
	}
	if patch.Barcode != nil {
		set["barcode"] = *patch.Barcode
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
			return
		}
		set["quantity"] = *patch.Quantity
	}
	if patch.MinQuantity != nil {
		set["min_quantity"] = *patch.MinQuantity
	}
	if patch.CostPrice != nil {
		set["cost_price"] = *patch.CostPrice
	}
	if patch.SalePrice != nil {
		set["sale_price"] = *patch.SalePrice
	}
	if patch.Currency != nil {
		set["currency"] = *patch.Currency
	}

	result, err := config.ProductCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id, "is_deleted": bson.M{"$ne": true}}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}
	result, err := config.ProductCollection.UpdateOne(context.TODO(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
