package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database

	UserCollection        *mongo.Collection
	BranchCollection      *mongo.Collection
	ClientCollection      *mongo.Collection
	VehicleCollection     *mongo.Collection
	ProductCollection     *mongo.Collection
	OrderCollection       *mongo.Collection
	DebtorCollection      *mongo.Collection
	TransactionCollection *mongo.Collection
	BalanceCollection     *mongo.Collection
	SMSLogCollection      *mongo.Collection
)

func ConnectDatabase() {
	client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "sklad"
	}

	Client = client
	DB = client.Database(dbName)
	UserCollection = DB.Collection("users")
	BranchCollection = DB.Collection("branches")
	ClientCollection = DB.Collection("clients")
	VehicleCollection = DB.Collection("vehicles")
	ProductCollection = DB.Collection("products")
	OrderCollection = DB.Collection("orders")
	DebtorCollection = DB.Collection("debtors")
	TransactionCollection = DB.Collection("transactions")
	BalanceCollection = DB.Collection("balance")
	SMSLogCollection = DB.Collection("smsLog")
	log.Println("Connected to MongoDB")
}
