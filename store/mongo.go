package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/services"
)

// Mongo implements services.Store on top of the driver collections.
// Every method is a single-document read or write; there is no
// cross-document transaction here.
type Mongo struct {
	Clients      *mongo.Collection
	Branches     *mongo.Collection
	Products     *mongo.Collection
	Orders       *mongo.Collection
	Debtors      *mongo.Collection
	Transactions *mongo.Collection
	Balances     *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		Clients:      db.Collection("clients"),
		Branches:     db.Collection("branches"),
		Products:     db.Collection("products"),
		Orders:       db.Collection("orders"),
		Debtors:      db.Collection("debtors"),
		Transactions: db.Collection("transactions"),
		Balances:     db.Collection("balance"),
	}
}

func notDeleted() bson.M {
	return bson.M{"is_deleted": bson.M{"$ne": true}}
}

func (m *Mongo) GetClient(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	filter := notDeleted()
	filter["_id"] = id
	var client models.Client
	if err := m.Clients.FindOne(ctx, filter).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &services.NotFoundError{Entity: "client"}
		}
		return nil, err
	}
	return &client, nil
}

func (m *Mongo) AdjustClientDebt(ctx context.Context, id primitive.ObjectID, delta models.Money) error {
	_, err := m.Clients.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"debt.usd": delta.USD, "debt.uzs": delta.UZS},
		"$set": bson.M{"updated_at": time.Now()},
	})
	return err
}

func (m *Mongo) GetBranch(ctx context.Context, id primitive.ObjectID) (*models.Branch, error) {
	filter := notDeleted()
	filter["_id"] = id
	var branch models.Branch
	if err := m.Branches.FindOne(ctx, filter).Decode(&branch); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &services.NotFoundError{Entity: "branch"}
		}
		return nil, err
	}
	return &branch, nil
}

func (m *Mongo) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	filter := notDeleted()
	filter["_id"] = id
	var product models.Product
	if err := m.Products.FindOne(ctx, filter).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &services.NotFoundError{Entity: "product"}
		}
		return nil, err
	}
	return &product, nil
}

func (m *Mongo) AdjustProductQuantity(ctx context.Context, id primitive.ObjectID, delta float64) error {
	_, err := m.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	return err
}

func (m *Mongo) InsertOrder(ctx context.Context, order *models.Order) error {
	_, err := m.Orders.InsertOne(ctx, order)
	return err
}

func (m *Mongo) GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := m.Orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &services.NotFoundError{Entity: "order"}
		}
		return nil, err
	}
	return &order, nil
}

func (m *Mongo) SaveOrder(ctx context.Context, order *models.Order) error {
	_, err := m.Orders.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	return err
}

func orderFilterQuery(f services.OrderFilter) bson.M {
	filter := notDeleted()
	if !f.ClientID.IsZero() {
		filter["client"] = f.ClientID
	}
	if !f.BranchID.IsZero() {
		filter["branch"] = f.BranchID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	created := bson.M{}
	if !f.From.IsZero() {
		created["$gte"] = f.From
	}
	if !f.To.IsZero() {
		created["$lte"] = f.To
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter
}

func (m *Mongo) ListOrders(ctx context.Context, f services.OrderFilter) ([]models.Order, error) {
	cursor, err := m.Orders.Find(ctx, orderFilterQuery(f),
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// countWindow intersects the same-calendar-day window ending at upTo
// with the filter's own created_at bounds.
func countWindow(f services.OrderFilter, upTo time.Time) (time.Time, time.Time) {
	from := time.Date(upTo.Year(), upTo.Month(), upTo.Day(), 0, 0, 0, 0, upTo.Location())
	if f.From.After(from) {
		from = f.From
	}
	to := upTo
	if !f.To.IsZero() && f.To.Before(to) {
		to = f.To
	}
	return from, to
}

func (m *Mongo) CountOrdersUpTo(ctx context.Context, f services.OrderFilter, upTo time.Time) (int64, error) {
	filter := orderFilterQuery(f)
	from, to := countWindow(f, upTo)
	filter["created_at"] = bson.M{"$gte": from, "$lte": to}
	return m.Orders.CountDocuments(ctx, filter)
}

func (m *Mongo) GetDebtor(ctx context.Context, id primitive.ObjectID) (*models.Debtor, error) {
	filter := notDeleted()
	filter["_id"] = id
	var debtor models.Debtor
	if err := m.Debtors.FindOne(ctx, filter).Decode(&debtor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &services.NotFoundError{Entity: "debtor"}
		}
		return nil, err
	}
	return &debtor, nil
}

func (m *Mongo) FindDebtorByOrder(ctx context.Context, orderID primitive.ObjectID) (*models.Debtor, error) {
	filter := notDeleted()
	filter["order"] = orderID
	var debtor models.Debtor
	if err := m.Debtors.FindOne(ctx, filter).Decode(&debtor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &debtor, nil
}

func (m *Mongo) FindOpenDebtor(ctx context.Context, clientID, branchID primitive.ObjectID) (*models.Debtor, error) {
	filter := notDeleted()
	filter["client"] = clientID
	filter["branch"] = branchID
	filter["status"] = bson.M{"$ne": models.DebtorStatusPaid}
	var debtor models.Debtor
	if err := m.Debtors.FindOne(ctx, filter,
		options.FindOne().SetSort(bson.M{"created_at": 1})).Decode(&debtor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &debtor, nil
}

func (m *Mongo) InsertDebtor(ctx context.Context, debtor *models.Debtor) error {
	_, err := m.Debtors.InsertOne(ctx, debtor)
	return err
}

func (m *Mongo) SaveDebtor(ctx context.Context, debtor *models.Debtor) error {
	_, err := m.Debtors.ReplaceOne(ctx, bson.M{"_id": debtor.ID}, debtor)
	return err
}

func (m *Mongo) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	_, err := m.Transactions.InsertOne(ctx, tx)
	return err
}

func (m *Mongo) AdjustBalance(ctx context.Context, delta models.Money) error {
	_, err := m.Balances.UpdateOne(ctx, bson.M{}, bson.M{
		"$inc": bson.M{"cash.usd": delta.USD, "cash.uzs": delta.UZS},
		"$set": bson.M{"updated_at": time.Now()},
	}, options.Update().SetUpsert(true))
	return err
}
