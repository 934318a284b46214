package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// OrderService is the order state machine. Status transitions, whether
// they arrive through the general update endpoint or the dedicated
// status endpoint, run through the same transition rules: stock moves
// and debt moves happen exactly when an order enters or leaves the
// completed state.
type OrderService struct {
	store  Store
	bus    *EventBus
	notify Notifier
}

func NewOrderService(store Store, bus *EventBus, notify Notifier) *OrderService {
	return &OrderService{store: store, bus: bus, notify: notify}
}

func validOrderStatus(s string) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	}
	return false
}

func validPaymentType(s string) bool {
	switch s {
	case models.PaymentCash, models.PaymentCard, models.PaymentDebt:
		return true
	}
	return false
}

func validAmount(m models.Money) bool {
	return m.USD >= 0 && m.UZS >= 0
}

// resolveItems loads each referenced product, snapshots its name, cost
// price and currency onto the line, and accumulates per-line profit
// (sale price minus cost price, times quantity) into the returned
// profit total split by the product's currency.
func (s *OrderService) resolveItems(ctx context.Context, inputs []models.OrderItemInput) ([]models.OrderItem, models.Money, error) {
	var profit models.Money
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, profit, &ValidationError{Field: "products.quantity", Message: "must be positive"}
		}
		productID, err := primitive.ObjectIDFromHex(in.ProductID)
		if err != nil {
			return nil, profit, &ValidationError{Field: "products.product", Message: "invalid id"}
		}
		product, err := s.store.GetProduct(ctx, productID)
		if err != nil {
			return nil, profit, err
		}
		price := in.Price
		if price == 0 {
			price = product.SalePrice
		}
		lineProfit := (price - product.CostPrice) * in.Quantity
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  in.Quantity,
			Price:     price,
			CostPrice: product.CostPrice,
			Currency:  product.Currency,
			Profit:    lineProfit,
		})
		profit = profit.AddCurrency(product.Currency, lineProfit)
	}
	return items, profit, nil
}

// Create validates the order, moves stock for completed orders, persists
// it, records the sale transaction and applies debt. Notifications and
// events are fire-and-forget.
func (s *OrderService) Create(ctx context.Context, in models.CreateOrderInput, createdBy string) (*models.Order, error) {
	clientID, err := primitive.ObjectIDFromHex(in.ClientID)
	if err != nil {
		return nil, &ValidationError{Field: "client", Message: "invalid id"}
	}
	branchID, err := primitive.ObjectIDFromHex(in.BranchID)
	if err != nil {
		return nil, &ValidationError{Field: "branch", Message: "invalid id"}
	}
	status := in.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !validOrderStatus(status) {
		return nil, &ValidationError{Field: "status", Message: "must be pending, completed or cancelled"}
	}
	if !validPaymentType(in.PaymentType) {
		return nil, &ValidationError{Field: "payment_type", Message: "must be cash, card or debt"}
	}
	if !validAmount(in.TotalAmount) || !validAmount(in.PaidAmount) || !validAmount(in.DebtAmount) {
		return nil, &ValidationError{Field: "amount", Message: "must not be negative"}
	}
	if len(in.Products) == 0 {
		return nil, &ValidationError{Field: "products", Message: "at least one product is required"}
	}
	if in.PaymentType == models.PaymentDebt && in.DebtAmount.HasPositive() && in.DateReturned.IsZero() {
		return nil, ErrMissingDueDate
	}

	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetBranch(ctx, branchID); err != nil {
		return nil, err
	}

	items, profit, err := s.resolveItems(ctx, in.Products)
	if err != nil {
		return nil, err
	}

	if status == models.OrderStatusCompleted {
		if err := decrementStock(ctx, s.store, items); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order := &models.Order{
		ID:           primitive.NewObjectID(),
		ClientID:     clientID,
		BranchID:     branchID,
		Items:        items,
		TotalAmount:  in.TotalAmount,
		PaidAmount:   in.PaidAmount,
		DebtAmount:   in.DebtAmount,
		ProfitAmount: profit,
		PaymentType:  in.PaymentType,
		Status:       status,
		DateReturned: in.DateReturned,
		Description:  in.Description,
		CreatedBy:    createdBy,
		ViewToken:    uuid.NewString(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.VehicleID != "" {
		vehicleID, err := primitive.ObjectIDFromHex(in.VehicleID)
		if err != nil {
			return nil, &ValidationError{Field: "vehicle", Message: "invalid id"}
		}
		order.VehicleID = vehicleID
	}
	if err := s.store.InsertOrder(ctx, order); err != nil {
		return nil, err
	}

	RecordTransaction(ctx, s.store, &models.Transaction{
		Type:         models.TxOrder,
		Amount:       order.PaidAmount,
		PaymentType:  order.PaymentType,
		ClientID:     order.ClientID,
		BranchID:     order.BranchID,
		RelatedModel: "order",
		RelatedID:    order.ID,
		CreatedBy:    createdBy,
	})

	if order.PaymentType == models.PaymentDebt && order.Status == models.OrderStatusCompleted {
		if err := applyOrderDebt(ctx, s.store, order, createdBy); err != nil {
			return nil, err
		}
	}

	s.emitOrderEvent(EventNewOrder, order)
	s.sendOrderSMS(client, order)
	return order, nil
}

// Update applies an allow-listed patch. When the line items change on a
// completed order the old quantities go back to stock before the new
// ones are taken; an insufficiency found at that point fails the update
// with the restoration already persisted.
func (s *OrderService) Update(ctx context.Context, orderID primitive.ObjectID, patch models.UpdateOrderInput, createdBy string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsDeleted {
		return nil, &NotFoundError{Entity: "order"}
	}
	old := *order

	if patch.Status != nil && !validOrderStatus(*patch.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be pending, completed or cancelled"}
	}
	if patch.PaymentType != nil && !validPaymentType(*patch.PaymentType) {
		return nil, &ValidationError{Field: "payment_type", Message: "must be cash, card or debt"}
	}

	productsChanged := patch.Products != nil
	if productsChanged && len(patch.Products) == 0 {
		return nil, &ValidationError{Field: "products", Message: "at least one product is required"}
	}
	if productsChanged && old.Status == models.OrderStatusCompleted {
		restoreStock(ctx, s.store, old.Items)
	}

	if productsChanged {
		items, profit, err := s.resolveItems(ctx, patch.Products)
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.ProfitAmount = profit
	}
	if patch.TotalAmount != nil {
		order.TotalAmount = *patch.TotalAmount
	}
	if patch.PaidAmount != nil {
		order.PaidAmount = *patch.PaidAmount
	}
	if patch.DebtAmount != nil {
		order.DebtAmount = *patch.DebtAmount
	}
	if patch.PaymentType != nil {
		order.PaymentType = *patch.PaymentType
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.DateReturned != nil {
		order.DateReturned = *patch.DateReturned
	}
	if patch.Description != nil {
		order.Description = *patch.Description
	}
	if !validAmount(order.TotalAmount) || !validAmount(order.PaidAmount) || !validAmount(order.DebtAmount) {
		return nil, &ValidationError{Field: "amount", Message: "must not be negative"}
	}

	becameCompleted := order.Status == models.OrderStatusCompleted && old.Status != models.OrderStatusCompleted
	leftCompleted := old.Status == models.OrderStatusCompleted && order.Status != models.OrderStatusCompleted

	if order.Status == models.OrderStatusCompleted && (productsChanged || becameCompleted) {
		if err := decrementStock(ctx, s.store, order.Items); err != nil {
			return nil, err
		}
	}
	if leftCompleted && !productsChanged {
		restoreStock(ctx, s.store, old.Items)
	}

	oldDebt := models.Money{}
	if old.PaymentType == models.PaymentDebt {
		oldDebt = old.DebtAmount
	}
	newDebt := models.Money{}
	if order.PaymentType == models.PaymentDebt {
		newDebt = order.DebtAmount
	}
	switch {
	case becameCompleted:
		if order.PaymentType == models.PaymentDebt {
			if err := applyOrderDebt(ctx, s.store, order, createdBy); err != nil {
				return nil, err
			}
		}
	case leftCompleted:
		if old.PaymentType == models.PaymentDebt {
			if err := reverseOrderDebt(ctx, s.store, &old); err != nil {
				return nil, err
			}
		}
	case order.Status == models.OrderStatusCompleted:
		if err := adjustOrderDebt(ctx, s.store, order, newDebt.Sub(oldDebt)); err != nil {
			return nil, err
		}
	}

	order.UpdatedAt = time.Now()
	if err := s.store.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	s.emitOrderEvent(EventOrderUpdated, order)
	return order, nil
}

// Transition moves an order to the target status. Transitioning to the
// current status is a no-op so repeated requests never double-move
// stock or debt.
func (s *OrderService) Transition(ctx context.Context, orderID primitive.ObjectID, target, createdBy string) (*models.Order, error) {
	if !validOrderStatus(target) {
		return nil, &ValidationError{Field: "status", Message: "must be pending, completed or cancelled"}
	}
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsDeleted {
		return nil, &NotFoundError{Entity: "order"}
	}
	if order.Status == target {
		return order, nil
	}

	from := order.Status
	switch {
	case from == models.OrderStatusCompleted:
		restoreStock(ctx, s.store, order.Items)
		if order.PaymentType == models.PaymentDebt {
			if err := reverseOrderDebt(ctx, s.store, order); err != nil {
				return nil, err
			}
		}
	case target == models.OrderStatusCompleted:
		if err := decrementStock(ctx, s.store, order.Items); err != nil {
			return nil, err
		}
		if order.PaymentType == models.PaymentDebt {
			if err := applyOrderDebt(ctx, s.store, order, createdBy); err != nil {
				return nil, err
			}
		}
	}

	order.Status = target
	order.UpdatedAt = time.Now()
	if err := s.store.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	s.emitOrderEvent(EventOrderUpdated, order)
	return order, nil
}

// SoftDelete marks the order deleted, undoing its completed side
// effects first.
func (s *OrderService) SoftDelete(ctx context.Context, orderID primitive.ObjectID, createdBy string) error {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.IsDeleted {
		return nil
	}
	if order.Status == models.OrderStatusCompleted {
		restoreStock(ctx, s.store, order.Items)
		if order.PaymentType == models.PaymentDebt {
			if err := reverseOrderDebt(ctx, s.store, order); err != nil {
				return err
			}
		}
		order.Status = models.OrderStatusCancelled
	}
	order.IsDeleted = true
	order.UpdatedAt = time.Now()
	return s.store.SaveOrder(ctx, order)
}

// Get loads one order with its daily index.
func (s *OrderService) Get(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsDeleted {
		return nil, &NotFoundError{Entity: "order"}
	}
	idx, err := s.dailyIndex(ctx, OrderFilter{}, order)
	if err == nil {
		order.DailyIndex = idx
	}
	return order, nil
}

// List returns orders matching the filter, each annotated with its
// 1-based ordinal among same-day orders matching the same filter.
func (s *OrderService) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		idx, err := s.dailyIndex(ctx, f, &orders[i])
		if err != nil {
			return nil, err
		}
		orders[i].DailyIndex = idx
	}
	return orders, nil
}

func (s *OrderService) dailyIndex(ctx context.Context, f OrderFilter, order *models.Order) (int64, error) {
	return s.store.CountOrdersUpTo(ctx, f, order.CreatedAt)
}

// orderEventPayload is what subscribers receive for new_order and
// order_updated.
type orderEventPayload struct {
	ID          string       `json:"id"`
	Client      string       `json:"client"`
	Branch      string       `json:"branch"`
	Status      string       `json:"status"`
	PaymentType string       `json:"payment_type"`
	TotalAmount models.Money `json:"total_amount"`
	PaidAmount  models.Money `json:"paid_amount"`
	DebtAmount  models.Money `json:"debt_amount"`
	DailyIndex  int64        `json:"daily_index"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (s *OrderService) emitOrderEvent(name string, order *models.Order) {
	if s.bus == nil {
		return
	}
	idx, err := s.dailyIndex(context.Background(), OrderFilter{}, order)
	if err != nil {
		log.Printf("daily index for %s event: %v", name, err)
	}
	s.bus.Emit(name, order.BranchID.Hex(), orderEventPayload{
		ID:          order.ID.Hex(),
		Client:      order.ClientID.Hex(),
		Branch:      order.BranchID.Hex(),
		Status:      order.Status,
		PaymentType: order.PaymentType,
		TotalAmount: order.TotalAmount,
		PaidAmount:  order.PaidAmount,
		DebtAmount:  order.DebtAmount,
		DailyIndex:  idx,
		CreatedAt:   order.CreatedAt,
	})
}

// sendOrderSMS fires the order-created SMS without blocking the
// response. Failures are logged and swallowed.
func (s *OrderService) sendOrderSMS(client *models.Client, order *models.Order) {
	if s.notify == nil || client.Phone == "" {
		return
	}
	phone := client.Phone
	text := fmt.Sprintf("Hurmatli %s, buyurtmangiz qabul qilindi. Summa: %.2f USD / %.2f UZS",
		client.FullName, order.TotalAmount.USD, order.TotalAmount.UZS)
	go func() {
		if err := s.notify.SendSMS(phone, text); err != nil {
			log.Printf("order SMS to %s: %v", phone, err)
		}
	}()
}
