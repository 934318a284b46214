package services

import (
	"context"
	"log"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// decrementStock takes the ordered quantities off each product,
// checking sufficiency per line as it goes. A later line failing does
// not roll back lines already decremented; callers surface the error
// as-is.
func decrementStock(ctx context.Context, st Store, items []models.OrderItem) error {
	for _, item := range items {
		product, err := st.GetProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if product.Quantity < item.Quantity {
			return &InsufficientStockError{
				ProductID:   product.ID.Hex(),
				ProductName: product.Name,
				Available:   product.Quantity,
				Requested:   item.Quantity,
			}
		}
		if err := st.AdjustProductQuantity(ctx, product.ID, -item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// restoreStock puts the ordered quantities back. Missing products are
// logged and skipped so that a product deleted after the sale does not
// wedge the order.
func restoreStock(ctx context.Context, st Store, items []models.OrderItem) {
	for _, item := range items {
		if _, err := st.GetProduct(ctx, item.ProductID); err != nil {
			log.Printf("restore stock: product %s: %v", item.ProductID.Hex(), err)
			continue
		}
		if err := st.AdjustProductQuantity(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("restore stock: product %s: %v", item.ProductID.Hex(), err)
		}
	}
}
