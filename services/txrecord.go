package services

import (
	"context"
	"log"
	"time"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// cashSign returns the sign a transaction type contributes to the cash
// balance, or 0 for non-cash events.
func cashSign(txType string) float64 {
	switch txType {
	case models.TxCashIn, models.TxOrder, models.TxDebtPayment, models.TxService:
		return 1
	case models.TxCashOut:
		return -1
	}
	return 0
}

// RecordTransaction appends a financial event and bumps the cash
// balance. The audit trail is best-effort: failures are logged, never
// returned, so the primary write always wins.
func RecordTransaction(ctx context.Context, st Store, tx *models.Transaction) {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	if err := st.InsertTransaction(ctx, tx); err != nil {
		log.Printf("record transaction (%s): %v", tx.Type, err)
		return
	}
	sign := cashSign(tx.Type)
	if sign == 0 {
		return
	}
	delta := tx.Amount
	if sign < 0 {
		delta = delta.Neg()
	}
	if err := st.AdjustBalance(ctx, delta); err != nil {
		log.Printf("adjust balance (%s): %v", tx.Type, err)
	}
}

// ReverseBalance takes a soft-deleted transaction's cash contribution
// back out of the balance. Best-effort like RecordTransaction.
func ReverseBalance(ctx context.Context, st Store, tx *models.Transaction) {
	sign := cashSign(tx.Type)
	if sign == 0 {
		return
	}
	delta := tx.Amount
	if sign > 0 {
		delta = delta.Neg()
	}
	if err := st.AdjustBalance(ctx, delta); err != nil {
		log.Printf("reverse balance (%s): %v", tx.Type, err)
	}
}
