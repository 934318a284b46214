package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

func TestCashSign(t *testing.T) {
	assert.Equal(t, float64(1), cashSign(models.TxCashIn))
	assert.Equal(t, float64(1), cashSign(models.TxOrder))
	assert.Equal(t, float64(1), cashSign(models.TxDebtPayment))
	assert.Equal(t, float64(1), cashSign(models.TxService))
	assert.Equal(t, float64(-1), cashSign(models.TxCashOut))
	assert.Equal(t, float64(0), cashSign(models.TxDebtCreated))
	assert.Equal(t, float64(0), cashSign("unknown"))
}

func TestRecordTransactionMovesBalance(t *testing.T) {
	st := newMemStore()

	RecordTransaction(context.Background(), st, &models.Transaction{
		Type:   models.TxCashIn,
		Amount: models.Money{UZS: 100, USD: 2},
	})
	RecordTransaction(context.Background(), st, &models.Transaction{
		Type:   models.TxCashOut,
		Amount: models.Money{UZS: 30},
	})
	RecordTransaction(context.Background(), st, &models.Transaction{
		Type:   models.TxDebtCreated,
		Amount: models.Money{UZS: 500},
	})

	assert.Equal(t, models.Money{UZS: 70, USD: 2}, st.balance)
	require.Len(t, st.transactions, 3)
	for _, tx := range st.transactions {
		assert.False(t, tx.CreatedAt.IsZero(), "created_at is stamped on insert")
	}
}

func TestReverseBalance(t *testing.T) {
	st := newMemStore()
	tx := &models.Transaction{Type: models.TxCashIn, Amount: models.Money{UZS: 100}}
	RecordTransaction(context.Background(), st, tx)
	require.Equal(t, models.Money{UZS: 100}, st.balance)

	ReverseBalance(context.Background(), st, tx)
	assert.True(t, st.balance.IsZero())

	// Non-cash events reverse to nothing.
	ReverseBalance(context.Background(), st, &models.Transaction{
		Type:   models.TxDebtCreated,
		Amount: models.Money{UZS: 999},
	})
	assert.True(t, st.balance.IsZero())
}
