package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

func TestDeriveDebtorStatus(t *testing.T) {
	cases := []struct {
		name   string
		debtor models.Debtor
		want   string
	}{
		{"fresh debt", models.Debtor{RemainingDebt: models.Money{UZS: 100}}, models.DebtorStatusPending},
		{"partially paid", models.Debtor{RemainingDebt: models.Money{UZS: 40}, PaidAmount: models.Money{UZS: 60}}, models.DebtorStatusPartial},
		{"fully paid", models.Debtor{PaidAmount: models.Money{UZS: 100}}, models.DebtorStatusPaid},
		{"paid in one currency only", models.Debtor{RemainingDebt: models.Money{USD: 5}, PaidAmount: models.Money{UZS: 100}}, models.DebtorStatusPartial},
		{"nothing owed", models.Debtor{}, models.DebtorStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveDebtorStatus(&tc.debtor))
		})
	}
}

func newDebtFixture(t *testing.T) (*memStore, *DebtService, *models.Client, *models.Branch) {
	t.Helper()
	st := newMemStore()
	client := st.addClient(&models.Client{FullName: "Dilshod Rahimov", Phone: "+998907654321"})
	branch := st.addBranch(&models.Branch{Name: "Yunusobod"})
	return st, NewDebtService(st), client, branch
}

func TestCreateDirectDebt(t *testing.T) {
	st, svc, client, branch := newDebtFixture(t)
	due := time.Now().AddDate(0, 1, 0)

	debtor, err := svc.CreateDirect(context.Background(), models.CreateDebtorInput{
		ClientID: client.ID.Hex(),
		BranchID: branch.ID.Hex(),
		Amount:   models.Money{UZS: 200},
		DueDate:  due,
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, models.Money{UZS: 200}, debtor.TotalDebt)
	assert.Equal(t, models.Money{UZS: 200}, debtor.RemainingDebt)
	assert.Equal(t, models.DebtorStatusPending, debtor.Status)
	assert.Equal(t, models.Money{UZS: 200}, client.Debt)
	assert.Len(t, st.transactionsOfType(models.TxDebtCreated), 1)
	assert.True(t, st.balance.IsZero(), "creating debt moves no cash")
}

func TestCreateDirectMergesOntoOpenDebtor(t *testing.T) {
	_, svc, client, branch := newDebtFixture(t)
	early := time.Now().AddDate(0, 0, 10)
	late := time.Now().AddDate(0, 0, 30)

	first, err := svc.CreateDirect(context.Background(), models.CreateDebtorInput{
		ClientID: client.ID.Hex(),
		BranchID: branch.ID.Hex(),
		Amount:   models.Money{UZS: 100},
		DueDate:  early,
	}, "admin")
	require.NoError(t, err)

	second, err := svc.CreateDirect(context.Background(), models.CreateDebtorInput{
		ClientID: client.ID.Hex(),
		BranchID: branch.ID.Hex(),
		Amount:   models.Money{USD: 5},
		DueDate:  late,
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "new debt merges onto the open record")
	assert.Equal(t, models.Money{USD: 5, UZS: 100}, second.TotalDebt)
	assert.Equal(t, late.Unix(), second.DueDate.Unix(), "due date extends to the later of the two")
	assert.Equal(t, models.Money{USD: 5, UZS: 100}, client.Debt)
}

func TestCreateDirectRequiresDueDate(t *testing.T) {
	_, svc, client, branch := newDebtFixture(t)
	_, err := svc.CreateDirect(context.Background(), models.CreateDebtorInput{
		ClientID: client.ID.Hex(),
		BranchID: branch.ID.Hex(),
		Amount:   models.Money{UZS: 100},
	}, "admin")
	assert.ErrorIs(t, err, ErrMissingDueDate)
}

func TestPayPartial(t *testing.T) {
	st, svc, client, branch := newDebtFixture(t)
	debtor, err := svc.CreateDirect(context.Background(), models.CreateDebtorInput{
		ClientID: client.ID.Hex(),
		BranchID: branch.ID.Hex(),
		Amount:   models.Money{UZS: 100},
		DueDate:  time.Now().AddDate(0, 0, 14),
	}, "admin")
	require.NoError(t, err)

	paid, err := svc.Pay(context.Background(), debtor.ID, models.DebtPaymentInput{
		Amount:      models.Money{UZS: 60},
		PaymentType: models.PaymentCash,
	}, "admin")
	require.NoError(t, err)

	assert.Equal(t, models.Money{UZS: 40}, paid.RemainingDebt)
	assert.Equal(t, models.Money{UZS: 60}, paid.PaidAmount)
	assert.Equal(t, models.DebtorStatusPartial, paid.Status)
	assert.False(t, paid.LastPayment.IsZero())
	assert.Equal(t, models.Money{UZS: 40}, client.Debt)
	assert.Len(t, st.transactionsOfType(models.TxDebtPayment), 1)
	assert.Equal(t, models.Money{UZS: 60}, st.balance, "payments bring cash in")
}

func TestPayOverpaymentFloorsAtZero(t *testing.T) {
	_, svc, client, branch := newDebtFixture(t)
	debtor, err := svc.CreateDirect(context.Background(), models.CreateDebtorInput{
		ClientID: client.ID.Hex(),
		BranchID: branch.ID.Hex(),
		Amount:   models.Money{UZS: 100},
		DueDate:  time.Now().AddDate(0, 0, 14),
	}, "admin")
	require.NoError(t, err)

	paid, err := svc.Pay(context.Background(), debtor.ID, models.DebtPaymentInput{
		Amount: models.Money{UZS: 150},
	}, "admin")
	require.NoError(t, err)

	assert.True(t, paid.RemainingDebt.IsZero(), "remaining debt never goes negative")
	assert.Equal(t, models.DebtorStatusPaid, paid.Status)
	assert.True(t, client.Debt.IsZero(), "only the applied amount comes off the client cache")
}

func TestPayRejectsNonPositiveAmount(t *testing.T) {
	_, svc, client, branch := newDebtFixture(t)
	debtor, err := svc.CreateDirect(context.Background(), models.CreateDebtorInput{
		ClientID: client.ID.Hex(),
		BranchID: branch.ID.Hex(),
		Amount:   models.Money{UZS: 100},
		DueDate:  time.Now().AddDate(0, 0, 14),
	}, "admin")
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), debtor.ID, models.DebtPaymentInput{}, "admin")
	assert.True(t, IsValidation(err))
}

func TestSoftDeleteDebtorClearsClientCache(t *testing.T) {
	st, svc, client, branch := newDebtFixture(t)
	debtor, err := svc.CreateDirect(context.Background(), models.CreateDebtorInput{
		ClientID: client.ID.Hex(),
		BranchID: branch.ID.Hex(),
		Amount:   models.Money{UZS: 100},
		DueDate:  time.Now().AddDate(0, 0, 14),
	}, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(context.Background(), debtor.ID))

	assert.True(t, client.Debt.IsZero())
	_, err = svc.store.GetDebtor(context.Background(), debtor.ID)
	assert.True(t, IsNotFound(err))

	open, err := st.FindOpenDebtor(context.Background(), client.ID, branch.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}
