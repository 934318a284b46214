package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// DeriveDebtorStatus computes pending/partial/paid from the amounts.
// "overdue" is owned by the reminder job and is overwritten here as
// soon as amounts change.
func DeriveDebtorStatus(d *models.Debtor) string {
	if d.RemainingDebt.USD <= 0 && d.RemainingDebt.UZS <= 0 {
		return models.DebtorStatusPaid
	}
	if d.PaidAmount.HasPositive() {
		return models.DebtorStatusPartial
	}
	return models.DebtorStatusPending
}

func laterDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// findOrderDebtor resolves the debtor an order's debt lives on: the
// record linked to the order first, otherwise the open record for
// {client, branch}.
func findOrderDebtor(ctx context.Context, st Store, order *models.Order) (*models.Debtor, error) {
	debtor, err := st.FindDebtorByOrder(ctx, order.ID)
	if err != nil || debtor != nil {
		return debtor, err
	}
	return st.FindOpenDebtor(ctx, order.ClientID, order.BranchID)
}

// applyOrderDebt puts the order's debt onto the client ledger: merged
// onto the existing open debtor (extending the due date to the later of
// the two) or recorded as a new one, with Client.debt incremented to
// match. Called when a debt order becomes completed.
func applyOrderDebt(ctx context.Context, st Store, order *models.Order, createdBy string) error {
	debt := order.DebtAmount
	if !debt.HasPositive() {
		return nil
	}
	now := time.Now()

	debtor, err := findOrderDebtor(ctx, st, order)
	if err != nil {
		return err
	}
	if debtor != nil {
		debtor.TotalDebt = debtor.TotalDebt.Add(debt)
		debtor.RemainingDebt = debtor.RemainingDebt.Add(debt)
		debtor.DueDate = laterDate(debtor.DueDate, order.DateReturned)
		if debtor.OrderID.IsZero() {
			debtor.OrderID = order.ID
		}
		debtor.Status = DeriveDebtorStatus(debtor)
		debtor.UpdatedAt = now
		if err := st.SaveDebtor(ctx, debtor); err != nil {
			return err
		}
	} else {
		if order.DateReturned.IsZero() {
			return ErrMissingDueDate
		}
		debtor = &models.Debtor{
			ID:            primitive.NewObjectID(),
			ClientID:      order.ClientID,
			BranchID:      order.BranchID,
			OrderID:       order.ID,
			TotalDebt:     debt,
			RemainingDebt: debt,
			Status:        models.DebtorStatusPending,
			DueDate:       order.DateReturned,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := st.InsertDebtor(ctx, debtor); err != nil {
			return err
		}
	}

	if err := st.AdjustClientDebt(ctx, order.ClientID, debt); err != nil {
		return err
	}
	RecordTransaction(ctx, st, &models.Transaction{
		Type:         models.TxDebtCreated,
		Amount:       debt,
		PaymentType:  order.PaymentType,
		ClientID:     order.ClientID,
		BranchID:     order.BranchID,
		RelatedModel: "order",
		RelatedID:    order.ID,
		CreatedBy:    createdBy,
	})
	return nil
}

// reverseOrderDebt takes the order's debt back off the ledger when a
// completed debt order stops being completed. Amounts are floored at
// zero rather than allowed to go negative.
func reverseOrderDebt(ctx context.Context, st Store, order *models.Order) error {
	debt := order.DebtAmount
	if !debt.HasPositive() {
		return nil
	}
	debtor, err := findOrderDebtor(ctx, st, order)
	if err != nil {
		return err
	}
	if debtor != nil {
		debtor.TotalDebt = debtor.TotalDebt.Sub(debt).FloorZero()
		debtor.RemainingDebt = debtor.RemainingDebt.Sub(debt).FloorZero()
		debtor.Status = DeriveDebtorStatus(debtor)
		debtor.UpdatedAt = time.Now()
		if err := st.SaveDebtor(ctx, debtor); err != nil {
			return err
		}
	}
	return st.AdjustClientDebt(ctx, order.ClientID, debt.Neg())
}

// adjustOrderDebt applies an arithmetic debt change to an order that
// stays completed: the client cache moves by the delta and the order's
// debtor is re-shaped from the new total, remaining recomputed from the
// paid amount.
func adjustOrderDebt(ctx context.Context, st Store, order *models.Order, delta models.Money) error {
	if delta.IsZero() {
		return nil
	}
	debtor, err := findOrderDebtor(ctx, st, order)
	if err != nil {
		return err
	}
	now := time.Now()
	if debtor != nil {
		debtor.TotalDebt = debtor.TotalDebt.Add(delta).FloorZero()
		debtor.RemainingDebt = debtor.TotalDebt.Sub(debtor.PaidAmount).FloorZero()
		debtor.Status = DeriveDebtorStatus(debtor)
		debtor.UpdatedAt = now
		if err := st.SaveDebtor(ctx, debtor); err != nil {
			return err
		}
	} else if delta.HasPositive() {
		if order.DateReturned.IsZero() {
			return ErrMissingDueDate
		}
		debtor = &models.Debtor{
			ID:            primitive.NewObjectID(),
			ClientID:      order.ClientID,
			BranchID:      order.BranchID,
			OrderID:       order.ID,
			TotalDebt:     order.DebtAmount,
			RemainingDebt: order.DebtAmount,
			Status:        models.DebtorStatusPending,
			DueDate:       order.DateReturned,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := st.InsertDebtor(ctx, debtor); err != nil {
			return err
		}
	}
	return st.AdjustClientDebt(ctx, order.ClientID, delta)
}

// DebtService exposes the debtor operations that run outside the order
// flow: direct entries, payments and soft deletes.
type DebtService struct {
	store Store
}

func NewDebtService(store Store) *DebtService {
	return &DebtService{store: store}
}

// CreateDirect records a debt entered outside any order.
func (s *DebtService) CreateDirect(ctx context.Context, in models.CreateDebtorInput, createdBy string) (*models.Debtor, error) {
	clientID, err := primitive.ObjectIDFromHex(in.ClientID)
	if err != nil {
		return nil, &ValidationError{Field: "client", Message: "invalid id"}
	}
	branchID, err := primitive.ObjectIDFromHex(in.BranchID)
	if err != nil {
		return nil, &ValidationError{Field: "branch", Message: "invalid id"}
	}
	if !in.Amount.HasPositive() {
		return nil, &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if in.DueDate.IsZero() {
		return nil, ErrMissingDueDate
	}
	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetBranch(ctx, branchID); err != nil {
		return nil, err
	}

	now := time.Now()
	debtor, err := s.store.FindOpenDebtor(ctx, clientID, branchID)
	if err != nil {
		return nil, err
	}
	if debtor != nil {
		debtor.TotalDebt = debtor.TotalDebt.Add(in.Amount)
		debtor.RemainingDebt = debtor.RemainingDebt.Add(in.Amount)
		debtor.DueDate = laterDate(debtor.DueDate, in.DueDate)
		debtor.Status = DeriveDebtorStatus(debtor)
		debtor.UpdatedAt = now
		if err := s.store.SaveDebtor(ctx, debtor); err != nil {
			return nil, err
		}
	} else {
		debtor = &models.Debtor{
			ID:            primitive.NewObjectID(),
			ClientID:      clientID,
			BranchID:      branchID,
			TotalDebt:     in.Amount,
			RemainingDebt: in.Amount,
			Status:        models.DebtorStatusPending,
			DueDate:       in.DueDate,
			Notes:         in.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.store.InsertDebtor(ctx, debtor); err != nil {
			return nil, err
		}
	}

	if err := s.store.AdjustClientDebt(ctx, clientID, in.Amount); err != nil {
		return nil, err
	}
	RecordTransaction(ctx, s.store, &models.Transaction{
		Type:         models.TxDebtCreated,
		Amount:       in.Amount,
		ClientID:     clientID,
		BranchID:     branchID,
		Description:  in.Notes,
		RelatedModel: "debtor",
		RelatedID:    debtor.ID,
		CreatedBy:    createdBy,
	})
	return debtor, nil
}

// Pay applies a payment to a debtor. Remaining debt is floored at zero
// per currency; only the amount actually applied comes off the client
// debt cache. Exactly one debt-payment transaction is recorded.
func (s *DebtService) Pay(ctx context.Context, debtorID primitive.ObjectID, in models.DebtPaymentInput, createdBy string) (*models.Debtor, error) {
	if !in.Amount.HasPositive() {
		return nil, &ValidationError{Field: "amount", Message: "must be positive"}
	}
	debtor, err := s.store.GetDebtor(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	before := debtor.RemainingDebt
	debtor.RemainingDebt = debtor.RemainingDebt.Sub(in.Amount).FloorZero()
	applied := before.Sub(debtor.RemainingDebt)
	debtor.PaidAmount = debtor.PaidAmount.Add(in.Amount)
	debtor.LastPayment = time.Now()
	if in.NextPayment != nil {
		debtor.NextPayment = *in.NextPayment
	}
	debtor.Status = DeriveDebtorStatus(debtor)
	debtor.UpdatedAt = time.Now()
	if err := s.store.SaveDebtor(ctx, debtor); err != nil {
		return nil, err
	}

	if applied.HasPositive() {
		if err := s.store.AdjustClientDebt(ctx, debtor.ClientID, applied.Neg()); err != nil {
			return nil, err
		}
	}
	RecordTransaction(ctx, s.store, &models.Transaction{
		Type:         models.TxDebtPayment,
		Amount:       in.Amount,
		PaymentType:  in.PaymentType,
		Description:  in.Description,
		ClientID:     debtor.ClientID,
		BranchID:     debtor.BranchID,
		RelatedModel: "debtor",
		RelatedID:    debtor.ID,
		CreatedBy:    createdBy,
	})
	return debtor, nil
}

// SoftDelete marks a debtor deleted and takes its remaining debt back
// off the client cache.
func (s *DebtService) SoftDelete(ctx context.Context, debtorID primitive.ObjectID) error {
	debtor, err := s.store.GetDebtor(ctx, debtorID)
	if err != nil {
		return err
	}
	if debtor.IsDeleted {
		return nil
	}
	remaining := debtor.RemainingDebt
	debtor.IsDeleted = true
	debtor.UpdatedAt = time.Now()
	if err := s.store.SaveDebtor(ctx, debtor); err != nil {
		return err
	}
	if remaining.HasPositive() {
		return s.store.AdjustClientDebt(ctx, debtor.ClientID, remaining.Neg())
	}
	return nil
}
