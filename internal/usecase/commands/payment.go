package commands

import (
	"context"

	"shop-orders/internal/domain/order"
	"shop-orders/internal/infra"
	"shop-orders/internal/pkg/clock"
	"shop-orders/internal/pkg/errs"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidPaymentOutcome = errs.New("invalid payment outcome")

// ConfirmPaymentResult reports whether the callback mutated the order or hit
// an already-resolved one.
type ConfirmPaymentResult struct {
	Ref              shared.OrderRef
	Applied          bool
	AlreadyConfirmed bool
}

// PaymentCommands receives payment outcomes from the gateway collaborator.
// Signature verification happens upstream; this side only applies the
// already-verified outcome.
type PaymentCommands interface {
	Confirm(ctx context.Context, orderID uuid.UUID, outcome order.PaymentStatus, externalTxnRef string) (*ConfirmPaymentResult, error)
}

type paymentCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, clock clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

// Confirm resolves the payment axis exactly once. A second callback for the
// same order is a no-op reported as already confirmed, never an error.
func (u *paymentCommandsImpl) Confirm(ctx context.Context, orderID uuid.UUID, outcome order.PaymentStatus, externalTxnRef string) (*ConfirmPaymentResult, error) {
	if !outcome.IsResolved() {
		return nil, ErrInvalidPaymentOutcome
	}

	var result *ConfirmPaymentResult
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Orders().FindPaymentForUpdate(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if snap.PaymentStatus.IsResolved() {
			result = &ConfirmPaymentResult{
				Ref:              snap.Ref,
				Applied:          false,
				AlreadyConfirmed: true,
			}
			return nil
		}

		if err := tx.Orders().ResolvePayment(ctx, snap.Ref, outcome, externalTxnRef, u.clock.Now()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		result = &ConfirmPaymentResult{
			Ref:     snap.Ref,
			Applied: true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
