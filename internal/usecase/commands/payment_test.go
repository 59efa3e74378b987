//go:build unit

package commands_test

import (
	"context"
	"testing"

	"shop-orders/internal/domain/order"
	"shop-orders/internal/pkg/clock"
	"shop-orders/internal/usecase/commands"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	newFixture := func() (*stubUoW, commands.PaymentCommands) {
		uow := newStubUoW()
		return uow, commands.NewPaymentCommands(uow, clock.NewMockClock(evalNow))
	}

	t.Run("applies a paid outcome once", func(t *testing.T) {
		uow, payments := newFixture()
		orderID := uuid.New()
		ref := shared.OrderRef{ID: orderID}

		uow.tx.orders.On("FindPaymentForUpdate", ctx, orderID).Return(&shared.PaymentSnapshot{
			Ref: ref, PaymentStatus: order.PaymentPending,
		}, nil)
		uow.tx.orders.On("ResolvePayment", ctx, ref, order.PaymentPaid, "txn-123", evalNow).Return(nil)

		result, err := payments.Confirm(ctx, orderID, order.PaymentPaid, "txn-123")
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.False(t, result.AlreadyConfirmed)
		uow.tx.orders.AssertExpectations(t)
	})

	t.Run("replayed callback is a no-op", func(t *testing.T) {
		uow, payments := newFixture()
		orderID := uuid.New()
		ref := shared.OrderRef{ID: orderID, Guest: true}

		uow.tx.orders.On("FindPaymentForUpdate", ctx, orderID).Return(&shared.PaymentSnapshot{
			Ref: ref, PaymentStatus: order.PaymentPaid,
		}, nil)

		result, err := payments.Confirm(ctx, orderID, order.PaymentPaid, "txn-123")
		require.NoError(t, err)
		assert.False(t, result.Applied)
		assert.True(t, result.AlreadyConfirmed)
		assert.True(t, result.Ref.Guest)
		uow.tx.orders.AssertNotCalled(t, "ResolvePayment",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed outcome after paid is still a no-op", func(t *testing.T) {
		uow, payments := newFixture()
		orderID := uuid.New()

		uow.tx.orders.On("FindPaymentForUpdate", ctx, orderID).Return(&shared.PaymentSnapshot{
			Ref: shared.OrderRef{ID: orderID}, PaymentStatus: order.PaymentPaid,
		}, nil)

		result, err := payments.Confirm(ctx, orderID, order.PaymentFailed, "txn-456")
		require.NoError(t, err)
		assert.True(t, result.AlreadyConfirmed)
	})

	t.Run("pending is not a valid outcome", func(t *testing.T) {
		_, payments := newFixture()

		_, err := payments.Confirm(ctx, uuid.New(), order.PaymentPending, "txn-123")
		assert.ErrorIs(t, err, commands.ErrInvalidPaymentOutcome)
	})

	t.Run("unknown order", func(t *testing.T) {
		uow, payments := newFixture()
		orderID := uuid.New()

		uow.tx.orders.On("FindPaymentForUpdate", ctx, orderID).Return(nil, notFoundErr())

		_, err := payments.Confirm(ctx, orderID, order.PaymentFailed, "txn-789")
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}
