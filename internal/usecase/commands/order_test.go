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

type orderFixture struct {
	uow       *stubUoW
	providers *MockShippingProviderRepository
	commands  commands.OrderCommands
}

func newOrderFixture() *orderFixture {
	uow := newStubUoW()
	providers := new(MockShippingProviderRepository)
	return &orderFixture{
		uow:       uow,
		providers: providers,
		commands:  commands.NewOrderCommands(uow, providers, clock.NewMockClock(evalNow)),
	}
}

func memberIntent(userID uuid.UUID, items ...commands.LineInput) commands.PlaceOrderInput {
	return commands.PlaceOrderInput{
		Items:         items,
		PaymentMethod: order.PaymentMethodCOD,
		Source:        order.SourceBuyNow,
		UserID:        &userID,
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("buy-now success without coupon", func(t *testing.T) {
		f := newOrderFixture()
		v1, v2 := uuid.New(), uuid.New()
		in := memberIntent(userID,
			commands.LineInput{VariantID: v1, Quantity: 2, UnitPriceCents: 500},
			commands.LineInput{VariantID: v2, Quantity: 1, UnitPriceCents: 300},
		)

		f.uow.tx.variants.On("LockForUpdate", ctx, mock.Anything).Return([]shared.VariantSnapshot{
			{ID: v1, SKU: "SKU-1", StockQuantity: 10},
			{ID: v2, SKU: "SKU-2", StockQuantity: 5},
		}, nil)
		f.uow.tx.orders.On("Create", ctx, mock.Anything).Return(nil)
		f.uow.tx.variants.On("DecrementStock", ctx, v1, int32(2)).Return(nil)
		f.uow.tx.variants.On("DecrementStock", ctx, v2, int32(1)).Return(nil)

		placed, err := f.commands.PlaceOrder(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1300), placed.SubtotalCents())
		assert.Equal(t, int64(1300), placed.TotalCents())
		assert.Equal(t, order.StatusPending, placed.Status())
		assert.Equal(t, order.PaymentPending, placed.PaymentStatus())
		// The returned record carries the placement time, not a zero value.
		assert.Equal(t, evalNow, placed.CreatedAt())

		f.uow.tx.variants.AssertExpectations(t)
		f.uow.tx.orders.AssertExpectations(t)
		f.uow.tx.carts.AssertNotCalled(t, "RemoveLines", mock.Anything, mock.Anything, mock.Anything)
		f.uow.tx.usageLogs.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate lines are merged before the stock check", func(t *testing.T) {
		f := newOrderFixture()
		v1 := uuid.New()
		in := memberIntent(userID,
			commands.LineInput{VariantID: v1, Quantity: 1, UnitPriceCents: 500},
			commands.LineInput{VariantID: v1, Quantity: 2, UnitPriceCents: 500},
		)

		f.uow.tx.variants.On("LockForUpdate", ctx, mock.MatchedBy(func(ids []uuid.UUID) bool {
			return len(ids) == 1 && ids[0] == v1
		})).Return([]shared.VariantSnapshot{
			{ID: v1, SKU: "SKU-1", StockQuantity: 3},
		}, nil)
		f.uow.tx.orders.On("Create", ctx, mock.Anything).Return(nil)
		f.uow.tx.variants.On("DecrementStock", ctx, v1, int32(3)).Return(nil)

		placed, err := f.commands.PlaceOrder(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), placed.SubtotalCents())
		f.uow.tx.variants.AssertExpectations(t)
	})

	t.Run("insufficient stock aborts before any mutation", func(t *testing.T) {
		f := newOrderFixture()
		v1 := uuid.New()
		in := memberIntent(userID, commands.LineInput{VariantID: v1, Quantity: 2, UnitPriceCents: 500})

		f.uow.tx.variants.On("LockForUpdate", ctx, mock.Anything).Return([]shared.VariantSnapshot{
			{ID: v1, SKU: "SKU-1", StockQuantity: 1},
		}, nil)

		_, err := f.commands.PlaceOrder(ctx, in)
		assert.ErrorIs(t, err, commands.ErrInsufficientStock)
		assert.Contains(t, err.Error(), "SKU-1")

		f.uow.tx.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.uow.tx.variants.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown variant", func(t *testing.T) {
		f := newOrderFixture()
		in := memberIntent(userID, commands.LineInput{VariantID: uuid.New(), Quantity: 1, UnitPriceCents: 100})

		f.uow.tx.variants.On("LockForUpdate", ctx, mock.Anything).Return([]shared.VariantSnapshot{}, nil)

		_, err := f.commands.PlaceOrder(ctx, in)
		assert.ErrorIs(t, err, commands.ErrVariantNotFound)
		f.uow.tx.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("owner identity must be exactly one of member or guest", func(t *testing.T) {
		f := newOrderFixture()
		in := memberIntent(userID, commands.LineInput{VariantID: uuid.New(), Quantity: 1, UnitPriceCents: 100})
		in.Guest = &order.GuestContact{
			Email: "g@example.com", FullName: "G", Address: "A", SessionID: "s",
		}

		_, err := f.commands.PlaceOrder(ctx, in)
		assert.ErrorIs(t, err, commands.ErrInvalidOrderInput)

		in.Guest = nil
		in.UserID = nil
		_, err = f.commands.PlaceOrder(ctx, in)
		assert.ErrorIs(t, err, commands.ErrInvalidOrderInput)
	})

	t.Run("unknown shipping provider", func(t *testing.T) {
		f := newOrderFixture()
		providerID := uuid.New()
		in := memberIntent(userID, commands.LineInput{VariantID: uuid.New(), Quantity: 1, UnitPriceCents: 100})
		in.ShippingProviderID = &providerID

		f.providers.On("FindByID", ctx, providerID).Return(nil, notFoundErr())

		_, err := f.commands.PlaceOrder(ctx, in)
		assert.ErrorIs(t, err, commands.ErrShippingProviderNotFound)
	})

	t.Run("cart-sourced order consumes member cart lines", func(t *testing.T) {
		f := newOrderFixture()
		v1 := uuid.New()
		in := memberIntent(userID, commands.LineInput{VariantID: v1, Quantity: 1, UnitPriceCents: 500})
		in.Source = order.SourceCart

		f.uow.tx.variants.On("LockForUpdate", ctx, mock.Anything).Return([]shared.VariantSnapshot{
			{ID: v1, SKU: "SKU-1", StockQuantity: 1},
		}, nil)
		f.uow.tx.orders.On("Create", ctx, mock.Anything).Return(nil)
		f.uow.tx.variants.On("DecrementStock", ctx, v1, int32(1)).Return(nil)
		f.uow.tx.carts.On("RemoveLines", ctx, mock.MatchedBy(func(owner shared.CartOwner) bool {
			return owner.UserID != nil && *owner.UserID == userID
		}), []uuid.UUID{v1}).Return(nil)

		_, err := f.commands.PlaceOrder(ctx, in)
		require.NoError(t, err)
		f.uow.tx.carts.AssertExpectations(t)
	})

	t.Run("coupon redemption is recorded inside the transaction", func(t *testing.T) {
		f := newOrderFixture()
		v1 := uuid.New()
		snap := privateCoupon()
		code := snap.Code
		in := memberIntent(userID, commands.LineInput{VariantID: v1, Quantity: 1, UnitPriceCents: 5000})
		in.CouponCode = &code

		f.uow.tx.variants.On("LockForUpdate", ctx, mock.Anything).Return([]shared.VariantSnapshot{
			{ID: v1, SKU: "SKU-1", StockQuantity: 1},
		}, nil)
		f.uow.tx.couponAccess.On("CouponByCode", ctx, code).Return(snap, nil)
		f.uow.tx.couponAccess.On("VoucherFor", ctx, userID, snap.ID).Return(&shared.VoucherSnapshot{
			UserID: userID, CouponID: snap.ID,
		}, nil)
		f.uow.tx.orders.On("Create", ctx, mock.Anything).Return(nil)
		f.uow.tx.variants.On("DecrementStock", ctx, v1, int32(1)).Return(nil)
		f.uow.tx.usageLogs.On("Record", ctx, snap.ID, &userID, mock.Anything).Return(nil)
		f.uow.tx.coupons.On("IncrementUsedCount", ctx, snap.ID).Return(nil)
		f.uow.tx.vouchers.On("MarkUsed", ctx, userID, snap.ID).Return(nil)

		placed, err := f.commands.PlaceOrder(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), placed.DiscountCents())
		assert.Equal(t, int64(3000), placed.TotalCents())

		f.uow.tx.usageLogs.AssertExpectations(t)
		f.uow.tx.coupons.AssertExpectations(t)
		f.uow.tx.vouchers.AssertExpectations(t)
	})

	t.Run("ineligible coupon aborts placement", func(t *testing.T) {
		f := newOrderFixture()
		v1 := uuid.New()
		code := "SAVE10"
		in := memberIntent(userID, commands.LineInput{VariantID: v1, Quantity: 1, UnitPriceCents: 100})
		in.CouponCode = &code

		f.uow.tx.variants.On("LockForUpdate", ctx, mock.Anything).Return([]shared.VariantSnapshot{
			{ID: v1, SKU: "SKU-1", StockQuantity: 1},
		}, nil)
		f.uow.tx.couponAccess.On("CouponByCode", ctx, code).Return(nil, notFoundErr())

		_, err := f.commands.PlaceOrder(ctx, in)
		assert.ErrorIs(t, err, commands.ErrCouponNotFound)
		f.uow.tx.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.uow.tx.variants.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	memberRef := func() shared.OrderRef { return shared.OrderRef{ID: uuid.New()} }

	t.Run("owner cancels a pending order", func(t *testing.T) {
		f := newOrderFixture()
		ref := memberRef()
		f.uow.tx.orders.On("FindHeadForUpdate", ctx, ref).Return(&shared.OrderHeadSnapshot{
			Ref: ref, Status: order.StatusPending, UserID: &userID,
		}, nil)
		f.uow.tx.orders.On("UpdateStatus", ctx, ref, order.StatusCancelled).Return(nil)

		err := f.commands.CancelOrder(ctx, ref, commands.Actor{UserID: &userID})
		require.NoError(t, err)
		f.uow.tx.orders.AssertExpectations(t)
	})

	t.Run("foreign order reads as not found", func(t *testing.T) {
		f := newOrderFixture()
		ref := memberRef()
		other := uuid.New()
		f.uow.tx.orders.On("FindHeadForUpdate", ctx, ref).Return(&shared.OrderHeadSnapshot{
			Ref: ref, Status: order.StatusPending, UserID: &other,
		}, nil)

		err := f.commands.CancelOrder(ctx, ref, commands.Actor{UserID: &userID})
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
		f.uow.tx.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin may cancel a foreign order", func(t *testing.T) {
		f := newOrderFixture()
		ref := memberRef()
		other := uuid.New()
		adminID := uuid.New()
		f.uow.tx.orders.On("FindHeadForUpdate", ctx, ref).Return(&shared.OrderHeadSnapshot{
			Ref: ref, Status: order.StatusPending, UserID: &other,
		}, nil)
		f.uow.tx.orders.On("UpdateStatus", ctx, ref, order.StatusCancelled).Return(nil)

		err := f.commands.CancelOrder(ctx, ref, commands.Actor{UserID: &adminID, Role: "admin"})
		require.NoError(t, err)
	})

	t.Run("confirmed order is not cancellable", func(t *testing.T) {
		f := newOrderFixture()
		ref := memberRef()
		f.uow.tx.orders.On("FindHeadForUpdate", ctx, ref).Return(&shared.OrderHeadSnapshot{
			Ref: ref, Status: order.StatusConfirmed, UserID: &userID,
		}, nil)

		err := f.commands.CancelOrder(ctx, ref, commands.Actor{UserID: &userID})
		assert.ErrorIs(t, err, commands.ErrOrderNotCancellable)
	})

	t.Run("guest cancel is scoped by session", func(t *testing.T) {
		f := newOrderFixture()
		ref := shared.OrderRef{ID: uuid.New(), Guest: true}
		session := "sess-abc"
		otherSession := "sess-other"

		f.uow.tx.orders.On("FindHeadForUpdate", ctx, ref).Return(&shared.OrderHeadSnapshot{
			Ref: ref, Status: order.StatusPending, SessionID: &session,
		}, nil)

		err := f.commands.CancelOrder(ctx, ref, commands.Actor{SessionID: &otherSession})
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderFixture()
		ref := memberRef()
		f.uow.tx.orders.On("FindHeadForUpdate", ctx, ref).Return(nil, notFoundErr())

		err := f.commands.CancelOrder(ctx, ref, commands.Actor{UserID: &userID})
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}
