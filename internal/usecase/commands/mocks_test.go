//go:build unit

package commands_test

import (
	"context"
	"time"

	"shop-orders/internal/domain/order"
	"shop-orders/internal/infra"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func notFoundErr() error {
	return infra.WrapRepoErr("no rows", nil, infra.KindNotFound)
}

type MockCouponAccess struct{ mock.Mock }

func (m *MockCouponAccess) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	args := m.Called(ctx, code)
	if snap := args.Get(0); snap != nil {
		return snap.(*shared.CouponSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponAccess) VoucherFor(ctx context.Context, userID, couponID uuid.UUID) (*shared.VoucherSnapshot, error) {
	args := m.Called(ctx, userID, couponID)
	if snap := args.Get(0); snap != nil {
		return snap.(*shared.VoucherSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponAccess) CountUsageByUser(ctx context.Context, couponID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, couponID, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockVariantRepository struct{ mock.Mock }

func (m *MockVariantRepository) LockForUpdate(ctx context.Context, ids []uuid.UUID) ([]shared.VariantSnapshot, error) {
	args := m.Called(ctx, ids)
	if snaps := args.Get(0); snaps != nil {
		return snaps.([]shared.VariantSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVariantRepository) DecrementStock(ctx context.Context, variantID uuid.UUID, quantity int32) error {
	return m.Called(ctx, variantID, quantity).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) FindHeadForUpdate(ctx context.Context, ref shared.OrderRef) (*shared.OrderHeadSnapshot, error) {
	args := m.Called(ctx, ref)
	if head := args.Get(0); head != nil {
		return head.(*shared.OrderHeadSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, ref shared.OrderRef, status order.Status) error {
	return m.Called(ctx, ref, status).Error(0)
}

func (m *MockOrderRepository) FindPaymentForUpdate(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	args := m.Called(ctx, id)
	if snap := args.Get(0); snap != nil {
		return snap.(*shared.PaymentSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ResolvePayment(ctx context.Context, ref shared.OrderRef, status order.PaymentStatus, txnRef string, paidAt time.Time) error {
	return m.Called(ctx, ref, status, txnRef, paidAt).Error(0)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) IncrementUsedCount(ctx context.Context, couponID uuid.UUID) error {
	return m.Called(ctx, couponID).Error(0)
}

type MockVoucherRepository struct{ mock.Mock }

func (m *MockVoucherRepository) MarkUsed(ctx context.Context, userID, couponID uuid.UUID) error {
	return m.Called(ctx, userID, couponID).Error(0)
}

type MockUsageLogRepository struct{ mock.Mock }

func (m *MockUsageLogRepository) Record(ctx context.Context, couponID uuid.UUID, userID *uuid.UUID, ref shared.OrderRef) error {
	return m.Called(ctx, couponID, userID, ref).Error(0)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) RemoveLines(ctx context.Context, owner shared.CartOwner, variantIDs []uuid.UUID) error {
	return m.Called(ctx, owner, variantIDs).Error(0)
}

type MockShippingProviderRepository struct{ mock.Mock }

func (m *MockShippingProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.ShippingProviderSnapshot, error) {
	args := m.Called(ctx, id)
	if snap := args.Get(0); snap != nil {
		return snap.(*shared.ShippingProviderSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubTx hands the mocks out through the transaction interface.
type stubTx struct {
	variants     *MockVariantRepository
	orders       *MockOrderRepository
	coupons      *MockCouponRepository
	vouchers     *MockVoucherRepository
	usageLogs    *MockUsageLogRepository
	carts        *MockCartRepository
	couponAccess *MockCouponAccess
}

func newStubTx() *stubTx {
	return &stubTx{
		variants:     new(MockVariantRepository),
		orders:       new(MockOrderRepository),
		coupons:      new(MockCouponRepository),
		vouchers:     new(MockVoucherRepository),
		usageLogs:    new(MockUsageLogRepository),
		carts:        new(MockCartRepository),
		couponAccess: new(MockCouponAccess),
	}
}

func (t *stubTx) Variants() shared.VariantRepository   { return t.variants }
func (t *stubTx) Orders() shared.OrderRepository       { return t.orders }
func (t *stubTx) Coupons() shared.CouponRepository     { return t.coupons }
func (t *stubTx) Vouchers() shared.VoucherRepository   { return t.vouchers }
func (t *stubTx) UsageLogs() shared.UsageLogRepository { return t.usageLogs }
func (t *stubTx) Carts() shared.CartRepository         { return t.carts }
func (t *stubTx) CouponAccess() shared.CouponAccess    { return t.couponAccess }

// stubUoW runs the closure directly against the stub transaction, with no
// retry loop.
type stubUoW struct {
	tx    *stubTx
	reads *MockCouponAccess
}

func newStubUoW() *stubUoW {
	return &stubUoW{
		tx:    newStubTx(),
		reads: new(MockCouponAccess),
	}
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUoW) CouponReads() shared.CouponAccess {
	return u.reads
}
