package commands

import (
	"context"
	"errors"
	"time"

	"shop-orders/internal/domain/coupon"
	"shop-orders/internal/infra"
	"shop-orders/internal/pkg/clock"
	"shop-orders/internal/pkg/errs"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCouponNotFound        = errs.New("coupon not found")
	ErrCouponExpired         = errs.New("coupon has expired")
	ErrCouponExhausted       = errs.New("coupon has no remaining uses")
	ErrBelowMinimumPurchase  = errs.New("order subtotal is below the coupon minimum purchase amount")
	ErrCouponMembersOnly     = errs.New("coupon is only available to signed-in members")
	ErrVoucherNotAssigned    = errs.New("coupon is not in your voucher wallet")
	ErrVoucherAlreadyUsed    = errs.New("voucher has already been used")
	ErrCouponPerUserLimit    = errs.New("coupon per-user usage limit reached")
	ErrCouponMisconfigured   = errs.New("coupon is misconfigured")
)

// Evaluation is the outcome of a successful eligibility check.
type Evaluation struct {
	Coupon        *shared.CouponSnapshot
	DiscountCents int64
}

// evaluateCoupon is the single implementation behind both the advisory
// pre-check and the authoritative in-transaction check; only the CouponAccess
// differs between the two call sites. Checks run in a fixed order and the
// first failure short-circuits.
func evaluateCoupon(
	ctx context.Context,
	access shared.CouponAccess,
	now time.Time,
	code string,
	subtotalCents int64,
	userID *uuid.UUID,
) (*Evaluation, error) {
	// Codes are stored normalized; a string that cannot normalize matches
	// no coupon.
	normalized, err := coupon.NewCode(code)
	if err != nil {
		return nil, ErrCouponNotFound
	}

	snap, err := access.CouponByCode(ctx, normalized.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := snap.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrCouponMisconfigured)
	}

	if err := entity.ValidateRedeemable(now, subtotalCents); err != nil {
		switch {
		case errors.Is(err, coupon.ErrExpired):
			return nil, ErrCouponExpired
		case errors.Is(err, coupon.ErrGloballyExhausted):
			return nil, ErrCouponExhausted
		case errors.Is(err, coupon.ErrBelowMinimumPurchase):
			return nil, ErrBelowMinimumPurchase
		default:
			return nil, errs.Mark(err, ErrCouponMisconfigured)
		}
	}

	if err := checkAudience(ctx, access, entity, userID); err != nil {
		return nil, err
	}

	discount, err := entity.DiscountCents(subtotalCents)
	if err != nil {
		return nil, errs.Mark(err, ErrCouponMisconfigured)
	}

	return &Evaluation{
		Coupon:        snap,
		DiscountCents: discount,
	}, nil
}

func checkAudience(
	ctx context.Context,
	access shared.CouponAccess,
	entity *coupon.Coupon,
	userID *uuid.UUID,
) error {
	if !entity.IsPublic() {
		// Private coupons require membership plus an unused voucher assignment.
		if userID == nil {
			return ErrCouponMembersOnly
		}
		voucher, err := access.VoucherFor(ctx, *userID, entity.ID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrVoucherNotAssigned
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if voucher.IsUsed {
			return ErrVoucherAlreadyUsed
		}
		return nil
	}

	// Guests have no identity to count against; they are bounded only by the
	// global cap checked earlier.
	if entity.UsesPerUser() > 0 && userID != nil {
		used, err := access.CountUsageByUser(ctx, entity.ID(), *userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if used >= int64(entity.UsesPerUser()) {
			return ErrCouponPerUserLimit
		}
	}
	return nil
}

// CouponCommands exposes the advisory pre-check used by checkout UX. It reads
// latest committed data without locks and must never be trusted for final
// pricing; placement re-runs the same evaluation inside its transaction.
type CouponCommands interface {
	Validate(ctx context.Context, code string, subtotalCents int64, userID *uuid.UUID) (*Evaluation, error)
}

type couponCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCouponCommands(uow shared.UnitOfWork, clock clock.Clock) CouponCommands {
	return &couponCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

func (c *couponCommandsImpl) Validate(ctx context.Context, code string, subtotalCents int64, userID *uuid.UUID) (*Evaluation, error) {
	return evaluateCoupon(ctx, c.uow.CouponReads(), c.clock.Now(), code, subtotalCents, userID)
}
