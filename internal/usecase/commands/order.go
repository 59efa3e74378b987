package commands

import (
	"context"
	"sort"
	"time"

	"shop-orders/internal/domain/order"
	"shop-orders/internal/infra"
	"shop-orders/internal/pkg/clock"
	"shop-orders/internal/pkg/errs"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrVariantNotFound          = errs.New("variant not found")
	ErrInsufficientStock        = errs.New("insufficient stock")
	ErrOrderNotFound            = errs.New("order not found")
	ErrOrderNotCancellable      = errs.New("only a pending order can be cancelled")
	ErrInvalidOrderInput        = errs.New("invalid order input")
	ErrShippingProviderNotFound = errs.New("shipping provider not found")
	ErrDatabaseOperationFailed  = errs.New("database operation failed")
)

type LineInput struct {
	VariantID      uuid.UUID
	Quantity       int32
	UnitPriceCents int64
}

// PlaceOrderInput is the normalized order intent handed over by the API
// layer. Exactly one of UserID and Guest must be set.
type PlaceOrderInput struct {
	Items              []LineInput
	CouponCode         *string
	ShippingProviderID *uuid.UUID
	ShippingFeeCents   int64
	PaymentMethod      order.PaymentMethod
	Source             order.Source
	UserID             *uuid.UUID
	Guest              *order.GuestContact
}

// Actor identifies who is asking for an order-level operation.
type Actor struct {
	UserID    *uuid.UUID
	Role      string
	SessionID *string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

type OrderCommands interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*order.Order, error)
	CancelOrder(ctx context.Context, ref shared.OrderRef, actor Actor) error
}

type orderCommandsImpl struct {
	uow       shared.UnitOfWork
	providers shared.ShippingProviderRepository
	clock     clock.Clock
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	providers shared.ShippingProviderRepository,
	clock clock.Clock,
) OrderCommands {
	return &orderCommandsImpl{
		uow:       uow,
		providers: providers,
		clock:     clock,
	}
}

// PlaceOrder converts an order intent into a persisted order atomically:
// lock+check every variant, evaluate the coupon under lock, create the
// aggregate, decrement stock, clean the cart, and record the redemption.
// Any failure rolls the whole transaction back.
func (u *orderCommandsImpl) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*order.Order, error) {
	lines, err := buildLines(in.Items)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidOrderInput)
	}
	if (in.UserID == nil) == (in.Guest == nil) {
		return nil, errs.Mark(errs.New("order must have exactly one owner identity"), ErrInvalidOrderInput)
	}
	if !in.Source.IsValid() {
		return nil, errs.Mark(errs.New("unknown order source"), ErrInvalidOrderInput)
	}

	if in.ShippingProviderID != nil {
		if _, err := u.providers.FindByID(ctx, *in.ShippingProviderID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrShippingProviderNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	needed := quantitiesByVariant(lines)
	subtotal := lines.SubtotalCents()
	now := u.clock.Now()

	var placed *order.Order
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Step 1: lock every variant (ascending id) and verify stock before
		// any mutation. A shortfall on any line aborts cleanly.
		stocks, err := lockAndCheckStock(ctx, tx, needed)
		if err != nil {
			return err
		}

		// Step 2: authoritative coupon evaluation under the coupon row lock.
		var discountCents int64
		var evaluation *Evaluation
		if in.CouponCode != nil {
			evaluation, err = evaluateCoupon(ctx, tx.CouponAccess(), now, *in.CouponCode, subtotal, in.UserID)
			if err != nil {
				return err
			}
			discountCents = evaluation.DiscountCents
		}

		// Steps 3-4: build and persist the aggregate with snapshot prices.
		placed, err = newOrderAggregate(in, lines, discountCents, now)
		if err != nil {
			return errs.Mark(err, ErrInvalidOrderInput)
		}
		if err := tx.Orders().Create(ctx, placed); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Step 5: decrement stock for each locked variant.
		for _, s := range stocks {
			if err := tx.Variants().DecrementStock(ctx, s.ID, needed[s.ID]); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		// Step 6: a cart-sourced order consumes its cart lines.
		if in.Source == order.SourceCart {
			owner := cartOwner(in)
			if err := tx.Carts().RemoveLines(ctx, owner, lines.VariantIDs()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		// Step 7: redemption bookkeeping, all under the coupon lock taken in
		// step 2.
		if evaluation != nil {
			if err := recordRedemption(ctx, tx, evaluation, placed, in.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (u *orderCommandsImpl) CancelOrder(ctx context.Context, ref shared.OrderRef, actor Actor) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		head, err := tx.Orders().FindHeadForUpdate(ctx, ref)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !actor.IsAdmin() && !ownsOrder(head, actor) {
			// Non-owners learn nothing about foreign orders.
			return ErrOrderNotFound
		}
		if !head.Status.IsCancellable() {
			return ErrOrderNotCancellable
		}

		if err := tx.Orders().UpdateStatus(ctx, ref, order.StatusCancelled); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func buildLines(items []LineInput) (order.Lines, error) {
	built := make([]order.Line, 0, len(items))
	for _, item := range items {
		line, err := order.NewLine(item.VariantID, item.Quantity, item.UnitPriceCents)
		if err != nil {
			return nil, err
		}
		built = append(built, line)
	}
	return order.NewLines(built)
}

// quantitiesByVariant merges duplicate lines so a variant appearing twice in
// the intent is checked and decremented against its combined quantity.
func quantitiesByVariant(lines order.Lines) map[uuid.UUID]int32 {
	needed := make(map[uuid.UUID]int32, len(lines))
	for _, l := range lines {
		needed[l.VariantID()] += l.Quantity()
	}
	return needed
}

func lockAndCheckStock(ctx context.Context, tx shared.Tx, needed map[uuid.UUID]int32) ([]shared.VariantSnapshot, error) {
	ids := make([]uuid.UUID, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	// Consistent lock order across all placements prevents deadlock between
	// concurrent multi-item orders.
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	stocks, err := tx.Variants().LockForUpdate(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	found := make(map[uuid.UUID]bool, len(stocks))
	for _, s := range stocks {
		found[s.ID] = true
		if s.StockQuantity < needed[s.ID] {
			return nil, errs.Mark(errs.Newf("variant %s has insufficient stock", s.SKU), ErrInsufficientStock)
		}
	}
	for _, id := range ids {
		if !found[id] {
			return nil, errs.Mark(errs.Newf("variant %s does not exist", id), ErrVariantNotFound)
		}
	}
	return stocks, nil
}

func newOrderAggregate(in PlaceOrderInput, lines order.Lines, discountCents int64, now time.Time) (*order.Order, error) {
	var appliedCode *string
	if discountCents > 0 || in.CouponCode != nil {
		appliedCode = in.CouponCode
	}
	if in.Guest != nil {
		return order.NewGuestOrder(*in.Guest, lines, in.ShippingFeeCents, discountCents, appliedCode, in.PaymentMethod, in.ShippingProviderID, now)
	}
	return order.NewMemberOrder(*in.UserID, lines, in.ShippingFeeCents, discountCents, appliedCode, in.PaymentMethod, in.ShippingProviderID, now)
}

func cartOwner(in PlaceOrderInput) shared.CartOwner {
	if in.Guest != nil {
		sessionID := in.Guest.SessionID
		return shared.CartOwner{SessionID: &sessionID}
	}
	return shared.CartOwner{UserID: in.UserID}
}

func recordRedemption(ctx context.Context, tx shared.Tx, evaluation *Evaluation, placed *order.Order, userID *uuid.UUID) error {
	ref := shared.OrderRef{ID: placed.ID(), Guest: placed.IsGuest()}
	if err := tx.UsageLogs().Record(ctx, evaluation.Coupon.ID, userID, ref); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Coupons().IncrementUsedCount(ctx, evaluation.Coupon.ID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !evaluation.Coupon.IsPublic && userID != nil {
		if err := tx.Vouchers().MarkUsed(ctx, *userID, evaluation.Coupon.ID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

func ownsOrder(head *shared.OrderHeadSnapshot, actor Actor) bool {
	if head.Ref.Guest {
		return actor.SessionID != nil && head.SessionID != nil && *actor.SessionID == *head.SessionID
	}
	return actor.UserID != nil && head.UserID != nil && *actor.UserID == *head.UserID
}
