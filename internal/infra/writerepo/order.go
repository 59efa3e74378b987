package writerepo

import (
	"context"
	"time"

	"shop-orders/internal/domain/order"
	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type orderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) shared.OrderRepository {
	return &orderRepository{db: dbtx}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	if o.IsGuest() {
		return r.createGuest(ctx, o)
	}
	return r.createMember(ctx, o)
}

func (r *orderRepository) createMember(ctx context.Context, o *order.Order) error {
	const insertHeader = `
		INSERT INTO orders (
			id, user_id,
			subtotal_cents, shipping_fee_cents, discount_cents, total_cents,
			coupon_code, payment_method, payment_status, status,
			shipping_provider_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, insertHeader,
		o.ID(), o.UserID(),
		o.SubtotalCents(), o.ShippingFeeCents(), o.DiscountCents(), o.TotalCents(),
		o.CouponCode(), string(o.PaymentMethod()), o.PaymentStatus().String(), o.Status().String(),
		o.ShippingProviderID(), o.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert order", err)
	}
	return r.insertLines(ctx, "order_lines", "order_id", o.ID(), o.Lines())
}

func (r *orderRepository) createGuest(ctx context.Context, o *order.Order) error {
	const insertHeader = `
		INSERT INTO guest_orders (
			id, guest_email, guest_full_name, guest_phone, guest_address, session_id,
			subtotal_cents, shipping_fee_cents, discount_cents, total_cents,
			coupon_code, payment_method, payment_status, status,
			shipping_provider_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	g := o.Guest()
	_, err := r.db.Exec(ctx, insertHeader,
		o.ID(), g.Email, g.FullName, g.Phone, g.Address, g.SessionID,
		o.SubtotalCents(), o.ShippingFeeCents(), o.DiscountCents(), o.TotalCents(),
		o.CouponCode(), string(o.PaymentMethod()), o.PaymentStatus().String(), o.Status().String(),
		o.ShippingProviderID(), o.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert guest order", err)
	}
	return r.insertLines(ctx, "guest_order_lines", "guest_order_id", o.ID(), o.Lines())
}

func (r *orderRepository) insertLines(ctx context.Context, table, fkColumn string, orderID uuid.UUID, lines order.Lines) error {
	// Table and column names come from the two constants above, never from input.
	query := `
		INSERT INTO ` + table + ` (id, ` + fkColumn + `, variant_id, quantity, unit_price_cents)
		VALUES ($1, $2, $3, $4, $5)`

	for _, line := range lines {
		_, err := r.db.Exec(ctx, query,
			uuid.New(), orderID, line.VariantID(), line.Quantity(), line.UnitPriceCents(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert order line", err)
		}
	}
	return nil
}

func (r *orderRepository) FindHeadForUpdate(ctx context.Context, ref shared.OrderRef) (*shared.OrderHeadSnapshot, error) {
	head := &shared.OrderHeadSnapshot{Ref: ref}
	if ref.Guest {
		const query = `SELECT status, session_id FROM guest_orders WHERE id = $1 FOR UPDATE`
		var status string
		var sessionID string
		if err := r.db.QueryRow(ctx, query, ref.ID).Scan(&status, &sessionID); err != nil {
			return nil, infra.WrapRepoErr("failed to lock guest order head", err)
		}
		head.Status = order.Status(status)
		head.SessionID = &sessionID
		return head, nil
	}

	const query = `SELECT status, user_id FROM orders WHERE id = $1 FOR UPDATE`
	var status string
	var userID uuid.UUID
	if err := r.db.QueryRow(ctx, query, ref.ID).Scan(&status, &userID); err != nil {
		return nil, infra.WrapRepoErr("failed to lock order head", err)
	}
	head.Status = order.Status(status)
	head.UserID = &userID
	return head, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, ref shared.OrderRef, status order.Status) error {
	query := `UPDATE orders SET status = $2 WHERE id = $1`
	if ref.Guest {
		query = `UPDATE guest_orders SET status = $2 WHERE id = $1`
	}
	tag, err := r.db.Exec(ctx, query, ref.ID, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found for status update", nil, infra.KindNotFound)
	}
	return nil
}

// FindPaymentForUpdate resolves a gateway-supplied order id against the member
// table first, then the guest table.
func (r *orderRepository) FindPaymentForUpdate(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	const memberQuery = `SELECT payment_status FROM orders WHERE id = $1 FOR UPDATE`
	var status string
	err := r.db.QueryRow(ctx, memberQuery, id).Scan(&status)
	if err == nil {
		return &shared.PaymentSnapshot{
			Ref:           shared.OrderRef{ID: id},
			PaymentStatus: order.PaymentStatus(status),
		}, nil
	}
	if !infra.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to lock order payment", err)
	}

	const guestQuery = `SELECT payment_status FROM guest_orders WHERE id = $1 FOR UPDATE`
	if err := r.db.QueryRow(ctx, guestQuery, id).Scan(&status); err != nil {
		return nil, infra.WrapRepoErr("failed to lock guest order payment", err)
	}
	return &shared.PaymentSnapshot{
		Ref:           shared.OrderRef{ID: id, Guest: true},
		PaymentStatus: order.PaymentStatus(status),
	}, nil
}

func (r *orderRepository) ResolvePayment(ctx context.Context, ref shared.OrderRef, status order.PaymentStatus, txnRef string, paidAt time.Time) error {
	query := `UPDATE orders SET payment_status = $2, payment_txn_ref = $3, paid_at = $4 WHERE id = $1 AND payment_status = 'pending'`
	if ref.Guest {
		query = `UPDATE guest_orders SET payment_status = $2, payment_txn_ref = $3, paid_at = $4 WHERE id = $1 AND payment_status = 'pending'`
	}

	var paidAtArg *time.Time
	if status == order.PaymentPaid {
		paidAtArg = &paidAt
	}

	tag, err := r.db.Exec(ctx, query, ref.ID, status.String(), txnRef, paidAtArg)
	if err != nil {
		return infra.WrapRepoErr("failed to resolve payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order payment already resolved", nil, infra.KindNotFound)
	}
	return nil
}
