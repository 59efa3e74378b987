package readstore

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

var _ queries.OrderReadStore = (*OrderReadStore)(nil)

func (s *OrderReadStore) FindMemberByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const query = `
		SELECT id, user_id, subtotal_cents, shipping_fee_cents, discount_cents, total_cents,
		       coupon_code, payment_method, payment_status, payment_txn_ref, paid_at,
		       status, shipping_provider_id, created_at
		FROM orders
		WHERE id = $1`

	var view queries.OrderView
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.UserID, &view.SubtotalCents, &view.ShippingFeeCents, &view.DiscountCents, &view.TotalCents,
		&view.CouponCode, &view.PaymentMethod, &view.PaymentStatus, &view.PaymentTxnRef, &view.PaidAt,
		&view.Status, &view.ShippingProviderID, &view.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	view.Lines, err = s.loadLines(ctx, "order_lines", "order_id", id)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *OrderReadStore) FindGuestByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const query = `
		SELECT id, guest_email, guest_full_name, session_id,
		       subtotal_cents, shipping_fee_cents, discount_cents, total_cents,
		       coupon_code, payment_method, payment_status, payment_txn_ref, paid_at,
		       status, shipping_provider_id, created_at
		FROM guest_orders
		WHERE id = $1`

	view := queries.OrderView{IsGuest: true}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.GuestEmail, &view.GuestFullName, &view.GuestSessionID,
		&view.SubtotalCents, &view.ShippingFeeCents, &view.DiscountCents, &view.TotalCents,
		&view.CouponCode, &view.PaymentMethod, &view.PaymentStatus, &view.PaymentTxnRef, &view.PaidAt,
		&view.Status, &view.ShippingProviderID, &view.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find guest order", err)
	}

	view.Lines, err = s.loadLines(ctx, "guest_order_lines", "guest_order_id", id)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *OrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.OrderListItem, error) {
	const query = `
		SELECT o.id, o.total_cents, o.status, o.payment_status, COUNT(l.id), o.created_at
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE o.user_id = $1
		GROUP BY o.id
		ORDER BY o.created_at DESC`

	return s.listItems(ctx, query, userID)
}

func (s *OrderReadStore) ListBySession(ctx context.Context, sessionID string) ([]*queries.OrderListItem, error) {
	const query = `
		SELECT o.id, o.total_cents, o.status, o.payment_status, COUNT(l.id), o.created_at
		FROM guest_orders o
		LEFT JOIN guest_order_lines l ON l.guest_order_id = o.id
		WHERE o.session_id = $1
		GROUP BY o.id
		ORDER BY o.created_at DESC`

	return s.listItems(ctx, query, sessionID)
}

func (s *OrderReadStore) listItems(ctx context.Context, query string, key any) ([]*queries.OrderListItem, error) {
	rows, err := s.db.Query(ctx, query, key)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	items := make([]*queries.OrderListItem, 0)
	for rows.Next() {
		var item queries.OrderListItem
		err := rows.Scan(&item.ID, &item.TotalCents, &item.Status, &item.PaymentStatus, &item.LineCount, &item.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order list rows", err)
	}
	return items, nil
}

func (s *OrderReadStore) loadLines(ctx context.Context, table, fkColumn string, orderID uuid.UUID) ([]queries.OrderLineView, error) {
	// Table and column names come from the two call sites above, never from input.
	query := `
		SELECT l.variant_id, v.sku, l.quantity, l.unit_price_cents
		FROM ` + table + ` l
		JOIN variants v ON v.id = l.variant_id
		WHERE l.` + fkColumn + ` = $1
		ORDER BY v.sku`

	rows, err := s.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}
	defer rows.Close()

	lines := make([]queries.OrderLineView, 0)
	for rows.Next() {
		var line queries.OrderLineView
		if err := rows.Scan(&line.VariantID, &line.SKU, &line.Quantity, &line.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line row", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order line rows", err)
	}
	return lines, nil
}
