package queries

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

type OrderReadStore interface {
	FindMemberByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error)
	FindGuestByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListBySession(ctx context.Context, sessionID string) ([]*OrderListItem, error)
}

type OrderQueries interface {
	GetMemberOrder(ctx context.Context, userID, id uuid.UUID) (*OrderView, error)
	ListMemberOrders(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error)
	GetGuestOrder(ctx context.Context, sessionID string, id uuid.UUID) (*OrderView, error)
	ListGuestOrders(ctx context.Context, sessionID string) ([]*OrderListItem, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

// Ownership is enforced here: a foreign order id reads as not found.
func (q *orderQueriesImpl) GetMemberOrder(ctx context.Context, userID, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindMemberByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if view.UserID == nil || *view.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return view, nil
}

func (q *orderQueriesImpl) ListMemberOrders(ctx context.Context, userID uuid.UUID) ([]*OrderListItem, error) {
	return q.store.ListByUser(ctx, userID)
}

func (q *orderQueriesImpl) GetGuestOrder(ctx context.Context, sessionID string, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindGuestByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if view.GuestSessionID == nil || *view.GuestSessionID != sessionID {
		return nil, ErrOrderNotFound
	}
	return view, nil
}

func (q *orderQueriesImpl) ListGuestOrders(ctx context.Context, sessionID string) ([]*OrderListItem, error) {
	return q.store.ListBySession(ctx, sessionID)
}
