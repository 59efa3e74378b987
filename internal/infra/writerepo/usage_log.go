package writerepo

import (
	"context"

	"shop-orders/internal/infra"
	"shop-orders/internal/infra/db"
	"shop-orders/internal/usecase/shared"

	"github.com/google/uuid"
)

type usageLogRepository struct {
	db db.DBTX
}

func NewUsageLogRepository(dbtx db.DBTX) shared.UsageLogRepository {
	return &usageLogRepository{db: dbtx}
}

func (r *usageLogRepository) Record(ctx context.Context, couponID uuid.UUID, userID *uuid.UUID, ref shared.OrderRef) error {
	const query = `
		INSERT INTO usage_logs (id, coupon_id, user_id, order_id, is_guest_order, used_at)
		VALUES ($1, $2, $3, $4, $5, now())`

	_, err := r.db.Exec(ctx, query, uuid.New(), couponID, userID, ref.ID, ref.Guest)
	if err != nil {
		return infra.WrapRepoErr("failed to record coupon usage", err)
	}
	return nil
}
