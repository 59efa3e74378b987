package uow

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"shop-orders/internal/infra/readstore"
	"shop-orders/internal/infra/writerepo"
	"shop-orders/internal/pkg/errs"
	"shop-orders/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxTxAttempts  = 3
	baseRetryDelay = 10 * time.Millisecond
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	reads shared.CouponAccess
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		reads: readstore.NewCouponReadStore(pool),
	}
}

// Within runs fn inside one read-committed transaction, retrying the whole
// closure on serialization failures and deadlocks. fn must therefore be safe
// to re-execute from the top.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepWithJitter(ctx, attempt); err != nil {
				return err
			}
		}

		err := u.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
	}
	return errs.Wrap(lastErr, "transaction retries exhausted")
}

func (u *PostgresUoW) CouponReads() shared.CouponAccess {
	return u.reads
}

func (u *PostgresUoW) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Wrap(err, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, newPgTx(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// pgTx binds the write repositories to one open transaction, constructing
// each lazily on first use.
type pgTx struct {
	tx pgx.Tx

	variants     shared.VariantRepository
	orders       shared.OrderRepository
	coupons      shared.CouponRepository
	vouchers     shared.VoucherRepository
	usageLogs    shared.UsageLogRepository
	carts        shared.CartRepository
	couponAccess shared.CouponAccess
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{tx: tx}
}

func (t *pgTx) Variants() shared.VariantRepository {
	if t.variants == nil {
		t.variants = writerepo.NewVariantRepository(t.tx)
	}
	return t.variants
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orders == nil {
		t.orders = writerepo.NewOrderRepository(t.tx)
	}
	return t.orders
}

func (t *pgTx) Coupons() shared.CouponRepository {
	if t.coupons == nil {
		t.coupons = writerepo.NewCouponRepository(t.tx)
	}
	return t.coupons
}

func (t *pgTx) Vouchers() shared.VoucherRepository {
	if t.vouchers == nil {
		t.vouchers = writerepo.NewVoucherRepository(t.tx)
	}
	return t.vouchers
}

func (t *pgTx) UsageLogs() shared.UsageLogRepository {
	if t.usageLogs == nil {
		t.usageLogs = writerepo.NewUsageLogRepository(t.tx)
	}
	return t.usageLogs
}

func (t *pgTx) Carts() shared.CartRepository {
	if t.carts == nil {
		t.carts = writerepo.NewCartRepository(t.tx)
	}
	return t.carts
}

func (t *pgTx) CouponAccess() shared.CouponAccess {
	if t.couponAccess == nil {
		t.couponAccess = writerepo.NewLockingCouponAccess(t.tx)
	}
	return t.couponAccess
}

func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeSerializationFailure ||
			pgErr.Code == pgErrCodeDeadlockDetected
	}
	return false
}

// sleepWithJitter waits an exponentially growing interval plus random jitter
// so retrying transactions do not re-collide in lockstep.
func sleepWithJitter(ctx context.Context, attempt int) error {
	delay := baseRetryDelay << (attempt - 1)
	if n, err := rand.Int(rand.Reader, big.NewInt(int64(delay))); err == nil {
		delay += time.Duration(n.Int64())
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
