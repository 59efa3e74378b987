package components

import (
	"shop-orders/internal/infra/db"
	"shop-orders/internal/infra/readstore"
	"shop-orders/internal/infra/uow"
	"shop-orders/internal/infra/writerepo"
	"shop-orders/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Transaction boundary; transaction-scoped repositories are built
		// inside the UoW, not here.
		uow.NewPostgresUoW,
		// Pool-backed lookups outside any transaction
		writerepo.NewShippingProviderRepository,
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
