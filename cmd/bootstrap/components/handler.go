package components

import (
	"shop-orders/internal/handler"
	"shop-orders/internal/handler/api"
	"shop-orders/internal/handler/middleware"
	"shop-orders/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewGuestOrderHandler,
		api.NewCouponHandler,
		api.NewPaymentHandler,
		func(s *jwt.Service) middleware.TokenValidator { return s },
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
