package customer

import (
	"go.uber.org/fx"

	"github.com/JohnBartlett/bluejay-acct/internal/customer/service"
)

var Module = fx.Module("customer.service",
	fx.Provide(service.NewService),
)
