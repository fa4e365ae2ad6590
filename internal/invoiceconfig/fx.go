package invoiceconfig

import (
	"go.uber.org/fx"

	"github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/service"
)

var Module = fx.Module("invoiceconfig.service",
	fx.Provide(service.NewService),
)
