package company

import (
	"go.uber.org/fx"

	"github.com/JohnBartlett/bluejay-acct/internal/company/service"
)

var Module = fx.Module("company.service",
	fx.Provide(service.NewService),
)
