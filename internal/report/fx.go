package report

import (
	"go.uber.org/fx"

	"github.com/JohnBartlett/bluejay-acct/internal/report/service"
)

var Module = fx.Module("report.service",
	fx.Provide(service.NewService),
)
