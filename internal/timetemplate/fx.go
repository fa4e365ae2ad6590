package timetemplate

import (
	"go.uber.org/fx"

	"github.com/JohnBartlett/bluejay-acct/internal/timetemplate/service"
)

var Module = fx.Module("timetemplate.service",
	fx.Provide(service.NewService),
)
