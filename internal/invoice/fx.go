package invoice

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/JohnBartlett/bluejay-acct/internal/invoice/render"
	"github.com/JohnBartlett/bluejay-acct/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(func(log *zap.Logger) render.Renderer {
		return render.NewRenderer(log)
	}),
	fx.Provide(service.NewService),
)
