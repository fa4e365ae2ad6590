package observability

import (
	"go.uber.org/fx"

	"github.com/JohnBartlett/bluejay-acct/internal/observability/logger"
)

// Module wires the observability stack. Only the logger is carried; traces
// attach through the otel span context when a caller installs a provider.
var Module = fx.Options(
	logger.Module,
)
