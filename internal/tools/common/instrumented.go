package common

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/instrumentation"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

// Instrument returns registry middleware that traces each invocation,
// records its metrics and audit line, and turns a panic into an internal
// error result. Nil metrics or audit are skipped.
//
// Usage:
//
//	registry.Use(common.Instrument(provider.Metrics(), provider.Audit(), logger))
func Instrument(metrics *instrumentation.Metrics, audit *instrumentation.AuditLogger, logger *slog.Logger) tools.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(service, tool string, next tools.HandlerFunc) tools.HandlerFunc {
		return func(ctx context.Context, args map[string]any) (result *tools.Result) {
			transport := tools.TransportFrom(ctx)
			account := GetAccountFromArgs(args)

			ctx, span := instrumentation.StartToolSpan(ctx, tool, service, transport, account)
			invocation := instrumentation.NewToolInvocation(tool, service, transport)
			invocation.Account = account

			defer func() {
				if p := recover(); p != nil {
					logger.ErrorContext(ctx, "tool panicked",
						logging.Tool(tool),
						logging.Service(service),
						slog.Any("panic", p),
						slog.String("stack", string(debug.Stack())))
					result = tools.Failure(apperrors.Internal(fmt.Errorf("panic: %v", p), "Internal error while running "+tool))
				}

				var err error
				kind := ""
				if result.Failed() {
					err = result.Err
					kind = string(result.Err.Kind())
					instrumentation.SetSpanError(span, err, kind)
				} else {
					instrumentation.SetSpanSuccess(span)
				}
				span.End()

				invocation.Finish(ctx, err, kind)
				metrics.RecordToolInvocation(ctx, instrumentation.ToolInvocationRecord{
					Tool:      tool,
					Service:   service,
					Transport: transport,
					Account:   account,
					Status:    invocation.Status(),
					ErrorKind: kind,
					Duration:  invocation.Duration,
				})
				audit.LogToolInvocation(ctx, invocation)

				if err != nil {
					logger.DebugContext(ctx, "tool failed",
						logging.Tool(tool),
						logging.ErrorKind(kind),
						logging.Err(err))
				}
			}()

			return next(ctx, args)
		}
	}
}
