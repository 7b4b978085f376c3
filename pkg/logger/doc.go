// Package logger builds log/slog loggers with context extraction and optional
// Sentry fan-out.
//
// Context extractors run on every log call and add request-scoped attributes:
//
//	log := logger.New(cfg,
//		logger.StringExtractor("request_id", middlewares.GetRequestID),
//		logger.CultureExtractor(),
//	)
//	log.InfoContext(ctx, "view rendered", slog.String("file", info.RelativePath))
//	// {"level":"INFO","msg":"view rendered","file":"Views/page.fr.md","request_id":"...","culture":"fr-CA"}
//
// Config is loaded from the environment (LOG_LEVEL, LOG_FORMAT, SENTRY_DSN,
// SENTRY_ENVIRONMENT, SENTRY_MIN_LEVEL). When SENTRY_DSN is empty or Sentry
// fails to initialize, logs go to the writer only. Errors create Sentry
// issues; warnings are stored as logs unless SENTRY_MIN_LEVEL is ERROR.
//
// LogHandlerDecorator wraps any slog.Handler with extractors, and NewNope
// returns a logger that discards everything.
package logger
