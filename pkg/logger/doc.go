// Package logger builds slog loggers with per-environment defaults and
// context-driven attributes.
//
// Loggers built with WithContextExtractors run every ContextExtractor on each
// log call, so request-scoped values such as the request id and client IP
// appear on every record logged with a request context:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "obsidian-landing"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "lead relayed", logger.Form("valuation"))
package logger
