// Package httpserver runs an http.Server with graceful shutdown, timeouts
// loaded from the environment and probe handlers.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests within the shutdown timeout:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler back /healthz and /readyz.
// Listen failures wrap ErrStart and shutdown failures wrap ErrShutdown.
package httpserver
