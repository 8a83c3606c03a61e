// Package httpserver runs an http.Handler with graceful shutdown, configurable
// timeouts, structured logging and a health-check handler.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal is
// received, then shuts the server down with http.Server.Shutdown under the
// configured deadline. Errors are wrapped with ErrStart and ErrShutdown.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package httpserver
