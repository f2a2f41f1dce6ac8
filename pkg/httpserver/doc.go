// Package httpserver wraps http.Server with graceful shutdown, signal
// handling and env-driven configuration.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.New(cfg, logger)
//	if err := srv.Run(ctx, router); err != nil { ... }
package httpserver
