// Package server wraps http.Server with graceful shutdown and environment configuration.
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg,
//		server.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Run serves until the context is canceled and then drains in-flight requests for
// up to the shutdown timeout. Start and Stop give manual control of the same lifecycle.
//
// Configuration (SERVER_ prefix): ADDR, READ_TIMEOUT, WRITE_TIMEOUT, IDLE_TIMEOUT,
// SHUTDOWN_TIMEOUT, MAX_HEADER_BYTES, TLS_CERT_FILE and TLS_KEY_FILE. Setting both TLS
// files switches the server to HTTPS.
package server
