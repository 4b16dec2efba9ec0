// Package logger provides structured logging utilities built on log/slog.
//
// New builds a logger from options; NewFromConfig reads LOG_LEVEL and
// LOG_FORMAT through the config package.
//
//	log := logger.New(
//		logger.WithProduction("paranoid"),
//		logger.WithOutput(os.Stderr),
//	)
//
// The attribute helpers keep key names consistent across packages and return
// an empty slog.Attr for nil input, so they are safe to pass unconditionally:
//
//	log.Warn("session fingerprint mismatch",
//		logger.Component("paranoid"),
//		logger.Verdict(verdict),
//		logger.ClientIP(addr),
//		logger.SessionID(sess.ID),
//		logger.Error(err),
//	)
//
// Capturing output in tests:
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("Test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
