// Package logging provides structured debug logging for skim.
//
// This package wraps Go's log/slog to write JSON-formatted logs to a single
// file. The pager owns the terminal while it runs, so logging is off unless a
// log file is configured (logging.enabled in the config file, or --log-file).
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/tmp/skim.log", "DEBUG", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	log := logger.WithComponent("pager")
//	log.Debug("search committed", "query", "error", "matches", 2)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"search committed","component":"pager","query":"error","matches":2}
//
// # Log Rotation
//
// [RotatingWriter] rolls the file over once it exceeds RotationConfig.MaxSizeMB.
// Rotated files are named debug.log.1, debug.log.2, and so on, where .1 is the
// most recent backup. With Compress set they become debug.log.1.gz.
//
// # Testing
//
// Use [NopLogger] to discard all output:
//
//	d := pager.New(buf, 24, pager.WithLogger(logging.NopLogger()))
package logging
