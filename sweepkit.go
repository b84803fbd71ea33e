// Package sweepkit builds the parameter grid consumed by the XAU EA backtest
// runner and analyses the results it produces.
package sweepkit

import "github.com/raykavin/sweepkit/pkg/logger"

// Version is reported by the CLI.
const Version = "1.0.0"

// DefaultLog is the process-wide logger, configured from SWEEPKIT_LOG_* at init.
var DefaultLog logger.Logger
