// Package lifecycle holds shared timeouts for component start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work such as the initial
// database ping and the HTTP server drain.
const DefaultTimeout = 10 * time.Second
