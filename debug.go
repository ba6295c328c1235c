package willowxr

import (
	"fmt"
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and interaction metrics.
// Only populated when the context is in debug mode.
type debugStats struct {
	drainTime   time.Duration
	hoverTime   time.Duration
	messages    int
	candidates  int
	hovered     int
	controllers int
}

// debugLog records frame stats at debug level.
func (ic *InteractionContext) debugLog(stats debugStats) {
	if !ic.debug {
		return
	}
	ic.logger.Debug("frame",
		slog.Duration("drain", stats.drainTime),
		slog.Duration("hover", stats.hoverTime),
		slog.Int("messages", stats.messages),
		slog.Int("candidates", stats.candidates),
		slog.Int("hovered", stats.hovered),
		slog.Int("controllers", stats.controllers),
	)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, deep trees are reported, and per-frame stats are logged at
// debug level.
func (ic *InteractionContext) SetDebugMode(enabled bool) {
	ic.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = ic.logger
	}
}

// globalDebug mirrors the most recently set debug flag so that node
// operations (which lack a context pointer) can check it cheaply.
var globalDebug bool

// debugLogger is used by node operations in debug mode. It follows the
// logger of the context that last enabled debug mode.
var debugLogger = slog.Default()

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("willowxr debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxTreeDepth is the depth above which debug mode warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			slog.Int("depth", depth), slog.Int("threshold", debugMaxTreeDepth), slog.String("node", n.Name))
	}
}
