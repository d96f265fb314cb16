// Package busywait provides the bounded busy-poll loop shared by the
// register-level transfer engines. There is no scheduler and no wall clock
// on the target: a timeout is a countdown of status probes, and every
// per-byte wait starts from a fresh budget.
package busywait

// Ready is a single status probe. It is invoked repeatedly and should be a
// bare register read with no side effects of its own.
type Ready func() bool

// Poll probes ready until it reports true or the countdown budget is
// exhausted, and reports whether the condition was met. The budget counts
// probes after the first: Poll(r, 0) probes exactly once.
//
// Callers waiting for more than one event must call Poll once per event so
// each wait gets its own budget; a slow first event must not starve the
// ones after it.
func Poll(ready Ready, budget uint32) bool {
	for {
		if ready() {
			return true
		}
		if budget == 0 {
			return false
		}
		budget--
	}
}

// Wait probes ready until it reports true, with no bound. Only paths whose
// hardware contract cannot stall (or that are documented as blocking
// indefinitely) may use it.
func Wait(ready Ready) {
	for !ready() {
	}
}
