package mmio

// Access is one recorded bus operation.
type Access struct {
	Op   Op
	Addr uint32
	Val  uint32 // value written, or value returned by the read
}

// Op discriminates read from write in a trace.
type Op byte

const (
	OpRead Op = iota
	OpWrite
)

func (o Op) String() string {
	if o == OpWrite {
		return "w"
	}
	return "r"
}

// Trace is a Bus decorator that records every access in order while
// forwarding to the underlying bus. Tests use it to assert exact register
// sequences (reset values, select/deselect ordering); cmd binaries use it
// as a transaction log.
//
// Trace is not safe for concurrent use, matching the single-owner model of
// the drivers themselves.
type Trace struct {
	Inner    Bus
	Accesses []Access
}

// NewTrace wraps inner in a recording decorator.
func NewTrace(inner Bus) *Trace {
	return &Trace{Inner: inner}
}

func (t *Trace) Read32(addr uint32) uint32 {
	v := t.Inner.Read32(addr)
	t.Accesses = append(t.Accesses, Access{Op: OpRead, Addr: addr, Val: v})
	return v
}

func (t *Trace) Write32(addr uint32, v uint32) {
	t.Accesses = append(t.Accesses, Access{Op: OpWrite, Addr: addr, Val: v})
	t.Inner.Write32(addr, v)
}

// Reset discards the recorded history, keeping the underlying bus.
func (t *Trace) Reset() { t.Accesses = t.Accesses[:0] }

// Writes returns the recorded writes to addr, in order.
func (t *Trace) Writes(addr uint32) []uint32 {
	var out []uint32
	for _, a := range t.Accesses {
		if a.Op == OpWrite && a.Addr == addr {
			out = append(out, a.Val)
		}
	}
	return out
}

// LastWrite returns the most recent write to addr, or ok=false if none.
func (t *Trace) LastWrite(addr uint32) (v uint32, ok bool) {
	w := t.Writes(addr)
	if len(w) == 0 {
		return 0, false
	}
	return w[len(w)-1], true
}
