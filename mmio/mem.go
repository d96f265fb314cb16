package mmio

// Mem is a sparse in-memory register space implementing Bus. Unwritten
// addresses read as zero. It has no device behaviour of its own; simulations
// layer behaviour on top by embedding it or wrapping it.
type Mem struct {
	regs map[uint32]uint32
}

// NewMem returns an empty register space.
func NewMem() *Mem {
	return &Mem{regs: make(map[uint32]uint32)}
}

func (m *Mem) Read32(addr uint32) uint32 {
	return m.regs[addr]
}

func (m *Mem) Write32(addr uint32, v uint32) {
	m.regs[addr] = v
}
