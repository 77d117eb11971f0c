package memory

// MemoryManager is the interface the CPU uses to reach simulated memory.
// Addresses are absolute 20 bit byte offsets, anything above is wrapped.
type MemoryManager interface {

	// ReadMemoryByte returns the byte stored at "addr"
	ReadMemoryByte(addr uint32) byte

	// ReadMemoryWord returns the little endian word stored at "addr"
	ReadMemoryWord(addr uint32) uint16

	// WriteMemoryByte writes "data" to "addr"
	WriteMemoryByte(addr uint32, data byte)

	// WriteMemoryWord writes "data" as a little endian word to "addr"
	WriteMemoryWord(addr uint32, data uint16)
}
