package memory

import (
	"errors"
	"io"
)

// Memory size constants
const (
	// AddressBits -> width of the 8086 physical address bus
	AddressBits = 20

	// Size of the simulated memory in bytes
	Size = 1 << AddressBits

	addressMask = Size - 1
)

// ErrOutOfRange is returned by Peek when the requested byte lies
// past the loaded program image.
var ErrOutOfRange = errors.New("read past end of loaded program")

// Memory is the byte store of a single run: 1MB of addressable memory,
// the length of the loaded program and the read cursor used while decoding.
type Memory struct {
	data   [Size]byte
	length uint32
	cursor uint32
}

// New returns an empty memory
func New() *Memory {
	return new(Memory)
}

// Load clears the memory and copies the program read from r to address 0.
// Anything that does not fit is dropped. Returns the number of bytes loaded.
func (m *Memory) Load(r io.Reader) (uint32, error) {
	m.Reset()
	n, err := io.ReadFull(r, m.data[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		m.Reset()
		return 0, err
	}
	m.length = uint32(n)
	return m.length, nil
}

// Reset zeroes the memory, the program length and the cursor
func (m *Memory) Reset() {
	clear(m.data[:])
	m.length = 0
	m.cursor = 0
}

// Len returns the size of the loaded program
func (m *Memory) Len() uint32 {
	return m.length
}

// Contains reports whether addr lies inside the loaded program
func (m *Memory) Contains(addr uint32) bool {
	return addr < m.length
}

// Cursor returns the absolute read position
func (m *Memory) Cursor() uint32 {
	return m.cursor
}

// Seek moves the cursor to an absolute address
func (m *Memory) Seek(addr uint32) {
	m.cursor = addr & addressMask
}

// Advance commits n bytes of the cursor, typically the size of a decoded instruction.
func (m *Memory) Advance(n uint32) {
	m.cursor = (m.cursor + n) & addressMask
}

// Remaining returns the number of program bytes from the cursor to the end of the image.
func (m *Memory) Remaining() uint32 {
	if m.cursor >= m.length {
		return 0
	}
	return m.length - m.cursor
}

// Peek returns the program byte at cursor+offset without moving the cursor.
// Bytes outside the loaded image are not readable this way.
func (m *Memory) Peek(offset uint32) (byte, error) {
	addr := m.cursor + offset
	if addr >= m.length {
		return 0, ErrOutOfRange
	}
	return m.data[addr], nil
}

// ReadMemoryByte returns the byte at an absolute address
func (m *Memory) ReadMemoryByte(addr uint32) byte {
	return m.data[addr&addressMask]
}

// ReadMemoryWord returns the little endian word at an absolute address
func (m *Memory) ReadMemoryWord(addr uint32) uint16 {
	lo := m.data[addr&addressMask]
	hi := m.data[(addr+1)&addressMask]
	return uint16(hi)<<8 | uint16(lo)
}

// WriteMemoryByte stores one byte
func (m *Memory) WriteMemoryByte(addr uint32, data byte) {
	m.data[addr&addressMask] = data
}

// WriteMemoryWord stores a little endian word
func (m *Memory) WriteMemoryWord(addr uint32, data uint16) {
	m.data[addr&addressMask] = byte(data)
	m.data[(addr+1)&addressMask] = byte(data >> 8)
}
