package bytebuf

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/simd-detect/errors"
)

// Memory wraps a guest's linear memory with bounds-checked accessors.
type Memory struct {
	mem api.Memory
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// Read copies length bytes starting at offset.
func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, m.outOfBounds("read", offset, length)
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}

// Write copies data to offset.
func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return m.outOfBounds("write", offset, uint32(len(data)))
	}
	return nil
}

func (m *Memory) outOfBounds(op string, offset, length uint32) error {
	return errors.New(errors.PhaseCall, errors.KindOutOfBounds).
		Offset(offset).
		Value(length).
		Detail("%s of %d bytes at 0x%x exceeds memory size %d", op, length, offset, m.mem.Size()).
		Build()
}
