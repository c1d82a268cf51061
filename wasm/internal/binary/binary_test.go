package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data)

	for i, want := range data {
		if r.Offset() != uint32(i) {
			t.Errorf("offset before read %d: got %d, want %d", i, r.Offset(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if r.Len() != 0 {
		t.Errorf("Len: got %d, want 0", r.Len())
	}

	_, err := r.ReadByte()
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestReaderOffset(t *testing.T) {
	r := NewReaderAt([]byte{0xaa, 0xbb, 0xcc, 0xdd}, 0x100)
	if r.Offset() != 0x100 {
		t.Fatalf("Offset: got 0x%x", r.Offset())
	}
	if err := r.Skip(1); err != nil {
		t.Fatal(err)
	}
	sub, err := r.Sub(2)
	if err != nil {
		t.Fatal(err)
	}
	if sub.Offset() != 0x101 {
		t.Errorf("sub Offset: got 0x%x, want 0x101", sub.Offset())
	}
	if sub.Len() != 2 {
		t.Errorf("sub Len: got %d", sub.Len())
	}
	if r.Offset() != 0x103 {
		t.Errorf("parent Offset: got 0x%x, want 0x103", r.Offset())
	}
	if r.Len() != 1 {
		t.Errorf("parent Len: got %d, want 1", r.Len())
	}
}

func TestReaderReadBytes(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	got, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 2 3]", got)
	}

	_, err = r.ReadBytes(10)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
	if r.Offset() != 3 {
		t.Errorf("failed read moved offset to %d", r.Offset())
	}
}

func TestReaderReadU32(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xff, 0x01}, 255},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		r := NewReader(tt.encoded)
		got, err := r.ReadU32()
		if err != nil {
			t.Errorf("ReadU32(%v): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadU32(%v): got %d, want %d", tt.encoded, got, tt.want)
		}
	}
}

func TestReaderReadU32Errors(t *testing.T) {
	_, err := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}).ReadU32()
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("overflow: got %v", err)
	}
	_, err = NewReader([]byte{0x80, 0x80}).ReadU32()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("truncated: got %v", err)
	}
}

func TestReaderReadSigned(t *testing.T) {
	tests := []struct {
		name    string
		encoded []byte
		want    int64
	}{
		{"zero", []byte{0x00}, 0},
		{"minus one", []byte{0x7f}, -1},
		{"minus 64", []byte{0x40}, -64},
		{"positive 64", []byte{0xc0, 0x00}, 64},
		{"minus 128", []byte{0x80, 0x7f}, -128},
		{"block type index", []byte{0x05}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader(tt.encoded).ReadS64()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ReadS64: got %d, want %d", got, tt.want)
			}
			got33, err := NewReader(tt.encoded).ReadS33()
			if err != nil {
				t.Fatal(err)
			}
			if got33 != tt.want {
				t.Errorf("ReadS33: got %d, want %d", got33, tt.want)
			}
			got32, err := NewReader(tt.encoded).ReadS32()
			if err != nil {
				t.Fatal(err)
			}
			if int64(got32) != tt.want {
				t.Errorf("ReadS32: got %d, want %d", got32, tt.want)
			}
		})
	}
}

func TestReaderReadName(t *testing.T) {
	r := NewReader([]byte{0x05, 'h', 'e', 'l', 'l', 'o'})
	got, err := r.ReadName()
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}

	_, err = NewReader([]byte{0x02, 0xff, 0xfe}).ReadName()
	if err == nil {
		t.Error("expected error for invalid UTF-8")
	}

	_, err = NewReader([]byte{0x05, 'h'}).ReadName()
	if err == nil {
		t.Error("expected error for truncated name")
	}
}

func TestReaderReadU32LE(t *testing.T) {
	got, err := NewReader([]byte{0x78, 0x56, 0x34, 0x12}).ReadU32LE()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x12345678 {
		t.Errorf("got 0x%x", got)
	}
	if _, err := NewReader([]byte{0x01}).ReadU32LE(); err == nil {
		t.Error("expected error for truncated u32")
	}
}

func TestReaderReadRemaining(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	_, _ = r.ReadByte()
	if got := r.ReadRemaining(); !bytes.Equal(got, []byte{2, 3, 4}) {
		t.Errorf("got %v", got)
	}
	if r.Len() != 0 {
		t.Errorf("Len after ReadRemaining = %d", r.Len())
	}
}

func TestReaderErrorOffset(t *testing.T) {
	r := NewReaderAt([]byte{0x80}, 0x20)
	_, err := r.ReadU32()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
	if got := err.Error(); got != "at offset 0x21: unexpected EOF" {
		t.Errorf("Error: got %q", got)
	}
}

func TestWriterLEB(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  []byte
	}{
		{"u32 zero", func(w *Writer) { w.WriteU32(0) }, []byte{0x00}},
		{"u32 624485", func(w *Writer) { w.WriteU32(624485) }, []byte{0xe5, 0x8e, 0x26}},
		{"u32 max", func(w *Writer) { w.WriteU32(0xFFFFFFFF) }, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{"s32 minus one", func(w *Writer) { w.WriteS32(-1) }, []byte{0x7f}},
		{"s64 64", func(w *Writer) { w.WriteS64(64) }, []byte{0xc0, 0x00}},
		{"s64 minus 128", func(w *Writer) { w.WriteS64(-128) }, []byte{0x80, 0x7f}},
		{"name", func(w *Writer) { w.WriteName("ab") }, []byte{0x02, 'a', 'b'}},
		{"u32le", func(w *Writer) { w.WriteU32LE(0x01020304) }, []byte{0x04, 0x03, 0x02, 0x01}},
		{"f32 one", func(w *Writer) { w.WriteF32(1) }, []byte{0x00, 0x00, 0x80, 0x3f}},
		{"sized", func(w *Writer) { w.WriteSized([]byte{9, 9}) }, []byte{0x02, 9, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			tt.write(w)
			if !bytes.Equal(w.Bytes(), tt.want) {
				t.Errorf("got % x, want % x", w.Bytes(), tt.want)
			}
			if w.Len() != len(tt.want) {
				t.Errorf("Len: got %d", w.Len())
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU32(300)
	w.WriteS64(-12345)
	w.WriteU64(1 << 40)
	w.WriteName("memory")
	w.Byte(0xFD)

	r := NewReader(w.Bytes())
	if v, _ := r.ReadU32(); v != 300 {
		t.Errorf("u32: %d", v)
	}
	if v, _ := r.ReadS64(); v != -12345 {
		t.Errorf("s64: %d", v)
	}
	if v, _ := r.ReadU64(); v != 1<<40 {
		t.Errorf("u64: %d", v)
	}
	if v, _ := r.ReadName(); v != "memory" {
		t.Errorf("name: %q", v)
	}
	if v, _ := r.ReadByte(); v != 0xFD {
		t.Errorf("byte: 0x%x", v)
	}
	if r.Len() != 0 {
		t.Errorf("trailing bytes: %d", r.Len())
	}
}
