package mux

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Azunyan1111/go-webm-stream/ebml"
	"github.com/Azunyan1111/go-webm-stream/vint"
)

// idBytes returns id's big-endian byte representation at its natural
// width. Schema IDs already carry their VINT marker bit baked into the
// literal, so this is just "how many bytes does it take", not a VINT
// encode.
func idBytes(id uint64) []byte {
	n := 1
	for v := id >> 8; v != 0; v >>= 8 {
		n++
	}
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(id)
		id >>= 8
	}
	return out
}

// writeElement appends id(name) || size_vint(len(payload)) || payload
// to buf: assemble the payload into a bytes.Buffer, then wrap it with
// an element header.
func writeElement(buf *bytes.Buffer, name ebml.Name, payload []byte) error {
	id, ok := ebml.IDFor(name)
	if !ok {
		return fmt.Errorf("mux: no schema entry for %s", name)
	}
	sizeBytes, err := vint.Encode(uint64(len(payload)))
	if err != nil {
		return fmt.Errorf("mux: encoding size for %s: %w", name, err)
	}
	buf.Write(idBytes(id))
	buf.Write(sizeBytes)
	buf.Write(payload)
	return nil
}

// writeMaster builds a Master element's payload via build, then emits
// it wrapped in its own header.
func writeMaster(buf *bytes.Buffer, name ebml.Name, build func(*bytes.Buffer) error) error {
	var tmp bytes.Buffer
	if err := build(&tmp); err != nil {
		return err
	}
	return writeElement(buf, name, tmp.Bytes())
}

// minimalBigEndian returns the shortest big-endian byte slice for v,
// with 0 represented as an empty payload (the parser's own empty ->
// 0 convention for unsigned integers).
func minimalBigEndian(v uint64) []byte {
	if v == 0 {
		return nil
	}
	n := 1
	for x := v >> 8; x != 0; x >>= 8 {
		n++
	}
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(v)
		v >>= 8
	}
	return out
}

func writeUint(buf *bytes.Buffer, name ebml.Name, v uint64) error {
	return writeElement(buf, name, minimalBigEndian(v))
}

func writeString(buf *bytes.Buffer, name ebml.Name, s string) error {
	return writeElement(buf, name, []byte(s))
}

func writeBinary(buf *bytes.Buffer, name ebml.Name, b []byte) error {
	return writeElement(buf, name, b)
}

// writeFixedUint8 writes a UInt element with a full 8-byte payload
// regardless of v's magnitude, so its byte offset inside buf is stable
// even after the value is overwritten later. Returns that offset.
func writeFixedUint8(buf *bytes.Buffer, name ebml.Name, v uint64) (int, error) {
	id, ok := ebml.IDFor(name)
	if !ok {
		return 0, fmt.Errorf("mux: no schema entry for %s", name)
	}
	sizeBytes, err := vint.EncodeWidth(8, 1)
	if err != nil {
		return 0, err
	}
	buf.Write(idBytes(id))
	buf.Write(sizeBytes)
	offset := buf.Len()
	var payload [8]byte
	binary.BigEndian.PutUint64(payload[:], v)
	buf.Write(payload[:])
	return offset, nil
}

// writeFixedFloat8 writes a Float element with a full 8-byte (f64)
// payload, returning its payload offset for later patching (Info's
// Duration, finalized only once the stream ends).
func writeFixedFloat8(buf *bytes.Buffer, name ebml.Name, f float64) (int, error) {
	id, ok := ebml.IDFor(name)
	if !ok {
		return 0, fmt.Errorf("mux: no schema entry for %s", name)
	}
	sizeBytes, err := vint.EncodeWidth(8, 1)
	if err != nil {
		return 0, err
	}
	buf.Write(idBytes(id))
	buf.Write(sizeBytes)
	offset := buf.Len()
	var payload [8]byte
	binary.BigEndian.PutUint64(payload[:], math.Float64bits(f))
	buf.Write(payload[:])
	return offset, nil
}

func patchUint8(data []byte, offset int, v uint64) {
	binary.BigEndian.PutUint64(data[offset:offset+8], v)
}

func patchFloat8(data []byte, offset int, f float64) {
	binary.BigEndian.PutUint64(data[offset:offset+8], math.Float64bits(f))
}
