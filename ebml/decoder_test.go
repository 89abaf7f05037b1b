package ebml

import (
	"bytes"
	"testing"
)

func TestDecodeSimpleElement(t *testing.T) {
	// EBMLVersion (0x4286), size 1, payload 0x01
	buf := []byte{0x42, 0x86, 0x81, 0x01}
	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Kind != ResultDecoded {
		t.Fatalf("Kind = %v, want ResultDecoded", r.Kind)
	}
	if r.Name != NameEBMLVersion || r.EKind != KindUInt {
		t.Errorf("got name=%s kind=%s, want %s/%s", r.Name, r.EKind, NameEBMLVersion, KindUInt)
	}
	if !bytes.Equal(r.Payload, []byte{0x01}) {
		t.Errorf("Payload = % X, want 01", r.Payload)
	}
	if r.Consumed != 4 {
		t.Errorf("Consumed = %d, want 4", r.Consumed)
	}
}

func TestDecodeNeedsMoreBytesForHeader(t *testing.T) {
	// Element ID complete, size VINT truncated.
	buf := []byte{0x42, 0x86, 0x40}
	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Kind != ResultNeedMoreBytes {
		t.Fatalf("Kind = %v, want ResultNeedMoreBytes", r.Kind)
	}
}

func TestDecodeNeedsMoreBytesForPayload(t *testing.T) {
	// Declares a 4-byte payload but only 1 is present.
	buf := []byte{0x42, 0x86, 0x84, 0x01}
	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Kind != ResultNeedMoreBytes {
		t.Fatalf("Kind = %v, want ResultNeedMoreBytes", r.Kind)
	}
}

func TestDecodeSegmentSkipHeader(t *testing.T) {
	// Segment ID (0x18538067) with an unknown size (width-1 all-ones).
	buf := []byte{0x18, 0x53, 0x80, 0x67, 0xFF}
	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Kind != ResultSkipHeader {
		t.Fatalf("Kind = %v, want ResultSkipHeader", r.Kind)
	}
	if r.Name != NameSegment {
		t.Errorf("Name = %s, want Segment", r.Name)
	}
	if r.Consumed != 5 {
		t.Errorf("Consumed = %d, want 5", r.Consumed)
	}
}

func TestDecodeSegmentSkipHeaderOnOversizedButKnownLength(t *testing.T) {
	// Segment with a known but huge declared length that clearly isn't
	// buffered yet — still SkipHeader, not NeedMoreBytes.
	buf := []byte{0x18, 0x53, 0x80, 0x67, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Kind != ResultSkipHeader {
		t.Fatalf("Kind = %v, want ResultSkipHeader", r.Kind)
	}
}

func TestDecodeKnownSizeMasterNotFullyBufferedNeedsMoreBytes(t *testing.T) {
	// Cluster (0x1F43B675), declared size 12, but only 4 payload bytes
	// buffered: a known-size master other than Segment must wait for its
	// full payload, never SkipHeader.
	buf := []byte{0x1F, 0x43, 0xB6, 0x75, 0x8C, 0x01, 0x02, 0x03, 0x04}
	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Kind != ResultNeedMoreBytes {
		t.Fatalf("Kind = %v, want ResultNeedMoreBytes", r.Kind)
	}
}

func TestDecodeUnknownSizeNonSegmentMasterIsMalformed(t *testing.T) {
	// Cluster with an unknown size is out of scope: only Segment may
	// carry one.
	buf := []byte{0x1F, 0x43, 0xB6, 0x75, 0xFF}
	if _, err := Decode(buf); err == nil {
		t.Fatal("expected error for unknown-size non-Segment master")
	}
}

func TestDecodeUnknownElementIsNotFatal(t *testing.T) {
	// An unregistered element ID still decodes structurally.
	buf := []byte{0x9E, 0x82, 0xAA, 0xBB}
	r, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Kind != ResultDecoded {
		t.Fatalf("Kind = %v, want ResultDecoded", r.Kind)
	}
	if r.Name != NameUnknown || r.EKind != KindUnknown {
		t.Errorf("got name=%s kind=%s, want Unknown/Unknown", r.Name, r.EKind)
	}
}

func TestDecodeUnknownSizeNonMasterIsMalformed(t *testing.T) {
	// TrackNumber (0xD7, UInt) cannot legally carry an unknown size.
	buf := []byte{0xD7, 0xFF}
	if _, err := Decode(buf); err == nil {
		t.Fatal("expected error for unknown-size non-master element")
	}
}

func TestDecodeEmptyBuffer(t *testing.T) {
	r, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Kind != ResultNeedMoreBytes {
		t.Fatalf("Kind = %v, want ResultNeedMoreBytes", r.Kind)
	}
}
