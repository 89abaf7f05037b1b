package ebml

import (
	"bytes"
	"testing"
)

func TestDecodeSimpleBlockNoLacing(t *testing.T) {
	payload := []byte{0x81, 0x00, 0x05, 0x00, 'h', 'e', 'l', 'l', 'o'}
	b, err := DecodeSimpleBlock(payload)
	if err != nil {
		t.Fatalf("DecodeSimpleBlock: %v", err)
	}
	if b.TrackNumber != 1 {
		t.Errorf("TrackNumber = %d, want 1", b.TrackNumber)
	}
	if b.Timecode != 5 {
		t.Errorf("Timecode = %d, want 5", b.Timecode)
	}
	if b.Lacing != LacingNone {
		t.Errorf("Lacing = %v, want None", b.Lacing)
	}
	if len(b.Frames) != 1 || !bytes.Equal(b.Frames[0], []byte("hello")) {
		t.Errorf("Frames = %v", b.Frames)
	}
}

func TestDecodeSimpleBlockNegativeTimecode(t *testing.T) {
	payload := []byte{0x81, 0xFF, 0xFF, 0x00, 'x'}
	b, err := DecodeSimpleBlock(payload)
	if err != nil {
		t.Fatalf("DecodeSimpleBlock: %v", err)
	}
	if b.Timecode != -1 {
		t.Errorf("Timecode = %d, want -1", b.Timecode)
	}
}

func TestDecodeSimpleBlockFixedLacing(t *testing.T) {
	// flags: lacing bits 10 (fixed) = 0x04
	payload := []byte{0x81, 0x00, 0x00, 0x04, 0x02 /* frames-1 */, 'a', 'a', 'b', 'b', 'c', 'c'}
	b, err := DecodeSimpleBlock(payload)
	if err != nil {
		t.Fatalf("DecodeSimpleBlock: %v", err)
	}
	if b.Lacing != LacingFixed {
		t.Fatalf("Lacing = %v, want Fixed", b.Lacing)
	}
	if len(b.Frames) != 3 {
		t.Fatalf("len(Frames) = %d, want 3", len(b.Frames))
	}
	for i, want := range [][]byte{{'a', 'a'}, {'b', 'b'}, {'c', 'c'}} {
		if !bytes.Equal(b.Frames[i], want) {
			t.Errorf("Frames[%d] = %v, want %v", i, b.Frames[i], want)
		}
	}
}

func TestDecodeSimpleBlockXiphLacing(t *testing.T) {
	// flags: lacing bits 01 (xiph) = 0x02. Two frames: sizes [2, <rest>].
	payload := []byte{0x81, 0x00, 0x00, 0x02, 0x01 /* frames-1 */, 0x02, 'a', 'a', 'b', 'b', 'b'}
	b, err := DecodeSimpleBlock(payload)
	if err != nil {
		t.Fatalf("DecodeSimpleBlock: %v", err)
	}
	if b.Lacing != LacingXiph {
		t.Fatalf("Lacing = %v, want Xiph", b.Lacing)
	}
	if len(b.Frames) != 2 {
		t.Fatalf("len(Frames) = %d, want 2", len(b.Frames))
	}
	if !bytes.Equal(b.Frames[0], []byte{'a', 'a'}) {
		t.Errorf("Frames[0] = %v, want aa", b.Frames[0])
	}
	if !bytes.Equal(b.Frames[1], []byte{'b', 'b', 'b'}) {
		t.Errorf("Frames[1] = %v, want bbb", b.Frames[1])
	}
}

func TestEncodeSimpleBlockRoundTrip(t *testing.T) {
	enc, err := EncodeSimpleBlock(7, -100, true, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("EncodeSimpleBlock: %v", err)
	}
	b, err := DecodeSimpleBlock(enc)
	if err != nil {
		t.Fatalf("DecodeSimpleBlock: %v", err)
	}
	if b.TrackNumber != 7 || b.Timecode != -100 || !b.Keyframe {
		t.Errorf("got %+v", b)
	}
	if len(b.Frames) != 1 || !bytes.Equal(b.Frames[0], []byte{1, 2, 3, 4}) {
		t.Errorf("Frames = %v", b.Frames)
	}
}
