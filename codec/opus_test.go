package codec

import "testing"

func TestOpusIDHeaderRoundTrip(t *testing.T) {
	hdr, err := OpusIDHeader(2)
	if err != nil {
		t.Fatalf("OpusIDHeader: %v", err)
	}
	if len(hdr) != OpusIDHeaderLen {
		t.Fatalf("len = %d, want %d", len(hdr), OpusIDHeaderLen)
	}
	if string(hdr[:8]) != "OpusHead" {
		t.Errorf("magic = %q, want OpusHead", hdr[:8])
	}
	channels, err := ParseOpusIDHeader(hdr)
	if err != nil {
		t.Fatalf("ParseOpusIDHeader: %v", err)
	}
	if channels != 2 {
		t.Errorf("channels = %d, want 2", channels)
	}
}

func TestOpusIDHeaderRejectsTooManyChannels(t *testing.T) {
	if _, err := OpusIDHeader(3); err == nil {
		t.Fatal("expected error for channels > 2")
	}
}

func TestParseOpusIDHeaderRejectsBadMagic(t *testing.T) {
	bad := make([]byte, OpusIDHeaderLen)
	copy(bad, "NotOpusHd")
	if _, err := ParseOpusIDHeader(bad); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestPacketDurationMs(t *testing.T) {
	cases := []struct {
		toc  byte
		want float64
	}{
		{0x00, 10},  // config 0, code 0 -> base 10ms, 1 frame
		{0x01, 20},  // config 0, code 1 -> 2 frames of 10ms
		{byte(19 << 3), 20}, // config 19 (CELT NB 20ms), code 0
	}
	for _, c := range cases {
		got, err := PacketDurationMs(c.toc)
		if err != nil {
			t.Fatalf("PacketDurationMs(0x%02X): %v", c.toc, err)
		}
		if got != c.want {
			t.Errorf("PacketDurationMs(0x%02X) = %v, want %v", c.toc, got, c.want)
		}
	}
}

func TestPacketDurationMsArbitraryCountUnsupported(t *testing.T) {
	if _, err := PacketDurationMs(0x03); err == nil {
		t.Fatal("expected error for frame count code 3")
	}
}
