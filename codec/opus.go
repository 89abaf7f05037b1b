package codec

import (
	"encoding/binary"
	"fmt"
)

// OpusIDHeaderLen is the fixed size of the minimal OpusHead CodecPrivate
// payload this package constructs.
const OpusIDHeaderLen = 19

var opusMagic = []byte("OpusHead")

// OpusIDHeader builds the 19-byte OpusHead CodecPrivate payload for an
// Opus TrackEntry: magic | version=1 | channels | pre_skip=0 |
// sample_rate=0 | output_gain=0 | channel_mapping_family=0. Matroska
// does not require a true input sample rate here (players use the
// track's SamplingFrequency); the rate field is left 0 since this
// system never negotiates resampling and treats the encoder's nominal
// rate as informational.
func OpusIDHeader(channels int) ([]byte, error) {
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("codec: opus id header supports 1 or 2 channels, got %d", channels)
	}
	out := make([]byte, OpusIDHeaderLen)
	copy(out, opusMagic)
	out[8] = 1 // version
	out[9] = byte(channels)
	binary.LittleEndian.PutUint16(out[10:12], 0) // pre_skip
	binary.LittleEndian.PutUint32(out[12:16], 0) // input sample rate
	binary.LittleEndian.PutUint16(out[16:18], 0) // output gain
	out[18] = 0                                  // channel mapping family
	return out, nil
}

// ParseOpusIDHeader validates and extracts the channel count from an
// OpusHead CodecPrivate payload.
func ParseOpusIDHeader(payload []byte) (channels int, err error) {
	if len(payload) < OpusIDHeaderLen {
		return 0, fmt.Errorf("codec: opus id header too short (%d bytes)", len(payload))
	}
	for i, b := range opusMagic {
		if payload[i] != b {
			return 0, fmt.Errorf("codec: opus id header missing OpusHead magic")
		}
	}
	return int(payload[9]), nil
}

// opusConfigFrameMs is the base frame duration, in milliseconds, for
// each of the 32 Opus TOC configuration numbers (RFC 6716 §3.1 Table 2).
var opusConfigFrameMs = [32]float64{
	10, 20, 40, 60, // SILK NB
	10, 20, 40, 60, // SILK MB
	10, 20, 40, 60, // SILK WB
	10, 20, // Hybrid SWB
	10, 20, // Hybrid FB
	2.5, 5, 10, 20, // CELT NB
	2.5, 5, 10, 20, // CELT WB
	2.5, 5, 10, 20, // CELT SWB
	2.5, 5, 10, 20, // CELT FB
}

// PacketDurationMs estimates an Opus packet's playback duration from its
// TOC (table-of-contents) byte: the top 5 bits select the configuration
// (and with it the base frame size), and the low 2 bits select how many
// frames the packet carries. Code 3 (an arbitrary frame count byte
// follows the TOC) is not supported and returns an error.
func PacketDurationMs(toc byte) (float64, error) {
	config := int(toc >> 3)
	frameCountCode := toc & 0x03

	base := opusConfigFrameMs[config]
	switch frameCountCode {
	case 0:
		return base, nil
	case 1, 2:
		return base * 2, nil
	default:
		return 0, fmt.Errorf("codec: opus TOC frame count code 3 (arbitrary count) not supported")
	}
}
