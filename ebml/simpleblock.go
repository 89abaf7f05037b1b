package ebml

import (
	"fmt"

	"github.com/Azunyan1111/go-webm-stream/vint"
)

// LacingMode is the two-bit lacing field of a SimpleBlock's flags byte.
type LacingMode int

const (
	LacingNone LacingMode = iota
	LacingXiph
	LacingFixed
	LacingEBML
)

func (m LacingMode) String() string {
	switch m {
	case LacingNone:
		return "None"
	case LacingXiph:
		return "Xiph"
	case LacingFixed:
		return "Fixed"
	case LacingEBML:
		return "EBML"
	default:
		return "Unknown"
	}
}

// SimpleBlock is the structurally decoded form of a SimpleBlock element's
// binary payload: TrackNumber VINT | i16 relative timecode (BE) | u8
// flags | payload (one frame, or several when laced).
type SimpleBlock struct {
	TrackNumber uint64
	Timecode    int16
	Keyframe    bool
	Invisible   bool
	Discardable bool
	Lacing      LacingMode
	Frames      [][]byte
}

// DecodeSimpleBlock structurally decodes a SimpleBlock element's payload.
// All four lacing modes are supported on ingest; a muxer built against
// this package only ever emits LacingNone (see EncodeSimpleBlock).
func DecodeSimpleBlock(payload []byte) (*SimpleBlock, error) {
	tn, err := vint.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: simpleblock track number: %v", ErrMalformed, err)
	}
	rest := payload[tn.Width:]
	if len(rest) < 3 {
		return nil, fmt.Errorf("%w: simpleblock header truncated", ErrMalformed)
	}

	timecode := int16(uint16(rest[0])<<8 | uint16(rest[1]))
	flags := rest[2]
	body := rest[3:]

	b := &SimpleBlock{
		TrackNumber: tn.Data,
		Timecode:    timecode,
		Keyframe:    flags&0x80 != 0,
		Invisible:   flags&0x08 != 0,
		Discardable: flags&0x01 != 0,
		Lacing:      LacingMode((flags >> 1) & 0x03),
	}

	if b.Lacing == LacingNone {
		b.Frames = [][]byte{body}
		return b, nil
	}
	if len(body) < 1 {
		return nil, fmt.Errorf("%w: laced simpleblock missing frame count", ErrMalformed)
	}
	frameCount := int(body[0]) + 1
	body = body[1:]

	var frames [][]byte
	var err2 error
	switch b.Lacing {
	case LacingXiph:
		frames, err2 = unlaceXiph(body, frameCount)
	case LacingFixed:
		frames, err2 = unlaceFixed(body, frameCount)
	case LacingEBML:
		frames, err2 = unlaceEBML(body, frameCount)
	default:
		return nil, fmt.Errorf("%w: unrecognized lacing mode", ErrMalformed)
	}
	if err2 != nil {
		return nil, err2
	}
	b.Frames = frames
	return b, nil
}

func unlaceXiph(body []byte, frameCount int) ([][]byte, error) {
	sizes := make([]int, frameCount-1)
	pos := 0
	for i := 0; i < frameCount-1; i++ {
		size := 0
		for {
			if pos >= len(body) {
				return nil, fmt.Errorf("%w: xiph lacing size truncated", ErrMalformed)
			}
			size += int(body[pos])
			done := body[pos] != 0xFF
			pos++
			if done {
				break
			}
		}
		sizes[i] = size
	}
	return sliceFrames(body[pos:], sizes)
}

func unlaceFixed(body []byte, frameCount int) ([][]byte, error) {
	if frameCount <= 0 || len(body)%frameCount != 0 {
		return nil, fmt.Errorf("%w: fixed lacing does not divide evenly", ErrMalformed)
	}
	size := len(body) / frameCount
	sizes := make([]int, frameCount-1)
	for i := range sizes {
		sizes[i] = size
	}
	return sliceFrames(body, sizes)
}

func unlaceEBML(body []byte, frameCount int) ([][]byte, error) {
	sizes := make([]int, frameCount-1)
	pos := 0
	first, err := vint.Decode(body[pos:])
	if err != nil {
		return nil, fmt.Errorf("%w: ebml lacing first size: %v", ErrMalformed, err)
	}
	pos += first.Width
	if frameCount > 1 {
		sizes[0] = int(first.Data)
	}
	prev := int64(first.Data)
	for i := 1; i < frameCount-1; i++ {
		delta, err := decodeSignedVint(body[pos:])
		if err != nil {
			return nil, fmt.Errorf("%w: ebml lacing delta: %v", ErrMalformed, err)
		}
		pos += delta.width
		prev += delta.value
		if prev < 0 {
			return nil, fmt.Errorf("%w: ebml lacing size underflow", ErrMalformed)
		}
		sizes[i] = int(prev)
	}
	return sliceFrames(body[pos:], sizes)
}

// sliceFrames splits data into len(sizes)+1 frames: sizes[0..n-2] are
// explicit, and the final frame takes whatever remains.
func sliceFrames(data []byte, sizes []int) ([][]byte, error) {
	frames := make([][]byte, 0, len(sizes)+1)
	pos := 0
	for _, s := range sizes {
		if pos+s > len(data) {
			return nil, fmt.Errorf("%w: laced frame size overruns payload", ErrMalformed)
		}
		frames = append(frames, data[pos:pos+s])
		pos += s
	}
	frames = append(frames, data[pos:])
	return frames, nil
}

type signedVint struct {
	value int64
	width int
}

// decodeSignedVint reads an EBML-laced signed size delta: a VINT whose
// data field is biased by half its representable range, matching the
// encoding Matroska uses for successive lace-size deltas.
func decodeSignedVint(buf []byte) (signedVint, error) {
	v, err := vint.Decode(buf)
	if err != nil {
		return signedVint{}, err
	}
	bias := int64(1)<<uint(7*v.Width-1) - 1
	return signedVint{value: int64(v.Data) - bias, width: v.Width}, nil
}

// EncodeSimpleBlock serializes a SimpleBlock with LacingNone and exactly
// one frame, the only form this package's muxer ever emits.
func EncodeSimpleBlock(trackNumber uint64, timecode int16, keyframe bool, payload []byte) ([]byte, error) {
	tn, err := vint.Encode(trackNumber)
	if err != nil {
		return nil, fmt.Errorf("simpleblock track number: %w", err)
	}
	var flags byte
	if keyframe {
		flags |= 0x80
	}
	out := make([]byte, 0, len(tn)+3+len(payload))
	out = append(out, tn...)
	out = append(out, byte(uint16(timecode)>>8), byte(uint16(timecode)))
	out = append(out, flags)
	out = append(out, payload...)
	return out, nil
}
