package ebml

import (
	"fmt"
	"math"
)

// Parse decodes a payload according to kind and assembles the resulting
// Element. Master payloads are decoded recursively by repeated calls to
// Decode; every other kind is a leaf conversion. Parse never asks for
// more bytes — it is only ever called with a payload slice whose full
// length is already known (a complete top-level element, or a Master's
// already-split child region).
func Parse(id uint64, name Name, kind Kind, payload []byte) (*Element, error) {
	e := &Element{ID: id, Name: name, Kind: kind, Size: int64(len(payload))}

	switch kind {
	case KindMaster:
		children, err := parseChildren(payload)
		if err != nil {
			return nil, err
		}
		e.Children = children

	case KindUInt:
		e.UInt = parseUint(payload)
		switch name {
		case NameTrackType:
			e.Variant = DescribeTrackType(e.UInt)
		case NameFlagInterlaced:
			e.Variant = DescribeFlagInterlaced(e.UInt)
		case NameChromaSitingHorz:
			e.Variant = DescribeChromaSitingHorz(e.UInt)
		case NameChromaSitingVert:
			e.Variant = DescribeChromaSitingVert(e.UInt)
		}

	case KindInt:
		e.Int = parseInt(payload)

	case KindFloat:
		f, err := parseFloat(payload)
		if err != nil {
			return nil, err
		}
		e.Float = f

	case KindDate:
		if len(payload) == 0 {
			e.Date = DateEpoch
		} else if len(payload) == 8 {
			e.Date = DateFromNanos(parseInt(payload))
		} else {
			return nil, fmt.Errorf("%w: date payload must be 8 bytes, got %d", ErrMalformed, len(payload))
		}

	case KindString:
		e.Str = truncateAtNUL(payload)
		if name == NameCodecID {
			e.Variant = CodecVariant(e.Str)
		}

	case KindUTF8:
		e.Str = truncateAtNULRune(payload)

	case KindBinary:
		if name == NameSimpleBlock {
			b, err := DecodeSimpleBlock(payload)
			if err != nil {
				return nil, err
			}
			e.Block = b
		} else {
			e.Bytes = payload
		}

	case KindVoid, KindCRC32:
		// size already recorded; payload carries no semantic value

	default:
		e.Bytes = payload
	}

	return e, nil
}

// parseChildren repeatedly applies Decode to payload until it is
// exhausted, recursively Parse-ing each child.
func parseChildren(payload []byte) ([]*Element, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var children []*Element
	pos := 0
	for pos < len(payload) {
		r, err := Decode(payload[pos:])
		if err != nil {
			return nil, err
		}
		switch r.Kind {
		case ResultNeedMoreBytes:
			return nil, fmt.Errorf("%w: master element payload truncated mid-child", ErrMalformed)
		case ResultSkipHeader:
			return nil, fmt.Errorf("%w: unexpected unknown-size child inside a known-size master", ErrMalformed)
		}
		child, err := Parse(r.ID, r.Name, r.EKind, r.Payload)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		pos += r.Consumed
	}
	return children, nil
}

func parseUint(payload []byte) uint64 {
	var v uint64
	for _, b := range payload {
		v = (v << 8) | uint64(b)
	}
	return v
}

func parseInt(payload []byte) int64 {
	if len(payload) == 0 {
		return 0
	}
	v := parseUint(payload)
	bits := uint(len(payload)) * 8
	if bits < 64 && payload[0]&0x80 != 0 {
		v |= ^uint64(0) << bits
	}
	return int64(v)
}

func parseFloat(payload []byte) (float64, error) {
	switch len(payload) {
	case 0:
		return 0, nil
	case 4:
		bits := uint32(parseUint(payload))
		return float64(math.Float32frombits(bits)), nil
	case 8:
		bits := parseUint(payload)
		return math.Float64frombits(bits), nil
	default:
		return 0, fmt.Errorf("%w: float payload must be 4 or 8 bytes, got %d", ErrMalformed, len(payload))
	}
}

func truncateAtNUL(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func truncateAtNULRune(b []byte) string {
	s := string(b)
	for i, r := range s {
		if r == 0 {
			return s[:i]
		}
	}
	return s
}
