package ebml

import (
	"errors"
	"fmt"

	"github.com/Azunyan1111/go-webm-stream/vint"
)

// ErrNeedMoreBytes mirrors vint.ErrNeedMoreBytes at the element level: the
// buffer does not yet hold a complete element header plus payload.
var ErrNeedMoreBytes = vint.ErrNeedMoreBytes

// ErrMalformed wraps any structural failure below the "just need more
// bytes" threshold — a bad VINT marker, a declared size that overruns a
// known element, a truncated SimpleBlock header.
var ErrMalformed = errors.New("ebml: malformed element")

// Result is the outcome of one Decode call: exactly one of Decoded,
// NeedMoreBytes, or SkipHeader is meaningful, selected by Kind.
type ResultKind int

const (
	ResultDecoded ResultKind = iota
	ResultNeedMoreBytes
	ResultSkipHeader
)

// Result carries a decoded header/payload split, the amount of input it
// consumed, and which of the three decoder outcomes occurred.
type Result struct {
	Kind ResultKind

	ID      uint64
	Name    Name
	EKind   Kind
	Payload []byte // the element's raw, undecoded payload bytes
	Consumed int    // bytes consumed from the front of buf (header + payload)
}

// Decode reads one element header from the front of buf and, except for
// the Segment special case, splits off its payload. It never recurses —
// recursing into Master payloads is the Typed Parser's job (Parse below).
//
// Segment is handled specially: because a live Cluster stream has no
// known end in advance, Decode does not wait for the Segment's full
// (unknown-size) body to be buffered. It reports SkipHeader with
// Consumed set to just the ID+size header, and the caller resumes
// decoding directly inside the Segment's children. Every other
// element, including known-size masters like Cluster, waits for its
// full payload to be buffered and reports NeedMoreBytes until then.
func Decode(buf []byte) (Result, error) {
	idv, err := vint.Decode(buf)
	if err != nil {
		if errors.Is(err, vint.ErrNeedMoreBytes) {
			return Result{Kind: ResultNeedMoreBytes}, nil
		}
		return Result{}, fmt.Errorf("%w: element id: %v", ErrMalformed, err)
	}

	rest := buf[idv.Width:]
	sizev, err := vint.Decode(rest)
	if err != nil {
		if errors.Is(err, vint.ErrNeedMoreBytes) {
			return Result{Kind: ResultNeedMoreBytes}, nil
		}
		return Result{}, fmt.Errorf("%w: element size: %v", ErrMalformed, err)
	}

	headerLen := idv.Width + sizev.Width
	name, kind := Lookup(idv.Raw)

	if sizev.Unknown && kind != KindMaster {
		return Result{}, fmt.Errorf("%w: unknown size on non-master element %s", ErrMalformed, name)
	}
	if sizev.Unknown && name != NameSegment {
		return Result{}, fmt.Errorf("%w: unknown size on unsupported master %s", ErrMalformed, name)
	}

	// Segment is the only in-scope unknown-size master. SkipHeader
	// exists solely to let the caller stream Segment's children instead
	// of waiting on a length that will never arrive — any other master,
	// known-size, still waits for its full payload like everything else.
	if name == NameSegment {
		return Result{
			Kind:     ResultSkipHeader,
			ID:       idv.Raw,
			Name:     name,
			EKind:    kind,
			Consumed: headerLen,
		}, nil
	}

	available := uint64(len(buf) - headerLen)
	if sizev.Data > available {
		return Result{Kind: ResultNeedMoreBytes}, nil
	}

	payloadLen := int(sizev.Data)
	return Result{
		Kind:     ResultDecoded,
		ID:       idv.Raw,
		Name:     name,
		EKind:    kind,
		Payload:  buf[headerLen : headerLen+payloadLen],
		Consumed: headerLen + payloadLen,
	}, nil
}
