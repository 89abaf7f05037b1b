package ebml

import "time"

// DateEpoch is the EBML Date epoch: 2001-01-01T00:00:00 UTC. Date
// payloads are a signed 64-bit nanosecond offset from this instant, not
// Unix time.
var DateEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Element is one decoded node of an EBML tree. Its Kind selects which of
// the typed fields below is meaningful; the rest are left at their zero
// value. Master elements carry Children instead of a scalar payload.
type Element struct {
	ID   uint64
	Name Name
	Kind Kind

	// Size is the element's payload length in bytes. Parse sets it to the
	// length of the payload it is given. Decode rejects the unknown-size
	// marker on every element except Segment, and Segment is never parsed
	// into an Element, so Size is never negative for parsed elements.
	Size int64

	UInt  uint64
	Int   int64
	Float float64
	Str   string
	Date  time.Time
	Bytes []byte

	// Variant carries the named enum/CodecID mapping for elements whose
	// raw scalar has a closed-ish vocabulary (TrackType, FlagInterlaced,
	// ChromaSitingHorz, ChromaSitingVert, CodecID). Empty for every
	// other element.
	Variant string

	// Block is populated instead of Bytes when Name == NameSimpleBlock:
	// the payload has been structurally decoded per 4.7.
	Block *SimpleBlock

	Children []*Element
}

// UnknownSize reports whether e's Size is negative, the convention for
// an element written with the reserved all-ones VINT size. Elements
// built by Parse always carry a known size.
func (e *Element) UnknownSize() bool {
	return e.Size < 0
}

// Find returns the first direct child with the given name, or nil.
func (e *Element) Find(name Name) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindAll returns every direct child with the given name, in document
// order.
func (e *Element) FindAll(name Name) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// DateFromNanos converts an EBML Date payload (signed nanoseconds since
// 2001-01-01T00:00:00 UTC) to a time.Time.
func DateFromNanos(ns int64) time.Time {
	return DateEpoch.Add(time.Duration(ns))
}

// NanosFromDate converts a time.Time to the signed nanosecond-offset
// encoding an EBML Date element expects.
func NanosFromDate(t time.Time) int64 {
	return int64(t.Sub(DateEpoch))
}
