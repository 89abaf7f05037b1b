// Package demux implements the streaming top-level-of-Segment demuxer:
// a pure accumulator/position state machine fed one chunk at a time,
// with no goroutines and no internal buffering beyond the bytes not yet
// resolved into a complete element.
package demux

import (
	"github.com/Azunyan1111/go-webm-stream/ebml"
)

// TopLevelElement is one fully decoded element belonging to the
// top-level-of-Segment set, in the order it appeared in the stream.
type TopLevelElement struct {
	Name    ebml.Name
	Element *ebml.Element
}

// Demuxer holds the growable byte accumulator and read position of an
// in-progress EBML/WebM parse. It is not safe for concurrent use — like
// every component in this system, it is a pure data transformer driven
// by a single caller making "process this chunk" calls.
type Demuxer struct {
	buf []byte
	pos int
}

// New returns an empty Demuxer ready to receive the first chunk (which
// should begin with the EBML header).
func New() *Demuxer {
	return &Demuxer{}
}

// Feed appends chunk to the accumulator and decodes every top-level
// element that is now fully buffered, in file order. It returns an empty
// slice (never an error) when the remaining bytes don't yet resolve to
// a full element — call Feed again with more input, or with a nil chunk
// once more input is known to be buffered from a previous call.
//
// Segment's header is consumed transparently: its children (SeekHead,
// Info, Tracks, Tags, Cues, Cluster) are decoded and emitted exactly as
// if they were siblings of Segment itself, since Segment's body is
// never materialized as a Master (its size is unknown, so there is
// nothing to wait on). Every other master, including Cluster, is only
// emitted once its full payload has arrived.
func (d *Demuxer) Feed(chunk []byte) ([]TopLevelElement, error) {
	if len(chunk) > 0 {
		d.buf = append(d.buf, chunk...)
	}

	var out []TopLevelElement
	for d.pos < len(d.buf) {
		r, err := ebml.Decode(d.buf[d.pos:])
		if err != nil {
			return out, err
		}

		switch r.Kind {
		case ebml.ResultNeedMoreBytes:
			d.compact()
			return out, nil

		case ebml.ResultSkipHeader:
			// Segment only: consume the header and continue straight
			// into its children at the current position.
			d.pos += r.Consumed

		case ebml.ResultDecoded:
			if !ebml.IsTopLevelOfSegment(r.Name) {
				// Not expected in well-formed input at this scan
				// depth; skip it rather than failing the whole
				// stream over one stray element.
				d.pos += r.Consumed
				continue
			}
			el, err := ebml.Parse(r.ID, r.Name, r.EKind, r.Payload)
			if err != nil {
				return out, err
			}
			d.pos += r.Consumed
			out = append(out, TopLevelElement{Name: r.Name, Element: el})
		}
	}

	d.compact()
	return out, nil
}

// compact drops already-consumed bytes from the front of the
// accumulator so it never grows past the size of the single largest
// top-level element still in flight.
func (d *Demuxer) compact() {
	if d.pos == 0 {
		return
	}
	remaining := len(d.buf) - d.pos
	copy(d.buf, d.buf[d.pos:])
	d.buf = d.buf[:remaining]
	d.pos = 0
}
