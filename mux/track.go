package mux

import (
	"fmt"

	"github.com/Azunyan1111/go-webm-stream/codec"
)

// Kind distinguishes a video track from an audio track for the purposes
// of merge ordering and keyframe handling.
type Kind int

const (
	Video Kind = iota
	Audio
)

// Caps describes a track's fixed characteristics, declared once before
// any buffers are pushed.
type Caps struct {
	Kind Kind
	// Codec is the variant string this package and the codec package
	// agree on: "VP8", "VP9" for video, "Opus" for audio.
	Codec string

	Width, Height int // video only

	Channels   int     // audio only
	SampleRate float64 // audio only, informational (Matroska Audio/SamplingFrequency)
}

// Buffer is one codec-framed unit of input: exactly one VP8/VP9 frame,
// or one Opus packet.
type Buffer struct {
	PTS *int64 // nanoseconds; nil if not available
	DTS *int64 // nanoseconds; consulted only when PTS is nil
	Payload []byte
}

// cachedBlock is a track's single staged-but-not-yet-emitted buffer,
// normalized to an absolute millisecond timestamp.
type cachedBlock struct {
	absoluteMs int64
	payload    []byte
	keyframe   bool
}

// Track accumulates one track's timestamp normalization state and its
// single cached block, one cached block per active track.
type Track struct {
	Number uint64
	UID    uint64
	Caps   Caps

	offset      int64
	offsetSet   bool
	lastAbsMs   int64
	lastAbsSet  bool

	cached *cachedBlock
	ended  bool
}

func newTrack(number, uid uint64, caps Caps) *Track {
	return &Track{Number: number, UID: uid, Caps: caps}
}

// PushBuffer stages b as this track's cached block, normalizing its
// timestamp to milliseconds relative to the track's first-seen
// timestamp. It is an error to push a second buffer while one is
// already cached and unclaimed by the engine — the caller must drain
// via the engine before pushing more.
func (t *Track) PushBuffer(b Buffer) error {
	if t.ended {
		return fmt.Errorf("mux: track %d: buffer pushed after End", t.Number)
	}
	if t.cached != nil {
		return fmt.Errorf("mux: track %d: buffer pushed while one is already cached", t.Number)
	}

	var ts int64
	switch {
	case b.PTS != nil:
		ts = *b.PTS
	case b.DTS != nil:
		ts = *b.DTS
	default:
		return ErrNoTimestamp
	}

	if !t.offsetSet {
		t.offset = ts
		t.offsetSet = true
	}
	absMs := (ts - t.offset) / 1_000_000

	if t.lastAbsSet && absMs < t.lastAbsMs {
		return fmt.Errorf("%w: track %d went from %dms to %dms", ErrNonMonotonicTimestamp, t.Number, t.lastAbsMs, absMs)
	}
	t.lastAbsSet = true
	t.lastAbsMs = absMs

	keyframe := t.Caps.Kind == Audio
	if t.Caps.Kind == Video {
		kf, err := codec.IsVideoKeyframe(t.Caps.Codec, b.Payload)
		if err != nil {
			return fmt.Errorf("mux: track %d keyframe inspection: %w", t.Number, err)
		}
		keyframe = kf
	}

	t.cached = &cachedBlock{absoluteMs: absMs, payload: b.Payload, keyframe: keyframe}
	return nil
}

// End marks the track's input as closed; it is removed from the active
// set once its cached block (if any) has been drained.
func (t *Track) End() {
	t.ended = true
}
