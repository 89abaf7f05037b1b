package mux

import "errors"

// Sentinel errors surfaced at the muxer boundary, checked with
// errors.Is by callers that wrap and compare errors with
// fmt.Errorf("...: %w", err).
var (
	ErrUnsupportedCodec      = errors.New("mux: unsupported codec")
	ErrOpusChannels          = errors.New("mux: opus supports at most 2 channels")
	ErrLateTrackAdd          = errors.New("mux: cannot add a track after playback has started")
	ErrVorbisUnsupported     = errors.New("mux: vorbis payloads are not supported")
	ErrNoTimestamp           = errors.New("mux: buffer carries neither pts nor dts")
	ErrNonMonotonicTimestamp = errors.New("mux: track timestamp moved backward")
	ErrClosed                = errors.New("mux: muxer already finished")
)
