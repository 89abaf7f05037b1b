package mux

import (
	"bytes"
	"container/heap"
	"fmt"

	"github.com/Azunyan1111/go-webm-stream/codec"
	"github.com/Azunyan1111/go-webm-stream/ebml"
	"github.com/Azunyan1111/go-webm-stream/vint"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Azunyan1111/go-webm-stream/internal/webmlog"
)

// cuePoint is a pending Cues.CuePoint entry, written only once, at
// Close, after every Cluster's true Segment-relative byte offset is
// known.
type cuePoint struct {
	timeMs     int64
	track      uint64
	clusterPos int64
}

// Muxer assembles a WebM stream from per-track buffers pushed in
// arrival order: a single struct holding cluster-in-progress state,
// fed by explicit PushBuffer/EndTrack/Close calls rather than a background
// goroutine.
type Muxer struct {
	cfg Config

	tracks   []*Track
	byNumber map[uint64]*Track
	nextNum  uint64
	hasVideo bool
	started  bool

	buf                 bytes.Buffer
	segmentPayloadStart int
	durationOffset      int
	cuesSeekPosOffset   int

	ready readyHeap

	clusterOpen   bool
	clusterTime   int64
	clusterBuf    bytes.Buffer
	clusterBlocks int

	cues []cuePoint

	closed bool
}

// NewMuxer returns a Muxer ready to accept AddTrack calls. The EBML
// header is written immediately; Segment/SeekHead/Info/Tracks are
// deferred until the first buffer is pushed, so every track can still
// be declared right up to that point.
func NewMuxer(cfg Config) *Muxer {
	m := &Muxer{cfg: cfg, byNumber: make(map[uint64]*Track), nextNum: 1}
	writeEBMLHeaderInto(&m.buf)
	return m
}

func writeEBMLHeaderInto(buf *bytes.Buffer) {
	_ = writeMaster(buf, ebml.NameEBML, func(b *bytes.Buffer) error {
		if err := writeUint(b, ebml.NameEBMLVersion, 1); err != nil {
			return err
		}
		if err := writeUint(b, ebml.NameEBMLReadVersion, 1); err != nil {
			return err
		}
		if err := writeUint(b, ebml.NameEBMLMaxIDLength, 4); err != nil {
			return err
		}
		if err := writeUint(b, ebml.NameEBMLMaxSizeLength, 8); err != nil {
			return err
		}
		if err := writeString(b, ebml.NameDocType, "webm"); err != nil {
			return err
		}
		if err := writeUint(b, ebml.NameDocTypeVersion, 2); err != nil {
			return err
		}
		return writeUint(b, ebml.NameDocTypeReadVersion, 2)
	})
}

// AddTrack registers a track with the given caps and returns it. It
// must be called before the first PushBuffer call on any track.
func (m *Muxer) AddTrack(caps Caps) (*Track, error) {
	if m.started {
		return nil, ErrLateTrackAdd
	}
	if err := validateCaps(caps); err != nil {
		return nil, err
	}

	number := m.nextNum
	m.nextNum++
	uid := trackUID()
	t := newTrack(number, uid, caps)
	m.tracks = append(m.tracks, t)
	m.byNumber[number] = t
	if caps.Kind == Video {
		m.hasVideo = true
	}
	return t, nil
}

func validateCaps(caps Caps) error {
	switch caps.Codec {
	case "VP8", "VP9":
		if caps.Kind != Video {
			return fmt.Errorf("%w: %s is a video codec", ErrUnsupportedCodec, caps.Codec)
		}
	case "Opus":
		if caps.Kind != Audio {
			return fmt.Errorf("%w: Opus is an audio codec", ErrUnsupportedCodec)
		}
		if caps.Channels > 2 {
			return ErrOpusChannels
		}
	case "Vorbis":
		return ErrVorbisUnsupported
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedCodec, caps.Codec)
	}
	return nil
}

// trackUID folds the first 8 bytes of a random UUIDv4 into a uint64,
// giving each track a process-independent identity.
func trackUID() uint64 {
	id := uuid.New()
	var v uint64
	for i := 0; i < 8; i++ {
		v = (v << 8) | uint64(id[i])
	}
	return v
}

// PushBuffer stages b on the named track and advances the merge as far
// as currently-cached blocks allow.
func (m *Muxer) PushBuffer(trackNumber uint64, b Buffer) error {
	if m.closed {
		return ErrClosed
	}
	t, ok := m.byNumber[trackNumber]
	if !ok {
		return fmt.Errorf("mux: unknown track %d", trackNumber)
	}
	if !m.started {
		if err := m.start(); err != nil {
			return err
		}
	}
	if err := t.PushBuffer(b); err != nil {
		return err
	}
	heap.Push(&m.ready, t)
	return m.drain()
}

// EndTrack marks a track's input closed and drains whatever its
// closure now permits.
func (m *Muxer) EndTrack(trackNumber uint64) error {
	t, ok := m.byNumber[trackNumber]
	if !ok {
		return fmt.Errorf("mux: unknown track %d", trackNumber)
	}
	t.End()
	return m.drain()
}

// start writes Segment/SeekHead/Info/Tracks, the parts of the header
// that depend on the final track list. Segment itself is left
// unknown-size, since its true length isn't known until Close.
func (m *Muxer) start() error {
	m.started = true

	segmentID, _ := ebml.IDFor(ebml.NameSegment)
	m.buf.Write(idBytes(segmentID))
	unknownSize, err := vint.Unknown(8)
	if err != nil {
		return err
	}
	m.buf.Write(unknownSize)
	m.segmentPayloadStart = m.buf.Len()

	infoBytes, infoDurationOffset, err := m.buildInfo()
	if err != nil {
		return err
	}
	tracksBytes, err := m.buildTracks()
	if err != nil {
		return err
	}

	seekHeadBytes, seekOffsets, err := buildSeekHead()
	if err != nil {
		return err
	}

	m.buf.Write(seekHeadBytes)
	m.durationOffset = m.segmentPayloadStart + len(seekHeadBytes) + infoDurationOffset
	m.cuesSeekPosOffset = m.segmentPayloadStart + seekOffsets.cues

	infoSegOffset := uint64(len(seekHeadBytes))
	tracksSegOffset := uint64(len(seekHeadBytes) + len(infoBytes))
	data := m.buf.Bytes()
	patchUint8(data, m.segmentPayloadStart+seekOffsets.info, infoSegOffset)
	patchUint8(data, m.segmentPayloadStart+seekOffsets.tracks, tracksSegOffset)

	m.buf.Write(infoBytes)
	m.buf.Write(tracksBytes)

	return nil
}

func (m *Muxer) buildInfo() (data []byte, durationOffset int, err error) {
	var tmp bytes.Buffer
	if err := writeUint(&tmp, ebml.NameTimecodeScale, TimecodeScaleNs); err != nil {
		return nil, 0, err
	}
	if m.cfg.Title != "" {
		if err := writeString(&tmp, ebml.NameTitle, m.cfg.Title); err != nil {
			return nil, 0, err
		}
	}
	if err := writeString(&tmp, ebml.NameMuxingApp, m.cfg.MuxingApp); err != nil {
		return nil, 0, err
	}
	if err := writeString(&tmp, ebml.NameWritingApp, m.cfg.WritingApp); err != nil {
		return nil, 0, err
	}
	offset, err := writeFixedFloat8(&tmp, ebml.NameDuration, 0)
	if err != nil {
		return nil, 0, err
	}

	id, _ := ebml.IDFor(ebml.NameInfo)
	var out bytes.Buffer
	out.Write(idBytes(id))
	sizeBytes, err := vint.Encode(uint64(tmp.Len()))
	if err != nil {
		return nil, 0, err
	}
	out.Write(sizeBytes)
	headerLen := out.Len()
	out.Write(tmp.Bytes())
	return out.Bytes(), headerLen + offset, nil
}

func (m *Muxer) buildTracks() ([]byte, error) {
	var tmp bytes.Buffer
	for _, t := range m.tracks {
		if err := writeMaster(&tmp, ebml.NameTrackEntry, func(b *bytes.Buffer) error {
			return writeTrackEntry(b, t)
		}); err != nil {
			return nil, err
		}
	}
	var out bytes.Buffer
	if err := writeElement(&out, ebml.NameTracks, tmp.Bytes()); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeTrackEntry(b *bytes.Buffer, t *Track) error {
	if err := writeUint(b, ebml.NameTrackNumber, t.Number); err != nil {
		return err
	}
	if err := writeUint(b, ebml.NameTrackUID, t.UID); err != nil {
		return err
	}
	trackType := uint64(1)
	if t.Caps.Kind == Audio {
		trackType = 2
	}
	if err := writeUint(b, ebml.NameTrackType, trackType); err != nil {
		return err
	}
	codecID := codecIDFor(t.Caps.Codec)
	if err := writeString(b, ebml.NameCodecID, codecID); err != nil {
		return err
	}

	if t.Caps.Kind == Video {
		if err := writeMaster(b, ebml.NameVideo, func(v *bytes.Buffer) error {
			if err := writeUint(v, ebml.NamePixelWidth, uint64(t.Caps.Width)); err != nil {
				return err
			}
			return writeUint(v, ebml.NamePixelHeight, uint64(t.Caps.Height))
		}); err != nil {
			return err
		}
		return nil
	}

	if err := writeMaster(b, ebml.NameAudio, func(a *bytes.Buffer) error {
		if _, err := writeFixedFloat8(a, ebml.NameSamplingFrequency, t.Caps.SampleRate); err != nil {
			return err
		}
		return writeUint(a, ebml.NameChannels, uint64(t.Caps.Channels))
	}); err != nil {
		return err
	}

	if codecID == "A_OPUS" {
		hdr, err := codec.OpusIDHeader(t.Caps.Channels)
		if err != nil {
			return err
		}
		if err := writeBinary(b, ebml.NameCodecPrivate, hdr); err != nil {
			return err
		}
	}
	return nil
}

func codecIDFor(variant string) string {
	switch variant {
	case "VP8":
		return "V_VP8"
	case "VP9":
		return "V_VP9"
	case "Opus":
		return "A_OPUS"
	default:
		return "V_" + variant
	}
}

// drain pops cached blocks from the merge heap in (absolute time,
// video-before-audio) order as long as doing so is safe: every active
// (non-ended) track must have a cached block before the engine can pick
// a winner, since an un-cached active track might still produce a
// smaller timestamp.
func (m *Muxer) drain() error {
	for {
		if m.blockedOnInput() {
			return nil
		}
		if m.ready.Len() == 0 {
			return nil
		}
		t := heap.Pop(&m.ready).(*Track)
		block := t.cached
		t.cached = nil
		if err := m.emit(t, block); err != nil {
			return err
		}
	}
}

// blockedOnInput reports whether some still-open track has no cached
// block yet, meaning the engine cannot yet be sure it has the
// globally-earliest next block.
func (m *Muxer) blockedOnInput() bool {
	for _, t := range m.tracks {
		if !t.ended && t.cached == nil {
			return true
		}
	}
	return false
}

func (m *Muxer) emit(t *Track, block *cachedBlock) error {
	needNew := !m.clusterOpen
	if m.clusterOpen {
		elapsed := block.absoluteMs - m.clusterTime
		switch {
		case m.clusterBuf.Len() >= m.cfg.ClusterSizeLimit:
			needNew = true
		case elapsed >= m.cfg.ClusterDuration.Milliseconds():
			needNew = true
		case m.hasVideo && t.Caps.Kind == Video && block.keyframe:
			needNew = true
		}
	}

	if needNew {
		if err := m.flushCluster(); err != nil {
			return err
		}
		m.clusterOpen = true
		m.clusterTime = block.absoluteMs
		if t.Caps.Kind == Video {
			m.cues = append(m.cues, cuePoint{
				timeMs:     m.clusterTime,
				track:      t.Number,
				clusterPos: int64(m.buf.Len() - m.segmentPayloadStart),
			})
		}
	}

	relative := block.absoluteMs - m.clusterTime
	if relative > 32767 {
		webmlog.L().Warn("simpleblock relative timecode overflow",
			zap.Int64("relative_ms", relative), zap.Uint64("track", t.Number))
	}

	sb, err := ebml.EncodeSimpleBlock(t.Number, int16(relative), block.keyframe, block.payload)
	if err != nil {
		return err
	}
	if err := writeElement(&m.clusterBuf, ebml.NameSimpleBlock, sb); err != nil {
		return err
	}
	m.clusterBlocks++
	return nil
}

func (m *Muxer) flushCluster() error {
	if !m.clusterOpen || m.clusterBlocks == 0 {
		m.clusterOpen = false
		m.clusterBuf.Reset()
		m.clusterBlocks = 0
		return nil
	}

	var children bytes.Buffer
	if err := writeUint(&children, ebml.NameTimecode, uint64(m.clusterTime)); err != nil {
		return err
	}
	children.Write(m.clusterBuf.Bytes())

	if err := writeElement(&m.buf, ebml.NameCluster, children.Bytes()); err != nil {
		return err
	}

	m.clusterOpen = false
	m.clusterBuf.Reset()
	m.clusterBlocks = 0
	return nil
}

// Close drains every remaining cached block regardless of the
// blocked-on-input rule — at end of stream no more input is coming, so
// sort order can be respected without waiting — flushes the final cluster,
// writes the accumulated Cues, patches Duration and the Cues SeekHead
// entry, and returns the complete serialized file.
func (m *Muxer) Close() ([]byte, error) {
	if m.closed {
		return nil, ErrClosed
	}
	for _, t := range m.tracks {
		t.End()
	}
	for m.ready.Len() > 0 {
		t := heap.Pop(&m.ready).(*Track)
		block := t.cached
		t.cached = nil
		if block == nil {
			continue
		}
		if err := m.emit(t, block); err != nil {
			return nil, err
		}
	}
	if err := m.flushCluster(); err != nil {
		return nil, err
	}

	cuesOffset := int64(m.buf.Len() - m.segmentPayloadStart)
	if err := m.writeCues(); err != nil {
		return nil, err
	}

	data := m.buf.Bytes()
	if m.started {
		if len(m.cues) > 0 {
			patchUint8(data, m.cuesSeekPosOffset, uint64(cuesOffset))
		}

		var durationTicks float64
		for _, t := range m.tracks {
			if t.lastAbsSet && float64(t.lastAbsMs) > durationTicks {
				durationTicks = float64(t.lastAbsMs)
			}
		}
		patchFloat8(data, m.durationOffset, durationTicks)
	}

	m.closed = true
	return data, nil
}

func (m *Muxer) writeCues() error {
	if len(m.cues) == 0 {
		return nil
	}
	var cuesPayload bytes.Buffer
	for _, c := range m.cues {
		if err := writeMaster(&cuesPayload, ebml.NameCuePoint, func(cp *bytes.Buffer) error {
			if err := writeUint(cp, ebml.NameCueTime, uint64(c.timeMs)); err != nil {
				return err
			}
			return writeMaster(cp, ebml.NameCueTrackPositions, func(ctp *bytes.Buffer) error {
				if err := writeUint(ctp, ebml.NameCueTrack, c.track); err != nil {
					return err
				}
				return writeUint(ctp, ebml.NameCueClusterPosition, uint64(c.clusterPos))
			})
		}); err != nil {
			return err
		}
	}
	return writeElement(&m.buf, ebml.NameCues, cuesPayload.Bytes())
}
