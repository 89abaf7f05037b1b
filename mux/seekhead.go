package mux

import (
	"bytes"

	"github.com/Azunyan1111/go-webm-stream/ebml"
	"github.com/Azunyan1111/go-webm-stream/vint"
)

// seekOffsets records where, inside the bytes returned by buildSeekHead,
// each Seek entry's SeekPosition payload begins, so the caller can patch
// in the real Segment-relative byte offset once it is known.
type seekOffsets struct {
	info   int
	tracks int
	cues   int
}

// buildSeekHead writes a SeekHead with one Seek entry per top-level
// element a player commonly wants to jump straight to (Info, Tracks,
// Cues). Every SeekPosition is written as a fixed 8-byte placeholder;
// the caller patches each one in once its target's real offset is known.
func buildSeekHead() ([]byte, seekOffsets, error) {
	var offsets seekOffsets
	var out bytes.Buffer

	seekHeadID, _ := ebml.IDFor(ebml.NameSeekHead)
	seekID, _ := ebml.IDFor(ebml.NameSeek)
	seekIDElemID, _ := ebml.IDFor(ebml.NameSeekID)
	seekPosID, _ := ebml.IDFor(ebml.NameSeekPosition)

	entries := []struct {
		target ebml.Name
		dst    *int
	}{
		{ebml.NameInfo, &offsets.info},
		{ebml.NameTracks, &offsets.tracks},
		{ebml.NameCues, &offsets.cues},
	}

	var payload bytes.Buffer
	for _, e := range entries {
		targetID, ok := ebml.IDFor(e.target)
		if !ok {
			continue
		}
		idPayload := idBytes(targetID)
		idSizeBytes, err := vint.Encode(uint64(len(idPayload)))
		if err != nil {
			return nil, seekOffsets{}, err
		}
		posSizeBytes, err := vint.EncodeWidth(8, 1)
		if err != nil {
			return nil, seekOffsets{}, err
		}

		seekBodyLen := len(idBytes(seekIDElemID)) + len(idSizeBytes) + len(idPayload) +
			len(idBytes(seekPosID)) + len(posSizeBytes) + 8
		seekSizeBytes, err := vint.Encode(uint64(seekBodyLen))
		if err != nil {
			return nil, seekOffsets{}, err
		}

		payload.Write(idBytes(seekID))
		payload.Write(seekSizeBytes)
		payload.Write(idBytes(seekIDElemID))
		payload.Write(idSizeBytes)
		payload.Write(idPayload)
		payload.Write(idBytes(seekPosID))
		payload.Write(posSizeBytes)
		*e.dst = payload.Len()
		payload.Write(make([]byte, 8))
	}

	sizeBytes, err := vint.Encode(uint64(payload.Len()))
	if err != nil {
		return nil, seekOffsets{}, err
	}
	out.Write(idBytes(seekHeadID))
	out.Write(sizeBytes)
	headerLen := out.Len()
	out.Write(payload.Bytes())

	offsets.info += headerLen
	offsets.tracks += headerLen
	offsets.cues += headerLen

	return out.Bytes(), offsets, nil
}
