package codec

import "fmt"

// VP9IsKeyframe reports whether a VP9 frame's uncompressed header
// indicates a keyframe. The bit layout: 2-bit frame marker, then
// profile_low_bit, profile_high_bit (profile 3 carries one more
// reserved zero bit), then show_existing_frame. When a frame merely
// shows an already-decoded reference (show_existing_frame == 1) there
// is no frame_type bit at all and the frame is never a keyframe;
// otherwise the next bit is frame_type (0 means key).
func VP9IsKeyframe(frame []byte) (bool, error) {
	if len(frame) == 0 {
		return false, fmt.Errorf("codec: empty vp9 frame")
	}
	r := newBitReader(frame)

	if _, err := r.readBits(2); err != nil { // frame_marker
		return false, err
	}
	profileLow, err := r.readBit()
	if err != nil {
		return false, err
	}
	profileHigh, err := r.readBit()
	if err != nil {
		return false, err
	}
	profile := profileLow | (profileHigh << 1)
	if profile == 3 {
		if _, err := r.readBit(); err != nil { // reserved_zero
			return false, err
		}
	}

	showExisting, err := r.readBit()
	if err != nil {
		return false, err
	}
	if showExisting == 1 {
		return false, nil
	}

	frameType, err := r.readBit()
	if err != nil {
		return false, err
	}
	return frameType == 0, nil
}
