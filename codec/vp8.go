package codec

import "fmt"

// VP8IsKeyframe reports whether a VP8 frame (RFC 6386 §9.1) is a
// keyframe. The first byte of the uncompressed frame tag carries
// frame_type in its low bit: 0 is a keyframe, 1 is an interframe.
func VP8IsKeyframe(frame []byte) (bool, error) {
	if len(frame) < 3 {
		return false, fmt.Errorf("codec: vp8 frame too short for frame tag (%d bytes)", len(frame))
	}
	return frame[0]&0x01 == 0, nil
}
