// Package codec inspects already-encoded VP8, VP9, and Opus bitstream
// payloads. It never encodes: this system frames and ships buffers that
// arrive already compressed, and only needs to answer "is this a
// keyframe" and "what does an Opus CodecPrivate header look like".
package codec

// IsVideoKeyframe reports whether block is a keyframe for the given
// codec variant (as produced by ebml.CodecVariant). Only VP8 and VP9
// are video codecs this system recognizes; any other variant is not a
// video codec and always answers false.
func IsVideoKeyframe(codecVariant string, payload []byte) (bool, error) {
	switch codecVariant {
	case "VP8":
		return VP8IsKeyframe(payload)
	case "VP9":
		return VP9IsKeyframe(payload)
	default:
		return false, nil
	}
}
