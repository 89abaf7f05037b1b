package ebml

import "fmt"

// DescribeTrackType maps a TrackEntry's raw TrackType value to its named
// variant. Unrecognized integers are preserved, not discarded, as the
// spec requires — a demuxer must still be able to report what it saw.
func DescribeTrackType(n uint64) string {
	switch n {
	case 1:
		return "Video"
	case 2:
		return "Audio"
	default:
		return fmt.Sprintf("Raw(%d)", n)
	}
}

// DescribeFlagInterlaced maps a Video element's raw FlagInterlaced value.
func DescribeFlagInterlaced(n uint64) string {
	switch n {
	case 0:
		return "Undetermined"
	case 1:
		return "Interlaced"
	case 2:
		return "Progressive"
	default:
		return fmt.Sprintf("Raw(%d)", n)
	}
}

// DescribeChromaSitingHorz maps the raw ChromaSitingHorz value.
func DescribeChromaSitingHorz(n uint64) string {
	switch n {
	case 0:
		return "Unspecified"
	case 1:
		return "LeftCollocated"
	case 2:
		return "Half"
	default:
		return fmt.Sprintf("Raw(%d)", n)
	}
}

// DescribeChromaSitingVert maps the raw ChromaSitingVert value.
func DescribeChromaSitingVert(n uint64) string {
	switch n {
	case 0:
		return "Unspecified"
	case 1:
		return "TopCollocated"
	case 2:
		return "Half"
	default:
		return fmt.Sprintf("Raw(%d)", n)
	}
}

// CodecVariant maps a CodecID string to its named variant. Unrecognized
// codec strings are preserved as Other(s), never dropped.
func CodecVariant(codecID string) string {
	switch codecID {
	case "A_OPUS":
		return "Opus"
	case "A_VORBIS":
		return "Vorbis"
	case "V_VP8":
		return "VP8"
	case "V_VP9":
		return "VP9"
	default:
		return fmt.Sprintf("Other(%s)", codecID)
	}
}
