// Command webmmux reads raw codec bitstream files and muxes them into a
// .webm file via the mux package.
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Azunyan1111/go-webm-stream/codec"
	"github.com/Azunyan1111/go-webm-stream/mux"
)

var (
	videoPath   string
	videoCodec  string
	videoWidth  int
	videoHeight int
	fps         float64

	audioPath       string
	audioChannels   int
	audioSampleRate float64

	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "webmmux",
	Short: "Mux raw VP8/VP9/Opus bitstreams into a .webm file",
	Long: `webmmux reads an IVF-framed VP8/VP9 bitstream and/or a
length-prefixed raw Opus packet stream, feeds them through mux.Muxer
in timestamp order, and writes the result to a .webm file.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&videoPath, "video", "", "path to an IVF-framed VP8/VP9 bitstream")
	rootCmd.Flags().StringVar(&videoCodec, "video-codec", "VP8", "video codec of --video: VP8 or VP9")
	rootCmd.Flags().IntVar(&videoWidth, "width", 0, "video pixel width")
	rootCmd.Flags().IntVar(&videoHeight, "height", 0, "video pixel height")
	rootCmd.Flags().Float64Var(&fps, "fps", 30, "video framerate, used only when the IVF timestamp field is absent")

	rootCmd.Flags().StringVar(&audioPath, "audio", "", "path to a length-prefixed raw Opus packet stream")
	rootCmd.Flags().IntVar(&audioChannels, "channels", 2, "Opus channel count (1 or 2)")
	rootCmd.Flags().Float64Var(&audioSampleRate, "sample-rate", 48000, "Opus sample rate, informational")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "out.webm", "output .webm path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "webmmux:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if videoPath == "" && audioPath == "" {
		return fmt.Errorf("at least one of --video or --audio is required")
	}

	m := mux.NewMuxer(mux.NewConfig())

	var videoTrack *mux.Track
	var videoFrames []ivfFrame
	if videoPath != "" {
		f, err := os.Open(videoPath)
		if err != nil {
			return err
		}
		defer f.Close()
		videoFrames, err = readIVF(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", videoPath, err)
		}
		videoTrack, err = m.AddTrack(mux.Caps{Kind: mux.Video, Codec: videoCodec, Width: videoWidth, Height: videoHeight})
		if err != nil {
			return err
		}
	}

	var audioTrack *mux.Track
	var audioPackets [][]byte
	if audioPath != "" {
		f, err := os.Open(audioPath)
		if err != nil {
			return err
		}
		defer f.Close()
		audioPackets, err = readLengthPrefixed(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", audioPath, err)
		}
		audioTrack, err = m.AddTrack(mux.Caps{Kind: mux.Audio, Codec: "Opus", Channels: audioChannels, SampleRate: audioSampleRate})
		if err != nil {
			return err
		}
	}

	if videoTrack != nil {
		frameDurationNs := int64(1_000_000_000 / fps)
		for i, frame := range videoFrames {
			ts := frame.timestampMs * int64(nsPerMs)
			if frame.timestampMs == 0 && i > 0 {
				ts = int64(i) * frameDurationNs
			}
			if err := m.PushBuffer(videoTrack.Number, mux.Buffer{PTS: &ts, Payload: frame.payload}); err != nil {
				return fmt.Errorf("pushing video frame %d: %w", i, err)
			}
		}
		if err := m.EndTrack(videoTrack.Number); err != nil {
			return err
		}
	}

	if audioTrack != nil {
		var elapsedMs float64
		for i, pkt := range audioPackets {
			if len(pkt) == 0 {
				continue
			}
			ts := int64(elapsedMs * float64(nsPerMs))
			if err := m.PushBuffer(audioTrack.Number, mux.Buffer{PTS: &ts, Payload: pkt}); err != nil {
				return fmt.Errorf("pushing audio packet %d: %w", i, err)
			}
			durMs, err := codec.PacketDurationMs(pkt[0])
			if err != nil {
				return fmt.Errorf("audio packet %d: %w", i, err)
			}
			elapsedMs += durMs
		}
		if err := m.EndTrack(audioTrack.Number); err != nil {
			return err
		}
	}

	data, err := m.Close()
	if err != nil {
		return err
	}

	return os.WriteFile(outputPath, data, 0o644)
}

const nsPerMs = 1_000_000 // nanoseconds per millisecond

// ivfFrame is one decoded IVF frame: its 12-byte header carries a
// 4-byte little-endian size and an 8-byte little-endian timestamp.
type ivfFrame struct {
	timestampMs int64
	payload     []byte
}

func readIVF(r io.Reader) ([]ivfFrame, error) {
	var header [12]byte
	var frames []ivfFrame
	for {
		_, err := io.ReadFull(r, header[:])
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				return frames, nil
			}
			return nil, err
		}
		size := binary.LittleEndian.Uint32(header[0:4])
		ts := binary.LittleEndian.Uint64(header[4:12])
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		frames = append(frames, ivfFrame{timestampMs: int64(ts), payload: payload})
	}
}

// readLengthPrefixed reads a sequence of 4-byte big-endian length
// prefixed packets, a simple framing for raw Opus packet dumps.
func readLengthPrefixed(r io.Reader) ([][]byte, error) {
	var lenBuf [4]byte
	var packets [][]byte
	for {
		_, err := io.ReadFull(r, lenBuf[:])
		if err == io.EOF {
			return packets, nil
		}
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				return packets, nil
			}
			return nil, err
		}
		size := binary.BigEndian.Uint32(lenBuf[:])
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		packets = append(packets, payload)
	}
}
