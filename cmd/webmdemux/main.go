// Command webmdemux streams a .webm file through the demux package and
// prints each top-level element as it becomes available.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Azunyan1111/go-webm-stream/ebml"
	"github.com/Azunyan1111/go-webm-stream/ebml/demux"
	"github.com/Azunyan1111/go-webm-stream/internal/webmlog"
)

const chunkSize = 32 * 1024

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "webmdemux [file]",
	Short: "Stream-decode a WebM file and print its top-level elements",
	Long: `webmdemux reads a .webm file (or stdin, with "-" or no argument)
and prints each decoded top-level element as it streams out, one line
per element. Pass -v to also dump each element's typed value tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "dump the full typed element tree")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	d := demux.New()
	buf := make([]byte, chunkSize)
	offset := int64(0)

	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			tops, err := d.Feed(buf[:n])
			if err != nil {
				webmlog.L().Error("malformed stream", zap.Int64("offset", offset), zap.Error(err))
				return err
			}
			offset += int64(n)
			for _, top := range tops {
				printTop(top)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func printTop(top demux.TopLevelElement) {
	fmt.Printf("%s\n", top.Name)
	if verbose {
		dumpElement(top.Element, 1)
	}
}

func dumpElement(e *ebml.Element, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	switch e.Kind {
	case ebml.KindMaster:
		fmt.Printf("%s%s (Master)\n", indent, e.Name)
		for _, c := range e.Children {
			dumpElement(c, depth+1)
		}
	case ebml.KindUInt:
		if e.Variant != "" {
			fmt.Printf("%s%s = %d (%s)\n", indent, e.Name, e.UInt, e.Variant)
		} else {
			fmt.Printf("%s%s = %d\n", indent, e.Name, e.UInt)
		}
	case ebml.KindInt:
		fmt.Printf("%s%s = %d\n", indent, e.Name, e.Int)
	case ebml.KindFloat:
		fmt.Printf("%s%s = %v\n", indent, e.Name, e.Float)
	case ebml.KindString, ebml.KindUTF8:
		if e.Variant != "" {
			fmt.Printf("%s%s = %q (%s)\n", indent, e.Name, e.Str, e.Variant)
		} else {
			fmt.Printf("%s%s = %q\n", indent, e.Name, e.Str)
		}
	case ebml.KindDate:
		fmt.Printf("%s%s = %s\n", indent, e.Name, e.Date)
	case ebml.KindBinary:
		if e.Block != nil {
			fmt.Printf("%s%s = SimpleBlock{track=%d, timecode=%d, keyframe=%v, lacing=%s, frames=%d}\n",
				indent, e.Name, e.Block.TrackNumber, e.Block.Timecode, e.Block.Keyframe, e.Block.Lacing, len(e.Block.Frames))
		} else {
			fmt.Printf("%s%s = %d bytes\n", indent, e.Name, len(e.Bytes))
		}
	default:
		fmt.Printf("%s%s\n", indent, e.Name)
	}
}
