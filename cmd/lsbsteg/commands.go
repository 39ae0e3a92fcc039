package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	steg "github.com/yyyoichi/lsb_steg"
	"github.com/yyyoichi/lsb_steg/internal/imageio"
	"github.com/yyyoichi/lsb_steg/internal/logging"
	"github.com/yyyoichi/lsb_steg/internal/pixel"
	"github.com/yyyoichi/lsb_steg/internal/quality"
)

var (
	inPath       string
	outPath      string
	message      string
	messageFile  string
	keepSpace    bool
	originalPath string
	modifiedPath string
)

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(capacityCmd)
	rootCmd.AddCommand(diffCmd)

	encodeCmd.Flags().StringVarP(&inPath, "in", "i", "", "Carrier image (png, bmp, tiff, webp, gif, jpeg)")
	encodeCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output image; lossless formats only (default <in>.steg.<output_format>)")
	encodeCmd.Flags().StringVarP(&message, "message", "m", "", "Message to hide")
	encodeCmd.Flags().StringVar(&messageFile, "message-file", "", "Read the message from a file")
	encodeCmd.Flags().BoolVar(&keepSpace, "keep-space", false, "Keep leading and trailing white space in the message")
	_ = encodeCmd.MarkFlagRequired("in")
	encodeCmd.MarkFlagsMutuallyExclusive("message", "message-file")
	encodeCmd.MarkFlagsOneRequired("message", "message-file")

	decodeCmd.Flags().StringVarP(&inPath, "in", "i", "", "Image to read")
	_ = decodeCmd.MarkFlagRequired("in")

	capacityCmd.Flags().StringVarP(&inPath, "in", "i", "", "Carrier image")
	_ = capacityCmd.MarkFlagRequired("in")

	diffCmd.Flags().StringVar(&originalPath, "original", "", "Carrier image")
	diffCmd.Flags().StringVar(&modifiedPath, "modified", "", "Encoded image")
	_ = diffCmd.MarkFlagRequired("original")
	_ = diffCmd.MarkFlagRequired("modified")
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Hide a message in an image",
	Long: `Hide a message in the least significant bits of an image.

The whole message plus its terminator must fit in width*height*3 bits, or
nothing is written. The output is always re-encoded losslessly.`,
	Example: `  # Hide a message and write carrier.steg.png
  lsbsteg encode --in carrier.png --message "meet at noon"

  # Read the message from a file and write a bmp
  lsbsteg encode --in carrier.jpg --message-file note.txt --out secret.bmp`,
	RunE: runEncode,
}

func runEncode(cmd *cobra.Command, args []string) error {
	text := message
	if messageFile != "" {
		data, err := os.ReadFile(messageFile)
		if err != nil {
			return fmt.Errorf("failed to read message file: %w", err)
		}
		text = string(data)
	}

	dst := outPath
	if dst == "" {
		format, err := cfg.Format()
		if err != nil {
			return err
		}
		dst = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".steg." + string(format)
	}
	// fail before doing any work when the sink would lose the payload
	format, err := imageio.FormatOf(dst)
	if err != nil {
		return err
	}

	src, err := load(inPath)
	if err != nil {
		return err
	}
	s, err := newSteg(cfg.ShouldTrimSpace() && !keepSpace)
	if err != nil {
		return err
	}
	encoded, err := s.Encode(cmd.Context(), src, text)
	if err != nil {
		if errors.Is(err, steg.ErrMessageTooLarge) {
			_, maxChars, _ := s.Capacity(src)
			return fmt.Errorf("%w (at most %d characters fit)", err, maxChars)
		}
		return err
	}
	if err := imageio.Save(dst, encoded); err != nil {
		return err
	}
	logging.LogImage("image written", dst, string(format), encoded.Bounds().Dx(), encoded.Bounds().Dy())

	fmt.Fprintf(cmd.OutOrStdout(), "Message encoded into %s\n", dst)
	return nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Read a hidden message from an image",
	Example: `  lsbsteg decode --in secret.png`,
	RunE:    runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	src, err := load(inPath)
	if err != nil {
		return err
	}
	s, err := newSteg(true)
	if err != nil {
		return err
	}
	text, found, err := s.Decode(cmd.Context(), src)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(cmd.OutOrStdout(), "No hidden message found")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

var capacityCmd = &cobra.Command{
	Use:     "capacity",
	Short:   "Show how much text an image can hold",
	Example: `  lsbsteg capacity --in carrier.png`,
	RunE:    runCapacity,
}

func runCapacity(cmd *cobra.Command, args []string) error {
	src, err := load(inPath)
	if err != nil {
		return err
	}
	s, err := newSteg(true)
	if err != nil {
		return err
	}
	bits, maxChars, err := s.Capacity(src)
	if err != nil {
		return err
	}
	b := src.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "Size:      %dx%d\n", b.Dx(), b.Dy())
	fmt.Fprintf(cmd.OutOrStdout(), "Capacity:  %d bits\n", bits)
	fmt.Fprintf(cmd.OutOrStdout(), "Max chars: %d\n", maxChars)
	return nil
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Measure how much encoding changed an image",
	Long: `Compare the RGB channels of a carrier image and its encoded copy and report
the number of changed values, the largest change, MSE and PSNR.`,
	Example: `  lsbsteg diff --original carrier.png --modified carrier.steg.png`,
	RunE:    runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	var grids [2]*pixel.Grid
	for i, path := range []string{originalPath, modifiedPath} {
		img, err := load(path)
		if err != nil {
			return err
		}
		if grids[i], err = pixel.FromImage(img); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	r, err := quality.Compare(grids[0], grids[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Changed:   %d / %d (%.2f%%)\n", r.Changed, r.Channels, r.ChangedRatio()*100)
	fmt.Fprintf(cmd.OutOrStdout(), "Max delta: %d\n", r.MaxDelta)
	fmt.Fprintf(cmd.OutOrStdout(), "MSE:       %.6f\n", r.MSE)
	fmt.Fprintf(cmd.OutOrStdout(), "PSNR:      %.2f dB\n", r.PSNR)
	return nil
}

func load(path string) (image.Image, error) {
	img, format, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	logging.LogImage("image loaded", path, format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

func newSteg(trimSpace bool) (*steg.Steg, error) {
	opts := []steg.Option{steg.WithLogger(logging.GetLogger().With(zap.String("component", "steg")))}
	if !trimSpace {
		opts = append(opts, steg.WithoutTrimSpace())
	}
	return steg.New(opts...)
}
