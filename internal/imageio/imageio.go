// Package imageio reads and writes the text raster format shared by the
// edge-detection and segmentation tools.
//
// The format is a header line "H W C" followed by H rows of W
// whitespace-separated intensities:
//
//	H W C
//	p(0,0) p(0,1) ... p(0,W-1)
//	...
//
// Only C = 1 (grayscale) is supported. Intensities outside [0, 255] are
// clamped on read, never rejected; everything else malformed is fatal.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gridcv/gridcv/internal/grid"
)

// Common errors.
var (
	ErrMissingHeader = errors.New("missing header line")
	ErrBadHeader     = errors.New("header must be three non-negative integers: H W C")
	ErrChannelCount  = errors.New("unsupported channel count (grayscale C=1 required)")
	ErrTruncated     = errors.New("truncated pixel stream")
	ErrTooLarge      = errors.New("image dimensions exceed addressable pixel count")
)

// ParseError reports where in the token stream a read failed.
type ParseError struct {
	Pos   int    // 0-based token index within the pixel stream, -1 for header errors
	Token string // Offending token, empty when the stream ended early
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("token %d %q: %v", e.Pos, e.Token, e.Err)
	}
	if e.Pos >= 0 {
		return fmt.Sprintf("token %d: %v", e.Pos, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is checks.
func (e *ParseError) Unwrap() error { return e.Err }

// Read parses a grayscale raster from r.
func Read(r io.Reader) (*grid.Grid[int], error) {
	br := bufio.NewReader(r)

	header, err := readHeaderLine(br)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return nil, &ParseError{Pos: -1, Err: ErrBadHeader}
	}
	dims := make([]int, 3)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return nil, &ParseError{Pos: -1, Token: f, Err: ErrBadHeader}
		}
		dims[i] = v
	}
	h, w, c := dims[0], dims[1], dims[2]
	if c != 1 {
		return nil, fmt.Errorf("%w: got C=%d", ErrChannelCount, c)
	}
	// H·W must stay allocatable; an absurd but well-formed header is a
	// fatal input error, not a runtime panic.
	if w > 0 && h > math.MaxInt/w {
		return nil, &ParseError{Pos: -1, Err: ErrTooLarge}
	}

	g := grid.New[int](h, w)
	data := g.Data()

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	for i := range data {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("reading pixels: %w", err)
			}
			return nil, &ParseError{Pos: i, Err: ErrTruncated}
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, &ParseError{Pos: i, Token: sc.Text(), Err: errors.New("non-integer pixel value")}
		}
		data[i] = clamp255(v)
	}
	return g, nil
}

func readHeaderLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF && strings.TrimSpace(line) != "" {
		return line, nil
	}
	if err != nil {
		return "", &ParseError{Pos: -1, Err: ErrMissingHeader}
	}
	if strings.TrimSpace(line) == "" {
		return "", &ParseError{Pos: -1, Err: ErrMissingHeader}
	}
	return line, nil
}

// ReadFile parses a grayscale raster from the file at path.
func ReadFile(path string) (*grid.Grid[int], error) {
	//nolint:gosec // G304: path comes from user input, expected for a CLI tool
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Write serializes g to w in the text format with C = 1.
func Write(w io.Writer, g *grid.Grid[int]) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d 1\n", g.H(), g.W()); err != nil {
		return err
	}
	data := g.Data()
	for y := 0; y < g.H(); y++ {
		row := data[y*g.W() : (y+1)*g.W()]
		for x, v := range row {
			if x > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.Itoa(v)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile serializes g to path. The file is written to a temporary
// sibling and renamed into place, so a failed run never leaves a partial
// output file behind.
func WriteFile(path string, g *grid.Grid[int]) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, g); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize output: %w", err)
	}
	return nil
}

func clamp255(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
