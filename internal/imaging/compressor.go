// Package imaging downscales and re-encodes uploaded photos before they are
// stored. Stored images live inside the collection snapshots as data URIs,
// so keeping them small is what keeps the storage quota workable.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"
	"sync"

	"golang.org/x/image/draw"
)

var (
	// ErrDecode means the input is not a decodable image.
	ErrDecode = errors.New("imaging: undecodable image")
	// ErrSlotBusy means a compression is already in flight for the slot.
	ErrSlotBusy = errors.New("imaging: compression already in flight for slot")
)

const (
	// maxDimension is the longest edge after downscaling.
	maxDimension = 1000
	// jpegQuality trades fidelity for snapshot size.
	jpegQuality = 50
)

// Compressor runs the decode → downscale → re-encode pipeline. At most one
// compression may be in flight per slot; a slot corresponds to one upload
// control, so a second selection while the first is still processing is
// rejected instead of racing it.
type Compressor struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCompressor() *Compressor {
	return &Compressor{inFlight: make(map[string]struct{})}
}

// CompressDataURI decodes a base64 data URI (or bare base64 payload),
// scales it down to at most maxDimension on its longest edge, and returns a
// JPEG data URI.
func (c *Compressor) CompressDataURI(ctx context.Context, slot, input string) (string, error) {
	if err := c.acquire(slot); err != nil {
		return "", err
	}
	defer c.release(slot)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := decodePayload(input)
	if err != nil {
		return "", err
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dst := downscale(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("imaging: encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (c *Compressor) acquire(slot string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[slot]; busy {
		return fmt.Errorf("%w: %s", ErrSlotBusy, slot)
	}
	c.inFlight[slot] = struct{}{}
	return nil
}

func (c *Compressor) release(slot string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, slot)
}

// downscale fits img inside a maxDimension square, preserving aspect ratio.
// Images already small enough pass through untouched.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDimension && h <= maxDimension {
		return img
	}
	if w > h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func decodePayload(input string) ([]byte, error) {
	payload := strings.TrimSpace(input)
	if payload == "" {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, fmt.Errorf("%w: malformed data uri", ErrDecode)
		}
		payload = payload[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return raw, nil
}
