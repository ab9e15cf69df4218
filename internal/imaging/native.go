// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	// Decoders for the formats browsers upload.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels caps the decoded size of a source image.
const DefaultMaxPixels = 40_000_000

// Native converts images in-process with golang.org/x/image. It needs no
// external tools and writes JPEG, since x/image can decode WebP but not
// encode it.
type Native struct {
	// MaxPixels rejects sources larger than this many pixels before they
	// are decoded. Zero means DefaultMaxPixels.
	MaxPixels int
}

// Extension implements Converter.
func (n *Native) Extension() string { return ".jpg" }

// ContentType implements Converter.
func (n *Native) ContentType() string { return "image/jpeg" }

// Convert decodes src, cover-crops it to the preset box and writes a JPEG
// to dst.
func (n *Native) Convert(ctx context.Context, src, dst string, p Preset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := n.decode(src)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	out := coverCrop(img, p.Width, p.Height)

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("imaging: create output: %w", err)
	}
	if err := jpeg.Encode(f, out, &jpeg.Options{Quality: p.Quality}); err != nil {
		f.Close()
		return fmt.Errorf("%w: encode: %v", ErrConversionFailed, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("imaging: close output: %w", err)
	}
	return nil
}

func (n *Native) decode(src string) (image.Image, error) {
	limit := n.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("imaging: open source: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: probe: %v", ErrConversionFailed, err)
	}
	if cfg.Width*cfg.Height > limit {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrConversionFailed, cfg.Width, cfg.Height, limit)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("imaging: rewind source: %w", err)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrConversionFailed, err)
	}
	return img, nil
}

// coverCrop scales img to fill a w x h box and keeps the centre, the same
// geometry as ImageMagick's "-resize WxH^ -gravity center -extent WxH".
func coverCrop(img image.Image, w, h int) *image.RGBA {
	b := img.Bounds()
	sw, sh := b.Dx(), b.Dy()

	// Largest centred region of the source with the target aspect ratio.
	crop := b
	if sw*h > sh*w {
		cw := sh * w / h
		x0 := b.Min.X + (sw-cw)/2
		crop = image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	} else {
		ch := sw * h / w
		y0 := b.Min.Y + (sh-ch)/2
		crop = image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Src, nil)
	return dst
}
