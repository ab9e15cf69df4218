// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging turns uploaded pictures into fixed-size catalog images.
// Every preset is a cover crop: the source is scaled until it fills the
// target box, then the centre is cut out, so the output always has the
// exact preset dimensions. Two converters are available: Magick shells out
// to ImageMagick, Native does the work in-process.
package imaging

import (
	"context"
	"errors"
	"fmt"
)

// ErrConversionFailed is matched by every error a Converter returns when
// the image could not be produced.
var ErrConversionFailed = errors.New("imaging: conversion failed")

// Preset describes one output size.
type Preset struct {
	Name    string // e.g., "cover", "product"
	Width   int    // Output width in pixels
	Height  int    // Output height in pixels
	Quality int    // Encoder quality 1-100
}

// CoverPreset is used for book and audiobook covers.
var CoverPreset = Preset{Name: "cover", Width: 400, Height: 520, Quality: 80}

// ProductPreset is used for square shop product images.
var ProductPreset = Preset{Name: "product", Width: 300, Height: 300, Quality: 80}

// PresetByName looks up a preset by its name.
func PresetByName(name string) (Preset, error) {
	switch name {
	case CoverPreset.Name:
		return CoverPreset, nil
	case ProductPreset.Name:
		return ProductPreset, nil
	}
	return Preset{}, fmt.Errorf("imaging: unknown preset %q", name)
}

// Converter reads the image at src and writes the converted image to dst.
type Converter interface {
	Convert(ctx context.Context, src, dst string, p Preset) error
	// Extension is the file extension of converted images, with the dot.
	Extension() string
	// ContentType is the MIME type of converted images.
	ContentType() string
}

// New returns the converter registered under name: "magick" or "native".
// binary is the ImageMagick executable and is ignored by the native
// converter.
func New(name, binary string) (Converter, error) {
	switch name {
	case "magick":
		return &Magick{Binary: binary}, nil
	case "native":
		return &Native{}, nil
	}
	return nil, fmt.Errorf("imaging: unknown converter %q", name)
}
