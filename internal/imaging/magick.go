// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultMagickBinary is the ImageMagick 6 entry point.
const DefaultMagickBinary = "convert"

// ToolError reports a non-zero exit of the external converter.
type ToolError struct {
	Binary   string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("imaging: %s exited with code %d", e.Binary, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Is makes errors.Is(err, ErrConversionFailed) true for tool failures.
func (e *ToolError) Is(target error) bool {
	return target == ErrConversionFailed
}

// Magick converts images by running ImageMagick. Output is WebP.
type Magick struct {
	Binary string
}

// Extension implements Converter.
func (m *Magick) Extension() string { return ".webp" }

// ContentType implements Converter.
func (m *Magick) ContentType() string { return "image/webp" }

func (m *Magick) binary() string {
	if m.Binary == "" {
		return DefaultMagickBinary
	}
	return m.Binary
}

// magickArgs builds the argument list for a cover crop of src into dst.
func magickArgs(src, dst string, p Preset) []string {
	box := strconv.Itoa(p.Width) + "x" + strconv.Itoa(p.Height)
	return []string{
		src,
		"-quality", strconv.Itoa(p.Quality),
		"-resize", box + "^",
		"-gravity", "center",
		"-extent", box,
		dst,
	}
}

// Convert runs the tool once and waits for it. Cancelling ctx kills the
// process.
func (m *Magick) Convert(ctx context.Context, src, dst string, p Preset) error {
	bin := m.binary()
	cmd := exec.CommandContext(ctx, bin, magickArgs(src, dst, p)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		toolErr := &ToolError{
			Binary:   bin,
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr.String()),
		}
		slog.Error("image conversion failed",
			"binary", bin,
			"preset", p.Name,
			"exit_code", toolErr.ExitCode,
			"stderr", toolErr.Stderr,
		)
		return toolErr
	}
	return fmt.Errorf("%w: start %s: %v", ErrConversionFailed, bin, err)
}
