// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nanoplotter renders the diagnostic plots and wraps each
// rendered file in a Plot artifact that the report assembler can embed.
package nanoplotter

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Plot is a rendered plot artifact: the file it was saved to and the
// title shown above its embedding in the report.
type Plot struct {
	Path  string
	Title string
}

// Encode returns an HTML fragment embedding the rendered plot. Raster
// images are inlined as base64 data URIs and SVG as markup; other
// formats degrade to a link.
func (p Plot) Encode() (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p.Path)), ".")
	switch ext {
	case "png", "jpg", "jpeg", "tif", "tiff":
		b, err := os.ReadFile(p.Path)
		if err != nil {
			return "", err
		}
		mime := ext
		if ext == "jpg" {
			mime = "jpeg"
		} else if ext == "tif" {
			mime = "tiff"
		}
		return fmt.Sprintf(`<img src="data:image/%s;base64,%s">`,
			mime, base64.StdEncoding.EncodeToString(b)), nil
	case "svg":
		b, err := os.ReadFile(p.Path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprintf(`<a href="%s">%s</a>`, filepath.Base(p.Path), p.Title), nil
	}
}

// Formats the underlying render library can save to.
var validFormats = map[string]bool{
	"eps": true, "jpg": true, "jpeg": true, "pdf": true, "png": true,
	"svg": true, "tex": true, "tif": true, "tiff": true,
}

// CheckValidFormat validates a requested output image format.
func CheckValidFormat(format string) (string, error) {
	f := strings.ToLower(format)
	if !validFormats[f] {
		return "", fmt.Errorf("nanoplotter: unsupported output format %q", format)
	}
	return f, nil
}

// CheckValidColor resolves a plot color given as an X11/SVG color name
// or as a #rrggbb hex triplet.
func CheckValidColor(name string) (color.Color, error) {
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return color.RGBA{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: 0xff,
			}, nil
		}
	}
	return nil, fmt.Errorf("nanoplotter: invalid color %q, use a color name or #rrggbb", name)
}

// ListColors returns the accepted color names in sorted order.
func ListColors() []string {
	names := make([]string, 0, len(colornames.Map))
	for n := range colornames.Map {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
