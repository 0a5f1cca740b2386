// Package texture loads image files into model textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/pkg/color"
)

// Decode decodes PNG, BMP or TGA data, chosen by the file extension ext.
func Decode(data []byte, ext string) (image.Image, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return png.Decode(bytes.NewReader(data))
	case "bmp":
		return bmp.Decode(bytes.NewReader(data))
	case "tga":
		return DecodeTGA(data)
	}
	return nil, fmt.Errorf("unsupported texture format %q", ext)
}

// Load reads an image file into a texture.
func Load(path string) (*model.ImageTexture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return model.NewImageTexture(img), nil
}

// LoadWithKey reads an image file into a texture with pixels of color key
// made transparent.
func LoadWithKey(path string, key color.ARGB) (*model.ImageTexture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return model.NewImageTexture(ColorKey(img, key)), nil
}

// ColorKey returns a copy of img with every pixel of color key (alpha
// ignored) made transparent black, so the alpha test can drop it.
func ColorKey(img image.Image, key color.ARGB) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)

	kr, kg, kb, _ := key.Unpack()
	for i := 0; i+3 < len(out.Pix); i += 4 {
		if out.Pix[i] == kr && out.Pix[i+1] == kg && out.Pix[i+2] == kb {
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = 0, 0, 0, 0
		}
	}
	return out
}
