package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA data truncated")

// DecodeTGA decodes an uncompressed or RLE compressed 24/32-bit true-color
// TGA image.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}
	if tgaHeaderSize+idLength > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		data:        data[tgaHeaderSize+idLength:],
		stride:      bpp / 8,
		width:       width,
		height:      height,
		topToBottom: topToBottom,
	}
	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw(width * height)
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

// tgaDecoder writes pixels in file order, which is bottom-up unless the
// descriptor says otherwise.
type tgaDecoder struct {
	img         *image.NRGBA
	data        []byte
	pos         int
	stride      int
	width       int
	height      int
	next        int
	topToBottom bool
}

// pixel reads one BGR(A) pixel.
func (d *tgaDecoder) pixel() (color.NRGBA, error) {
	if d.pos+d.stride > len(d.data) {
		return color.NRGBA{}, errTGATruncated
	}
	p := d.data[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel; it reports false once the image is full.
func (d *tgaDecoder) put(c color.NRGBA) bool {
	if d.next >= d.width*d.height {
		return false
	}
	x, y := d.next%d.width, d.next/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
	d.next++
	return true
}

func (d *tgaDecoder) raw(n int) error {
	for range n {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		if !d.put(c) {
			return nil
		}
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	for d.next < d.width*d.height {
		if d.pos >= len(d.data) {
			return errTGATruncated
		}
		header := d.data[d.pos]
		d.pos++
		count := int(header&0x7F) + 1

		if header&0x80 == 0 {
			if err := d.raw(count); err != nil {
				return err
			}
			continue
		}
		c, err := d.pixel()
		if err != nil {
			return err
		}
		for range count {
			if !d.put(c) {
				break
			}
		}
	}
	return nil
}
