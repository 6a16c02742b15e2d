package documents

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/image/bmp"
)

// PlaceholderText is the content of a newly created text document.
const PlaceholderText = "example content"

// Size of a newly created image document.
const (
	BlankWidth  = 64
	BlankHeight = 32
)

// DecodeFunc decodes an image from r.
type DecodeFunc func(r io.Reader) (image.Image, error)

// DecodeImage decodes BMP, PNG, JPEG and GIF images.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// LoadText returns a load function reading UTF-8 text files from fs.
func LoadText(fs afero.Fs) func(string) (string, error) {
	return func(path string) (string, error) {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", err
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s", ErrNotText, path)
		}
		return string(data), nil
	}
}

// LoadImage returns a load function decoding image files from fs.
func LoadImage(fs afero.Fs, decode DecodeFunc) func(string) (image.Image, error) {
	if decode == nil {
		decode = DecodeImage
	}
	return func(path string) (image.Image, error) {
		f, err := fs.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, err := decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return img, nil
	}
}

// BlankCanvas returns the white image new image documents start with.
func BlankCanvas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, BlankWidth, BlankHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

func encodeBMP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
