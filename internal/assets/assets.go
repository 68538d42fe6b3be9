// Package assets serves the logo variants and the stylesheet. The logos are
// derived once from a single embedded source image.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"golang.org/x/image/draw"
)

//go:embed static/logo.png static/app.css
var files embed.FS

const (
	// LogoHeight is the pixel height of the full logo variant. The shell
	// shows it at 32px, so this is 2x for dense screens.
	LogoHeight = 64
	// IconSize is the side of the square icon variant.
	IconSize = 64

	cacheControl = "public, max-age=31536000, immutable"
)

// Asset is an encoded file ready to serve.
type Asset struct {
	ContentType string
	Body        []byte
}

// Set holds every asset the shell references.
type Set struct {
	Logo  Asset
	Icon  Asset
	Style Asset

	modTime time.Time
}

// Load decodes the embedded logo and builds its variants.
func Load() (*Set, error) {
	src, err := files.ReadFile("static/logo.png")
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	style, err := files.ReadFile("static/app.css")
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	return Build(src, style)
}

// Build derives the logo variants from an encoded PNG.
func Build(logoPNG, style []byte) (*Set, error) {
	img, err := png.Decode(bytes.NewReader(logoPNG))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	b := img.Bounds()
	if b.Dx() < b.Dy() {
		return nil, fmt.Errorf("logo must be at least as wide as it is tall, got %dx%d", b.Dx(), b.Dy())
	}

	full, err := encodePNG(scaleToHeight(img, LogoHeight))
	if err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}

	// The mark is the leftmost square of the logo.
	mark := image.Rect(b.Min.X, b.Min.Y, b.Min.X+b.Dy(), b.Max.Y)
	icon, err := encodePNG(scaleRect(img, mark, IconSize, IconSize))
	if err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}

	return &Set{
		Logo:    Asset{ContentType: "image/png", Body: full},
		Icon:    Asset{ContentType: "image/png", Body: icon},
		Style:   Asset{ContentType: "text/css; charset=utf-8", Body: style},
		modTime: time.Now().UTC().Truncate(time.Second),
	}, nil
}

func scaleToHeight(img image.Image, height int) image.Image {
	b := img.Bounds()
	width := b.Dx() * height / b.Dy()
	if width < 1 {
		width = 1
	}
	return scaleRect(img, b, width, height)
}

func scaleRect(img image.Image, src image.Rectangle, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Handler serves one asset with long-lived cache headers.
func (s *Set) Handler(a Asset) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", a.ContentType)
		w.Header().Set("Cache-Control", cacheControl)
		http.ServeContent(w, r, "", s.modTime, bytes.NewReader(a.Body))
	}
}
