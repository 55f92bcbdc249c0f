// ticket/generator.go
package ticket

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
)

// Fixed layout on the template: the name sits centered in a 694px-wide band
// at y=350, the QR code at (247, 517). Changing the template artwork means
// revisiting these.
const (
	nameBandWidth  = 694
	nameBandHeight = 80
	nameBandTop    = 350
	nameFontSize   = 70

	qrSize = 200
	qrLeft = 247
	qrTop  = 517
)

// Generator composites a registrant's QR code and name onto the ticket
// template and encodes the result as PNG.
type Generator struct {
	template image.Image
	fontPath string
}

// NewGenerator loads the template PNG from disk. fontPath may be empty, in
// which case the rendering falls back to the built-in bitmap face (only
// useful in tests).
func NewGenerator(templatePath, fontPath string) (*Generator, error) {
	f, err := os.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket template image at %s: %w", templatePath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ticket template image: %w", err)
	}
	return &Generator{template: img, fontPath: fontPath}, nil
}

// NewGeneratorFromImage builds a Generator around an already-decoded
// template.
func NewGeneratorFromImage(template image.Image, fontPath string) *Generator {
	return &Generator{template: template, fontPath: fontPath}
}

// Render produces the final ticket PNG for one registrant. The uid is
// QR-encoded for venue check-in; the name is drawn uppercased.
func (g *Generator) Render(uid, name string) ([]byte, error) {
	if uid == "" || name == "" {
		return nil, fmt.Errorf("uid and name are required to render a ticket")
	}

	qr, err := qrcode.New(uid, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	qr.DisableBorder = false
	qrImg := qr.Image(qrSize)

	dc := gg.NewContextForImage(g.template)

	if g.fontPath != "" {
		if err := dc.LoadFontFace(g.fontPath, nameFontSize); err != nil {
			return nil, fmt.Errorf("failed to load ticket font at %s: %w", g.fontPath, err)
		}
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(
		strings.ToUpper(name),
		nameBandWidth/2,
		nameBandTop+nameBandHeight/2,
		0.5, 0.5,
	)

	dc.DrawImage(qrImg, qrLeft, qrTop)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode ticket PNG: %w", err)
	}
	return buf.Bytes(), nil
}
