package ticket

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testTemplate() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 694, 750))
	for y := 0; y < 750; y++ {
		for x := 0; x < 694; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func TestRenderProducesPNGMatchingTemplateSize(t *testing.T) {
	g := NewGeneratorFromImage(testTemplate(), "")

	out, err := g.Render("abc123", "Jane Doe")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 694 || b.Dy() != 750 {
		t.Fatalf("output size %dx%d, want 694x750", b.Dx(), b.Dy())
	}
}

func TestRenderCompositesQRRegion(t *testing.T) {
	g := NewGeneratorFromImage(testTemplate(), "")

	out, err := g.Render("abc123", "Jane")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The QR region must contain both light and dark pixels; the dark-grey
	// template alone has neither.
	var light, dark bool
	for y := qrTop; y < qrTop+qrSize && y < decoded.Bounds().Max.Y; y += 3 {
		for x := qrLeft; x < qrLeft+qrSize && x < decoded.Bounds().Max.X; x += 3 {
			r, gCh, bCh, _ := decoded.At(x, y).RGBA()
			lum := (r + gCh + bCh) / 3
			if lum > 0xe000 {
				light = true
			}
			if lum < 0x2000 {
				dark = true
			}
		}
	}
	if !light || !dark {
		t.Fatalf("QR region looks uncomposited (light=%v dark=%v)", light, dark)
	}
}

func TestRenderDifferentUIDsDiffer(t *testing.T) {
	g := NewGeneratorFromImage(testTemplate(), "")

	a, err := g.Render("uid-a", "Jane")
	if err != nil {
		t.Fatalf("render a: %v", err)
	}
	b, err := g.Render("uid-b", "Jane")
	if err != nil {
		t.Fatalf("render b: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("different uids must produce different QR payloads")
	}
}

func TestRenderRequiresUIDAndName(t *testing.T) {
	g := NewGeneratorFromImage(testTemplate(), "")

	if _, err := g.Render("", "Jane"); err == nil {
		t.Fatal("expected an error for a missing uid")
	}
	if _, err := g.Render("abc123", ""); err == nil {
		t.Fatal("expected an error for a missing name")
	}
}

func TestNewGeneratorMissingTemplate(t *testing.T) {
	if _, err := NewGenerator("/nonexistent/template.png", ""); err == nil {
		t.Fatal("expected an error for a missing template file")
	}
}
