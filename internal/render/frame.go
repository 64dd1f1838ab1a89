// Package render implements an off-screen drawing surface. A Frame is
// painted in software and handed, one complete picture at a time, to a
// presenter that puts it on screen.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextSize selects one of the preloaded font faces.
type TextSize int

const (
	TextSmall TextSize = iota
	TextNormal
	TextLarge
)

// Anchor says which point of the text box Label.At refers to.
type Anchor int

const (
	// AnchorTopLeft places the top-left corner of the text at At.
	AnchorTopLeft Anchor = iota
	// AnchorCenter centres the text box on At.
	AnchorCenter
)

// Label is a line of text to draw.
type Label struct {
	Text   string
	Size   TextSize
	At     image.Point
	Color  color.Color
	Anchor Anchor
}

// Presenter receives each completed frame that differs from the previous one.
// The image is owned by the presenter and is never written again by the Frame.
type Presenter func(img image.Image) error

// ErrClosed is returned by Present after Close.
var ErrClosed = errors.New("render: frame closed")

type faceSpec struct {
	ttf  []byte
	size float64
}

var faceSpecs = map[TextSize]faceSpec{
	TextSmall:  {goregular.TTF, 18},
	TextNormal: {goregular.TTF, 26},
	TextLarge:  {gobold.TTF, 60},
}

// Frame is a fixed-size RGBA canvas with text support.
type Frame struct {
	buf     *image.RGBA
	faces   map[TextSize]font.Face
	present Presenter
	closed  bool

	// shown holds the pixels last accepted by present; nil before the first.
	shown []byte
}

// NewFrame allocates a width x height canvas. present may be nil, in which
// case Present only snapshots.
func NewFrame(width, height int, present Presenter) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	faces := make(map[TextSize]font.Face, len(faceSpecs))
	for size, spec := range faceSpecs {
		face, err := newFace(spec)
		if err != nil {
			for _, f := range faces {
				f.Close()
			}
			return nil, fmt.Errorf("load font face %d: %w", size, err)
		}
		faces[size] = face
	}
	return &Frame{
		buf:     image.NewRGBA(image.Rect(0, 0, width, height)),
		faces:   faces,
		present: present,
	}, nil
}

func newFace(spec faceSpec) (font.Face, error) {
	f, err := opentype.Parse(spec.ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    spec.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Clear fills the whole canvas with c.
func (f *Frame) Clear(c color.Color) {
	draw.Draw(f.buf, f.buf.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawImage composites img centred on center. Parts outside the canvas are clipped.
func (f *Frame) DrawImage(img image.Image, center image.Point) {
	b := img.Bounds()
	topLeft := center.Sub(image.Pt(b.Dx()/2, b.Dy()/2))
	dst := image.Rectangle{Min: topLeft, Max: topLeft.Add(b.Size())}
	draw.Draw(f.buf, dst, img, b.Min, draw.Over)
}

// DrawLabel renders l onto the canvas.
func (f *Frame) DrawLabel(l Label) {
	if l.Text == "" {
		return
	}
	face, ok := f.faces[l.Size]
	if !ok {
		face = f.faces[TextNormal]
	}
	c := l.Color
	if c == nil {
		c = color.White
	}
	origin := textOrigin(face, l)
	d := &font.Drawer{
		Dst:  f.buf,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(l.Text)
}

// textSize returns the width and line height text occupies in face.
func textSize(face font.Face, text string) image.Point {
	m := face.Metrics()
	return image.Pt(font.MeasureString(face, text).Ceil(), (m.Ascent + m.Descent).Ceil())
}

// textOrigin returns the baseline start point for l.
func textOrigin(face font.Face, l Label) image.Point {
	ascent := face.Metrics().Ascent.Ceil()
	switch l.Anchor {
	case AnchorCenter:
		size := textSize(face, l.Text)
		return image.Pt(l.At.X-size.X/2, l.At.Y-size.Y/2+ascent)
	default:
		return image.Pt(l.At.X, l.At.Y+ascent)
	}
}

// Snapshot returns a copy of the current canvas.
func (f *Frame) Snapshot() *image.RGBA {
	snap := image.NewRGBA(f.buf.Rect)
	copy(snap.Pix, f.buf.Pix)
	return snap
}

// Present hands a copy of the canvas to the presenter. A canvas identical
// to the last presented one is skipped, so an idle screen allocates nothing.
func (f *Frame) Present() error {
	if f.closed {
		return ErrClosed
	}
	if f.present == nil {
		return nil
	}
	if f.shown != nil && bytes.Equal(f.shown, f.buf.Pix) {
		return nil
	}
	if err := f.present(f.Snapshot()); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	if f.shown == nil {
		f.shown = make([]byte, len(f.buf.Pix))
	}
	copy(f.shown, f.buf.Pix)
	return nil
}

// Close releases the font faces. Further Present calls fail.
func (f *Frame) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	var errs []error
	for _, face := range f.faces {
		if err := face.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
