// Package assets loads the die face images and the window icon.
//
// Two sources are supported: the SVG faces compiled into the binary, and a
// directory of raster images named after the face set and value
// (Q1.png..Q6.png, W1.png..W6.png) plus DIE.png for the icon. Every face is
// scaled to a square of the requested size at load time, so callers never
// touch file paths or scaling.
package assets

import (
	"fmt"
	"image"

	"dicesim/internal/dice"
)

const (
	// FaceSize is the edge length, in pixels, faces are scaled to.
	FaceSize = 150
	// IconSize is the edge length of the rasterized embedded icon.
	IconSize = 64

	iconName = "DIE"
)

// LoadError reports a missing or unreadable asset. It is fatal at startup.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load asset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Library holds every face of every face set plus the icon, ready to draw.
type Library struct {
	faces  map[dice.FaceSet][]image.Image
	icon   image.Image
	source string
}

// Face returns the image for value (1..6) in the given face set.
func (l *Library) Face(set dice.FaceSet, value int) (image.Image, error) {
	faces, ok := l.faces[set]
	if !ok {
		return nil, fmt.Errorf("unknown face set %q", set)
	}
	if value < 1 || value > len(faces) {
		return nil, fmt.Errorf("face value %d out of range for set %q", value, set)
	}
	return faces[value-1], nil
}

// Icon returns the window icon.
func (l *Library) Icon() image.Image { return l.icon }

// Source describes where the library was loaded from.
func (l *Library) Source() string { return l.source }

// Load reads the assets from dir, or the embedded faces when dir is empty.
func Load(dir string, size int) (*Library, error) {
	if dir == "" {
		return LoadEmbedded(size)
	}
	return LoadDir(dir, size)
}

func faceName(set dice.FaceSet, value int) string {
	return fmt.Sprintf("%s%d", set, value)
}

// loadAll builds a Library by calling load for every face and the icon.
func loadAll(source string, load func(name string, size int) (image.Image, error), size int, iconSize int) (*Library, error) {
	if size <= 0 {
		size = FaceSize
	}
	lib := &Library{
		faces:  make(map[dice.FaceSet][]image.Image, len(dice.FaceSets)),
		source: source,
	}
	for _, set := range dice.FaceSets {
		faces := make([]image.Image, dice.Faces)
		for v := 1; v <= dice.Faces; v++ {
			img, err := load(faceName(set, v), size)
			if err != nil {
				return nil, err
			}
			faces[v-1] = img
		}
		lib.faces[set] = faces
	}
	icon, err := load(iconName, iconSize)
	if err != nil {
		return nil, err
	}
	lib.icon = icon
	return lib, nil
}
