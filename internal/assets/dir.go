package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

var extensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// LoadDir loads the faces and icon from raster images in dir. Faces are
// scaled to size x size; the icon keeps its own dimensions.
func LoadDir(dir string, size int) (*Library, error) {
	return loadAll(dir, func(name string, sz int) (image.Image, error) {
		return loadRaster(dir, name, sz)
	}, size, 0)
}

// findAsset returns the first existing file for name with a supported extension.
func findAsset(dir, name string) (string, error) {
	for _, ext := range extensions {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", &LoadError{Path: p, Err: err}
		}
	}
	return "", &LoadError{Path: filepath.Join(dir, name+".png"), Err: fs.ErrNotExist}
}

func loadRaster(dir, name string, size int) (image.Image, error) {
	p, err := findAsset(dir, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: p, Err: fmt.Errorf("decode: %w", err)}
	}
	if size <= 0 {
		return img, nil
	}
	return scale(img, size), nil
}

// scale resamples img into a size x size RGBA image.
func scale(img image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
