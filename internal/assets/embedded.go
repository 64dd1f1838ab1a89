package assets

import (
	"bytes"
	"embed"
	"image"
	"image/color"
	"image/draw"
	"path"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed faces/*.svg
var faceFiles embed.FS

// LoadEmbedded rasterizes the built-in SVG faces at size x size pixels.
func LoadEmbedded(size int) (*Library, error) {
	return loadAll("embedded", loadEmbeddedSVG, size, IconSize)
}

func loadEmbeddedSVG(name string, size int) (image.Image, error) {
	p := path.Join("faces", name+".svg")
	data, err := faceFiles.ReadFile(p)
	if err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}
	img, err := rasterizeSVG(data, size)
	if err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}
	return img, nil
}

func rasterizeSVG(data []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
