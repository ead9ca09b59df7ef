package gfx

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultIconSizes are the edge lengths generated when a single icon is
// configured.
var DefaultIconSizes = []int{16, 32}

// LoadIcons decodes PNG, BMP or WebP files, ordered from low to high
// resolution.
func LoadIcons(paths ...string) ([]image.Image, error) {
	icons := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		icon, err := loadIcon(path)
		if err != nil {
			return nil, err
		}
		icons = append(icons, icon)
	}
	if len(icons) == 1 {
		return IconSet(icons[0], DefaultIconSizes...), nil
	}
	return icons, nil
}

func loadIcon(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load icon: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return img, nil
}

// IconSet scales src to each square size.
func IconSet(src image.Image, sizes ...int) []image.Image {
	out := make([]image.Image, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, ScaleIcon(src, size))
	}
	return out
}

func ScaleIcon(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
