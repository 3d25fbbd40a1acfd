// Package bigchar renders particle symbols as block art using half-block
// characters.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	mu    sync.Mutex
	face  font.Face = basicfont.Face7x13
	cache           = make(map[string]string)
)

// LoadFont switches rendering to the TrueType or OpenType font at path.
// Collections use their first font. The built-in 7x13 bitmap face has no
// Greek glyphs, so symbols like γ and Λ need a loaded font to show.
func LoadFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading font: %w", err)
	}
	opts := &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull}

	var f *opentype.Font
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		f, err = coll.Font(0)
		if err != nil {
			return fmt.Errorf("reading font collection: %w", err)
		}
	} else if f, err = opentype.Parse(data); err != nil {
		return fmt.Errorf("parsing font: %w", err)
	}

	nf, err := opentype.NewFace(f, opts)
	if err != nil {
		return fmt.Errorf("creating face: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	face = nf
	cache = make(map[string]string)
	return nil
}

// Render draws symbol into a cols x rows cell block. Each cell carries two
// vertical pixels.
func Render(symbol string, cols, rows int) string {
	mu.Lock()
	defer mu.Unlock()
	return render(face, symbol, cols, rows)
}

// Cached is Render with memoisation.
func Cached(symbol string, cols, rows int) string {
	mu.Lock()
	defer mu.Unlock()
	key := fmt.Sprintf("%s/%dx%d", symbol, cols, rows)
	if out, ok := cache[key]; ok {
		return out
	}
	out := render(face, symbol, cols, rows)
	cache[key] = out
	return out
}

func render(f font.Face, symbol string, cols, rows int) string {
	if symbol == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	metrics := f.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	width := font.MeasureString(f, symbol).Ceil()

	padding := 1
	src := image.NewGray(image.Rect(0, 0, width+padding*2, height+padding*2))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(padding, padding+ascent),
	}
	d.DrawString(symbol)

	return toHalfBlocks(scaleDown(src, cols, rows*2), cols, rows)
}

// scaleDown resamples a grayscale image by area averaging. Target pixels
// that map to less than one source pixel take the nearest source pixel.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(sw) / float64(dstWidth)
	yRatio := float64(sh) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sy1 := int(float64(dy) * yRatio)
			sx2 := max(int(float64(dx+1)*xRatio), sx1+1)
			sy2 := max(int(float64(dy+1)*yRatio), sy1+1)
			sx2, sy2 = min(sx2, sw), min(sy2, sh)

			sum, count := 0, 0
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}
	return dst
}

// threshold is the brightness above which a pixel counts as lit.
const threshold = 60

func toHalfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return 0
	}
	return img.GrayAt(x, y).Y
}
