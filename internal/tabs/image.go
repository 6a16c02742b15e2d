package tabs

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalf draws the top pixel as foreground and the bottom as background.
const upperHalf = "▀"

// renderImage draws img with half-block cells, two pixel rows per line,
// scaled with nearest-neighbour sampling to fit width x height cells while
// keeping the aspect ratio.
func renderImage(img image.Image, width, height int) string {
	b := img.Bounds()
	if b.Empty() || width <= 0 || height <= 0 {
		return ""
	}

	cols, rows := fit(b.Dx(), b.Dy(), width, height*2)
	var sb strings.Builder
	for y := 0; y < rows; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top := sample(img, x, y, cols, rows)
			style := lipgloss.NewStyle().Foreground(top)
			if y+1 < rows {
				style = style.Background(sample(img, x, y+1, cols, rows))
			}
			sb.WriteString(style.Render(upperHalf))
		}
	}
	return sb.String()
}

// fit scales w x h down to fit maxW x maxH.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(int(float64(w)*scale), 1), max(int(float64(h)*scale), 1)
}

func sample(img image.Image, x, y, cols, rows int) lipgloss.Color {
	b := img.Bounds()
	px := b.Min.X + x*b.Dx()/cols
	py := b.Min.Y + y*b.Dy()/rows
	r, g, bl, _ := img.At(px, py).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8))
}
