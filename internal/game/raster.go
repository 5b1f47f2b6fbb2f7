package game

import "image/color"

// Raster is an RGBA point buffer uploaded to the screen once per frame.
type Raster struct {
	Pix    []byte
	width  int
	height int
}

// NewRaster allocates a width x height buffer.
func NewRaster(width, height int) *Raster {
	r := &Raster{}
	r.Resize(width, height)
	return r
}

// Resize reallocates the buffer when the size changes.
func (r *Raster) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == r.width && height == r.height && r.Pix != nil {
		return
	}
	r.width, r.height = width, height
	r.Pix = make([]byte, 4*width*height)
}

func (r *Raster) Size() (int, int) { return r.width, r.height }

// Clear fills the buffer with c.
func (r *Raster) Clear(c color.RGBA) {
	for i := 0; i < len(r.Pix); i += 4 {
		r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Plot draws a size x size point centred on (x, y); pixels off-screen are
// skipped.
func (r *Raster) Plot(x, y float64, size int, c color.RGBA) {
	if size < 1 {
		size = 1
	}
	x0 := int(x) - size/2
	y0 := int(y) - size/2
	for py := y0; py < y0+size; py++ {
		if py < 0 || py >= r.height {
			continue
		}
		for px := x0; px < x0+size; px++ {
			if px < 0 || px >= r.width {
				continue
			}
			i := 4 * (py*r.width + px)
			r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// At returns the color at (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	i := 4 * (y*r.width + x)
	return color.RGBA{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2], A: r.Pix[i+3]}
}
