package service

import (
	"math/rand"
	"sync"
)

// Starfield geometry bounds and tuning. One star per starDensity square
// pixels, drifting slowly with wrap-around at the edges.
const (
	minFieldDim = 16
	maxFieldDim = 4096
	starDensity = 3000
	maxRadius   = 1.5
	maxDrift    = 0.2
)

// Star is one point of the decorative background.
type Star struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"radius"`
	Opacity float64 `json:"opacity"`

	vx, vy float64
}

// Frame is a renderable snapshot of the field.
type Frame struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Stars  []Star `json:"stars"`
}

// Field is one animation instance. Each viewer gets its own; the field
// dies with the stream that created it.
type Field struct {
	mu     sync.Mutex
	width  float64
	height float64
	stars  []Star
}

type StarfieldService struct{}

func NewStarfieldService() *StarfieldService { return &StarfieldService{} }

var _ Starfield = (*StarfieldService)(nil)

// NewField seeds a field sized to the viewer's viewport, clamped to
// sane bounds.
func (s *StarfieldService) NewField(width, height int) *Field {
	width = clampDim(width)
	height = clampDim(height)

	f := &Field{width: float64(width), height: float64(height)}
	n := width * height / starDensity
	f.stars = make([]Star, 0, n)
	for i := 0; i < n; i++ {
		f.stars = append(f.stars, Star{
			X:       rand.Float64() * f.width,
			Y:       rand.Float64() * f.height,
			Radius:  rand.Float64() * maxRadius,
			Opacity: rand.Float64()*0.5 + 0.5,
			vx:      (rand.Float64() - 0.5) * 2 * maxDrift,
			vy:      (rand.Float64() - 0.5) * 2 * maxDrift,
		})
	}
	return f
}

// Advance moves every star one step, wrapping at the edges, and returns
// the resulting frame.
func (f *Field) Advance() Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.stars {
		st := &f.stars[i]
		st.X += st.vx
		st.Y += st.vy
		if st.X < 0 {
			st.X = f.width
		} else if st.X > f.width {
			st.X = 0
		}
		if st.Y < 0 {
			st.Y = f.height
		} else if st.Y > f.height {
			st.Y = 0
		}
	}
	return Frame{
		Width:  int(f.width),
		Height: int(f.height),
		Stars:  append([]Star(nil), f.stars...),
	}
}

func clampDim(v int) int {
	if v < minFieldDim {
		return minFieldDim
	}
	if v > maxFieldDim {
		return maxFieldDim
	}
	return v
}
