package selection

// Instance footprints on the canvas, in canvas units.
const (
	CompositeSize  = 96.0
	ElementarySize = 64.0
)

// Rect is a drag rectangle with non-negative width and height.
type Rect struct {
	X, Y, W, H float64
}

// Normalize builds a Rect from two drag corners in any order.
func Normalize(x1, y1, x2, y2 float64) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Box returns the rectangle as an axis-aligned box.
func (r Rect) Box() Box {
	return Box{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
}

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsFor returns the footprint of an instance at (x, y).
func BoundsFor(x, y float64, composite bool) Box {
	size := ElementarySize
	if composite {
		size = CompositeSize
	}
	return Box{MinX: x, MinY: y, MaxX: x + size, MaxY: y + size}
}

// Overlaps uses open intervals on both axes: boxes that only touch along
// an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX &&
		b.MinY < o.MaxY && b.MaxY > o.MinY
}

// Candidate is anything that can be box-selected.
type Candidate struct {
	ID        string
	X, Y      float64
	Composite bool
}

// Within returns the ids of the candidates whose footprint overlaps r,
// in candidate order.
func Within(r Rect, candidates []Candidate) []string {
	box := r.Box()
	var ids []string
	for _, c := range candidates {
		if BoundsFor(c.X, c.Y, c.Composite).Overlaps(box) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
