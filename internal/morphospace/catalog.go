package morphospace

import "math"

// NamedPoint binds an identifier to a coordinate.
type NamedPoint struct {
	ID         string
	Coordinate Coordinate
}

// Catalog is an immutable, ordered set of named points. Iteration order is
// declaration order and is the nearest-neighbour tie-break.
type Catalog struct {
	name   string
	points []NamedPoint
	index  map[string]int
}

// NewCatalog builds a catalog. Empty and duplicate ids are rejected.
func NewCatalog(name string, points ...NamedPoint) (*Catalog, error) {
	c := &Catalog{
		name:   name,
		points: make([]NamedPoint, 0, len(points)),
		index:  make(map[string]int, len(points)),
	}
	for _, p := range points {
		if p.ID == "" {
			return nil, Validationf("new catalog", "%s: empty id", name)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, Validationf("new catalog", "%s: duplicate id %q", name, p.ID)
		}
		c.index[p.ID] = len(c.points)
		c.points = append(c.points, p)
	}
	return c, nil
}

// Name is the catalog's display name, used in error messages.
func (c *Catalog) Name() string { return c.name }

// Len returns the number of points.
func (c *Catalog) Len() int { return len(c.points) }

// IDs returns the ids in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.points))
	for i, p := range c.points {
		ids[i] = p.ID
	}
	return ids
}

// Points returns a copy of the points in declaration order.
func (c *Catalog) Points() []NamedPoint {
	return append([]NamedPoint(nil), c.points...)
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Lookup returns the coordinate for id, or a NotFound error listing the
// catalog's ids.
func (c *Catalog) Lookup(id string) (Coordinate, error) {
	i, ok := c.index[id]
	if !ok {
		return Coordinate{}, NotFound("lookup", c.name, id, c.IDs())
	}
	return c.points[i].Coordinate, nil
}

// Distance is the Euclidean norm of a-b over all axes.
func Distance(a, b Coordinate) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Match is a nearest-neighbour result.
type Match struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

// Nearest scans c in declaration order and returns the closest point.
// A strictly smaller distance is required to replace the current best, so
// the earliest declared point wins ties.
func Nearest(p Coordinate, c *Catalog) (Match, error) {
	if c == nil || len(c.points) == 0 {
		return Match{}, Validationf("nearest", "catalog is empty")
	}
	best := Match{Distance: math.Inf(1)}
	for _, np := range c.points {
		if d := Distance(p, np.Coordinate); d < best.Distance {
			best = Match{ID: np.ID, Distance: d}
		}
	}
	return best, nil
}

// Comparison breaks the difference b-a down per axis.
type Comparison struct {
	Distance     float64
	Diff         Coordinate
	AbsDiff      Coordinate
	MaxAbsDiff   float64
	DominantAxis Axis
}

// Compare returns the distance between a and b with per-axis detail.
// DominantAxis is the first axis, in axis order, holding the largest
// absolute difference.
func Compare(a, b Coordinate) Comparison {
	cmp := Comparison{Distance: Distance(a, b)}
	for i := range a {
		d := b[i] - a[i]
		cmp.Diff[i] = d
		cmp.AbsDiff[i] = math.Abs(d)
		if i == 0 || cmp.AbsDiff[i] > cmp.MaxAbsDiff {
			cmp.MaxAbsDiff = cmp.AbsDiff[i]
			cmp.DominantAxis = Axis(i)
		}
	}
	return cmp
}
