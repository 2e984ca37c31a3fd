// Package quadtree builds a recursive spatial index over CH graph nodes and
// derives a well-separated pair decomposition (WSPD) from it, the source of
// geometrically diverse source/target pairs for path generation.
package quadtree

import (
	"math"
	"sort"

	"github.com/bernlu/chhitset/pkg/chgraph"
)

// Point is one graph node as seen by the quad-tree: its id, its geographic
// position, and its CH level (used to pick a representative point per
// cell and to order points within a leaf).
type Point struct {
	Node  chgraph.NodeId
	Lat   float64
	Lon   float64
	Level uint32
}

type entry struct {
	point Point
	x, y  float64
}

// QuadTree is one cell of the recursively-split index. The root covers the
// full [0,1]x[0,1] projected-and-scaled bounding box of the input points;
// a cell holds points directly only if it is a leaf (no children).
type QuadTree struct {
	children [4]*QuadTree // a, b, c, d: topleft, topright, bottomleft, bottomright
	XMin     float64
	XMax     float64
	YMin     float64
	YMax     float64
	data     []Point
	scaler   MinMaxScaler
	id       string // built bottom-up: child letter prepended to parent's id
}

// New builds a quad-tree over points, splitting cells until each contains
// at most one point or maxDepth is reached.
func New(points []Point, maxDepth int) *QuadTree {
	entries := make([]entry, len(points))
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		x, y := Mercator(p.Lat, p.Lon)
		entries[i] = entry{point: p, x: x, y: y}
		xs[i], ys[i] = x, y
	}
	scaler := NewMinMaxScaler(xs, ys)
	for i := range entries {
		entries[i].x, entries[i].y = scaler.Scale(entries[i].x, entries[i].y)
	}
	return newCell(0, 1, 0, 1, entries, maxDepth, 0, "", scaler)
}

func newCell(xmin, xmax, ymin, ymax float64, data []entry, maxDepth, depth int, id string, scaler MinMaxScaler) *QuadTree {
	if len(data) > 1 && depth < maxDepth {
		xhalf := xmin + (xmax-xmin)/2
		yhalf := ymin + (ymax-ymin)/2

		var topleft, topright, bottomleft, bottomright []entry
		for _, p := range data {
			if p.x > xhalf {
				if p.y > yhalf {
					topright = append(topright, p)
				} else {
					bottomright = append(bottomright, p)
				}
			} else {
				if p.y > yhalf {
					topleft = append(topleft, p)
				} else {
					bottomleft = append(bottomleft, p)
				}
			}
		}

		q := &QuadTree{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax, scaler: scaler, id: id}
		if len(topleft) > 0 {
			q.children[0] = newCell(xmin, xhalf, yhalf, ymax, topleft, maxDepth, depth+1, "a"+id, scaler)
		}
		if len(topright) > 0 {
			q.children[1] = newCell(xhalf, xmax, yhalf, ymax, topright, maxDepth, depth+1, "b"+id, scaler)
		}
		if len(bottomleft) > 0 {
			q.children[2] = newCell(xmin, xhalf, ymin, yhalf, bottomleft, maxDepth, depth+1, "c"+id, scaler)
		}
		if len(bottomright) > 0 {
			q.children[3] = newCell(xhalf, xmax, ymin, yhalf, bottomright, maxDepth, depth+1, "d"+id, scaler)
		}
		return q
	}

	points := make([]Point, len(data))
	for i, e := range data {
		points[i] = e.point
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Level > points[j].Level })
	return &QuadTree{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax, data: points, scaler: scaler, id: id}
}

// ID is this cell's identifier: empty for the root, else a string of
// a/b/c/d letters consumed from the end to descend from the root.
func (q *QuadTree) ID() string { return q.id }

// Children returns the non-nil child cells, in a, b, c, d order.
func (q *QuadTree) Children() []*QuadTree {
	out := make([]*QuadTree, 0, 4)
	for _, c := range q.children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Diameter is 0 for a true singleton leaf, and the cell's side length
// otherwise (covering both empty inner nodes and leaves holding more than
// one point once maxDepth was reached).
func (q *QuadTree) Diameter() float64 {
	if len(q.data) == 1 {
		return 0
	}
	return q.XMax - q.XMin
}

// Rep returns the point with the highest CH level in this subtree: the
// leaf's first point (already sorted descending by level), or the
// highest-level representative among the children.
func (q *QuadTree) Rep() Point {
	if len(q.data) > 0 {
		return q.data[0]
	}
	best := q.children[0]
	for _, c := range q.children[1:] {
		if c == nil {
			continue
		}
		if best == nil || c.Rep().Level > best.Rep().Level {
			best = c
		}
	}
	return best.Rep()
}

// Points returns every point stored anywhere in this subtree.
func (q *QuadTree) Points() []Point {
	if len(q.data) > 0 {
		out := make([]Point, len(q.data))
		copy(out, q.data)
		return out
	}
	var out []Point
	for _, c := range q.children {
		if c != nil {
			out = append(out, c.Points()...)
		}
	}
	return out
}

// Size is the total number of points stored in this subtree.
func (q *QuadTree) Size() int {
	if len(q.data) > 0 {
		return len(q.data)
	}
	total := 0
	for _, c := range q.children {
		if c != nil {
			total += c.Size()
		}
	}
	return total
}

// GetByID descends from q to the subtree named id, an a/b/c/d string
// consumed from its last character inward. Stops early (returning the
// deepest reached cell) if id names a cell that doesn't exist.
func (q *QuadTree) GetByID(id string) *QuadTree {
	if len(id) == 0 {
		return q
	}
	next := id[len(id)-1]
	rest := id[:len(id)-1]
	var child *QuadTree
	switch next {
	case 'a':
		child = q.children[0]
	case 'b':
		child = q.children[1]
	case 'c':
		child = q.children[2]
	case 'd':
		child = q.children[3]
	default:
		return q
	}
	if child == nil {
		return q
	}
	return child.GetByID(rest)
}

// LatLonBounds returns this cell's bounding box in geographic coordinates,
// undoing the Mercator projection and min-max scaling used to build the
// tree. Used by the GeoJSON emitter to draw cell outlines.
func (q *QuadTree) LatLonBounds() (minLat, minLon, maxLat, maxLon float64) {
	x0, y0 := q.scaler.InverseScale(q.XMin, q.YMin)
	x1, y1 := q.scaler.InverseScale(q.XMax, q.YMax)
	lat0, lon0 := InverseMercator(x0, y0)
	lat1, lon1 := InverseMercator(x1, y1)
	if lat0 > lat1 {
		lat0, lat1 = lat1, lat0
	}
	if lon0 > lon1 {
		lon0, lon1 = lon1, lon0
	}
	return lat0, lon0, lat1, lon1
}

// Distance is the minimum L2 distance between any corner of q and any
// corner of other, in scaled projected space.
func (q *QuadTree) Distance(other *QuadTree) float64 {
	sc := [4][2]float64{
		{q.XMin, q.YMin}, {q.XMin, q.YMax}, {q.XMax, q.YMin}, {q.XMax, q.YMax},
	}
	oc := [4][2]float64{
		{other.XMin, other.YMin}, {other.XMin, other.YMax}, {other.XMax, other.YMin}, {other.XMax, other.YMax},
	}
	best := pointDistance(sc[0], oc[0])
	for _, s := range sc {
		for _, o := range oc {
			if d := pointDistance(s, o); d < best {
				best = d
			}
		}
	}
	return best
}

func pointDistance(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}
