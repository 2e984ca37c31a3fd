package quadtree

import (
	"math"

	"github.com/tidwall/rtree"
)

// GeomCheck is an independent spatial index used only as a correctness
// oracle (wspd_analysis's --geom_check flag): an R-tree built over the same
// points as a QuadTree, queried independently so a projection or cell-split
// bug in the quad-tree doesn't go unnoticed just because it's internally
// self-consistent.
type GeomCheck struct {
	tree rtree.RTreeG[Point]
}

// NewGeomCheck indexes points by (lon, lat).
func NewGeomCheck(points []Point) *GeomCheck {
	gc := &GeomCheck{}
	for _, p := range points {
		pos := [2]float64{p.Lon, p.Lat}
		gc.tree.Insert(pos, pos, p)
	}
	return gc
}

// Nearest returns the point closest to (lat, lon) by plain Euclidean
// distance in degrees, searching an expanding window until a candidate is
// found or maxRadiusDeg is exceeded.
func (gc *GeomCheck) Nearest(lat, lon, startRadiusDeg, maxRadiusDeg float64) (Point, bool) {
	radius := startRadiusDeg
	var best Point
	bestDist := math.MaxFloat64
	found := false

	for radius <= maxRadiusDeg {
		min := [2]float64{lon - radius, lat - radius}
		max := [2]float64{lon + radius, lat + radius}
		gc.tree.Search(min, max, func(_, _ [2]float64, p Point) bool {
			dlat := p.Lat - lat
			dlon := p.Lon - lon
			d := dlat*dlat + dlon*dlon
			if d < bestDist {
				bestDist = d
				best = p
				found = true
			}
			return true
		})
		if found {
			break
		}
		radius *= 2
	}
	return best, found
}

// CrossCheckCell compares a quad-tree leaf's representative point against
// the R-tree's nearest point to the cell's center, in unscaled lat/lon
// space. A mismatch flags a likely projection or split bug.
func CrossCheckCell(gc *GeomCheck, cell *QuadTree) (agree bool, quadPoint, rtreePoint Point) {
	quadPoint = cell.Rep()

	cx, cy := cell.scaler.InverseScale((cell.XMin+cell.XMax)/2, (cell.YMin+cell.YMax)/2)
	lat, lon := InverseMercator(cx, cy)

	rtreePoint, found := gc.Nearest(lat, lon, 0.01, 10)
	if !found {
		return false, quadPoint, Point{}
	}
	return quadPoint.Node == rtreePoint.Node, quadPoint, rtreePoint
}
