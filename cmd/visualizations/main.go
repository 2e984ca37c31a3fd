// Command visualizations emits GeoJSON for a CH graph and, optionally, an
// overlay of paths, a hitting set, or quad-tree cell boundaries. Raster
// rendering is out of scope; --image is accepted for flag-compatibility and
// logged as a no-op.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/fmi"
	"github.com/bernlu/chhitset/pkg/quadtree"
)

type geoJSON struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string                 `json:"type"`
	Geometry   geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

func pointFeature(lat, lon float64, props map[string]interface{}) feature {
	return feature{
		Type:       "Feature",
		Geometry:   geometry{Type: "Point", Coordinates: [2]float64{lon, lat}},
		Properties: props,
	}
}

func lineFeature(coords [][2]float64, props map[string]interface{}) feature {
	return feature{
		Type:       "Feature",
		Geometry:   geometry{Type: "LineString", Coordinates: coords},
		Properties: props,
	}
}

func polygonFeature(minLat, minLon, maxLat, maxLon float64, props map[string]interface{}) feature {
	ring := [][2]float64{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat}, {minLon, minLat},
	}
	return feature{
		Type:       "Feature",
		Geometry:   geometry{Type: "Polygon", Coordinates: [][][2]float64{ring}},
		Properties: props,
	}
}

func main() {
	graphPath := flag.String("g", "", "path to .fmi CH graph file")
	outPath := flag.String("o", "", "output GeoJSON path")
	image := flag.Bool("image", false, "accepted for compatibility; raster output is not implemented")
	pathsPath := flag.String("p", "", "paths CSV to overlay")
	hsPath := flag.String("h", "", "hitting-set file to overlay")
	tree := flag.Bool("tree", false, "emit quad-tree cell boundaries instead of the raw graph")
	depth := flag.Int("d", 10, "quad-tree depth for --tree / cell lookups")
	pointsPerCell := flag.Int("points-per-cell", 0, "with --tree, only emit cells with at most this many points (0 = no filter)")
	clusterOfCell := flag.String("cluster-of-cell", "", "emit every point under the named quad-tree cell")
	cellA := flag.String("cell-pair", "", "with -cell-pair2, emit a WSPD-pair boundary highlight")
	cellB := flag.String("cell-pair2", "", "second cell id of -cell-pair")
	epsilon := flag.Float64("epsilon", 0.5, "separation factor, recorded in --cell-pair output properties only")
	flag.Parse()

	if *graphPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: visualizations -g <graph> -o <out> [--image] [-p paths] [-h hs] [--tree] [-d depth] [--points-per-cell K] [--cluster-of-cell id] [--cell-pair id1 --cell-pair2 id2] [--epsilon eps]")
		os.Exit(1)
	}
	if *image {
		log.Printf("note: --image is accepted for compatibility, but this binary only emits GeoJSON")
	}

	base, err := fmi.LoadCHGraph(*graphPath)
	if err != nil {
		log.Fatalf("failed to load graph: %v", err)
	}
	rv := chgraph.BuildRoutingView(base)

	var doc geoJSON
	doc.Type = "FeatureCollection"

	points := make([]quadtree.Point, len(base.Nodes))
	for i, n := range base.Nodes {
		points[i] = quadtree.Point{Node: uint32(i), Lat: n.Lat, Lon: n.Lon, Level: n.Level}
	}

	switch {
	case *clusterOfCell != "":
		t := quadtree.New(points, *depth)
		cell := t.GetByID(*clusterOfCell)
		for _, p := range cell.Points() {
			doc.Features = append(doc.Features, pointFeature(p.Lat, p.Lon, map[string]interface{}{"node": p.Node, "cell": cell.ID()}))
		}

	case *cellA != "" && *cellB != "":
		t := quadtree.New(points, *depth)
		u := t.GetByID(*cellA)
		v := t.GetByID(*cellB)
		doc.Features = append(doc.Features, cellPolygon(u, map[string]interface{}{"cell": "u", "epsilon": *epsilon}))
		doc.Features = append(doc.Features, cellPolygon(v, map[string]interface{}{"cell": "v", "epsilon": *epsilon}))

	case *tree:
		t := quadtree.New(points, *depth)
		emitCells(t, *pointsPerCell, &doc)

	default:
		for i, n := range base.Nodes {
			doc.Features = append(doc.Features, pointFeature(n.Lat, n.Lon, map[string]interface{}{"node": i, "level": n.Level}))
		}
		for i, e := range base.Edges {
			if e.IsShortcut() {
				continue
			}
			src, dst := base.Nodes[e.Source], base.Nodes[e.Target]
			doc.Features = append(doc.Features, lineFeature(
				[][2]float64{{src.Lon, src.Lat}, {dst.Lon, dst.Lat}},
				map[string]interface{}{"edge": i, "cost": e.Cost}))
		}
	}

	if *pathsPath != "" {
		overlayPaths(*pathsPath, base, rv, &doc)
	}
	if *hsPath != "" {
		overlayHittingSet(*hsPath, base, &doc)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	if err := enc.Encode(doc); err != nil {
		log.Fatalf("failed to write GeoJSON: %v", err)
	}
	log.Printf("wrote %d features to %s", len(doc.Features), *outPath)
}

func cellPolygon(cell *quadtree.QuadTree, props map[string]interface{}) feature {
	minLat, minLon, maxLat, maxLon := cell.LatLonBounds()
	props["cell_id"] = cell.ID()
	props["size"] = cell.Size()
	return polygonFeature(minLat, minLon, maxLat, maxLon, props)
}

func emitCells(q *quadtree.QuadTree, maxSize int, doc *geoJSON) {
	children := q.Children()
	if len(children) == 0 {
		if q.Size() == 0 {
			return
		}
		if maxSize > 0 && q.Size() > maxSize {
			return
		}
		minLat, minLon, maxLat, maxLon := q.LatLonBounds()
		doc.Features = append(doc.Features, polygonFeature(minLat, minLon, maxLat, maxLon, map[string]interface{}{
			"cell_id": q.ID(), "size": q.Size(), "diameter": q.Diameter(),
		}))
		return
	}
	for _, c := range children {
		emitCells(c, maxSize, doc)
	}
}

func overlayPaths(pathsPath string, base chgraph.Base, rv *chgraph.RoutingView, doc *geoJSON) {
	f, err := os.Open(pathsPath)
	if err != nil {
		log.Fatalf("failed to open paths file: %v", err)
	}
	defer f.Close()
	paths, err := fmi.ReadPaths(f)
	if err != nil {
		log.Fatalf("failed to read paths: %v", err)
	}
	for i, p := range paths {
		if len(p.Edges) == 0 {
			continue
		}
		unpacked := rv.UnpackPath(p.Edges)
		coords := make([][2]float64, 0, len(unpacked)+1)
		for j, eid := range unpacked {
			e := rv.Edge(eid)
			if j == 0 {
				src := base.Nodes[e.Source]
				coords = append(coords, [2]float64{src.Lon, src.Lat})
			}
			dst := base.Nodes[e.Target]
			coords = append(coords, [2]float64{dst.Lon, dst.Lat})
		}
		doc.Features = append(doc.Features, lineFeature(coords, map[string]interface{}{"path": i, "weight": p.Weight}))
	}
}

func overlayHittingSet(hsPath string, base chgraph.Base, doc *geoJSON) {
	f, err := os.Open(hsPath)
	if err != nil {
		log.Fatalf("failed to open hitting set file: %v", err)
	}
	defer f.Close()
	hits, err := fmi.ReadHittingSet(f)
	if err != nil {
		log.Fatalf("failed to read hitting set: %v", err)
	}
	for node := range hits {
		n := base.Nodes[node]
		doc.Features = append(doc.Features, pointFeature(n.Lat, n.Lon, map[string]interface{}{"node": node, "hit": true}))
	}
}
