// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geomfn

import (
	"sort"

	cgeom "github.com/ctessum/geom"
	cgeomop "github.com/ctessum/geom/op"
	"github.com/twpayne/go-geom"

	"github.com/LucaCappelletti94/geolite/geo"
)

// clipOp maps an OverlayOp onto the Martinez-Rueda-Feito clipper's own
// operation enum.
func clipOp(op OverlayOp) cgeomop.Op {
	switch op {
	case OverlayUnion:
		return cgeomop.UNION
	case OverlayIntersection:
		return cgeomop.INTERSECTION
	case OverlayDifference:
		return cgeomop.DIFFERENCE
	default: // OverlaySymDifference
		return cgeomop.XOR
	}
}

// arealOverlay runs an exact boolean set operation between two polygonal
// operands, holes and disjoint multi-ring shells included, via
// github.com/ctessum/geom/op's Vatti-style polygon clipper.
func arealOverlay(a, b geom.T, op OverlayOp, srid int) (geo.Geometry, error) {
	subj := toClipPolygon(a)
	clip := toClipPolygon(b)
	result, err := cgeomop.Construct(subj, clip, clipOp(op))
	if err != nil {
		return geo.Geometry{}, geo.NewTopologyError("overlay: %s", err)
	}
	t, err := clipResultToGeomT(result, srid)
	if err != nil {
		return geo.Geometry{}, err
	}
	return geo.MakeGeometryFromGeomT(t)
}

// toClipPolygon flattens a Polygon or MultiPolygon's rings (shells and
// holes alike) into the clipper's own ring-list representation. Rings
// are emitted open (no duplicate closing vertex), matching the
// convention github.com/ctessum/geom/op itself uses internally and
// re-closes on output.
func toClipPolygon(t geom.T) cgeom.Polygon {
	var rings [][][2]float64
	switch t := t.(type) {
	case *geom.Polygon:
		rings = polygonOpenRings(t)
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			rings = append(rings, polygonOpenRings(t.Polygon(i))...)
		}
	}
	poly := make(cgeom.Polygon, len(rings))
	for i, r := range rings {
		poly[i] = clipRingFromPoints(r)
	}
	return poly
}

func polygonOpenRings(p *geom.Polygon) [][][2]float64 {
	var rings [][][2]float64
	for i := 0; i < p.NumLinearRings(); i++ {
		ring := p.LinearRing(i)
		flat := ring.FlatCoords()
		stride := ring.Layout().Stride()
		n := len(flat) / stride
		if n < 1 {
			continue
		}
		pts := make([][2]float64, 0, n-1)
		for j := 0; j < n-1; j++ {
			pts = append(pts, [2]float64{flat[j*stride], flat[j*stride+1]})
		}
		rings = append(rings, pts)
	}
	return rings
}

func clipRingFromPoints(pts [][2]float64) []cgeom.Point {
	ring := make([]cgeom.Point, len(pts))
	for i, p := range pts {
		ring[i] = cgeom.Point{X: p[0], Y: p[1]}
	}
	return ring
}

// clipUnionPolygon folds a set of standalone rings (as produced by, e.g.,
// one regular polygon per buffered vertex) into the single polygon
// covering their combined area, via the same clipper arealOverlay uses.
// Rings are assumed hole-free; this is always true of buffer discs.
func clipUnionPolygon(rings [][][2]float64) cgeom.Polygon {
	var acc cgeom.Polygon
	for _, r := range rings {
		if len(r) < 3 {
			continue
		}
		next := cgeom.Polygon{clipRingFromPoints(r)}
		if len(acc) == 0 {
			acc = next
			continue
		}
		result, err := cgeomop.Construct(acc, next, cgeomop.UNION)
		if err != nil || result == nil {
			continue
		}
		if p, ok := result.(cgeom.Polygon); ok {
			acc = p
		}
	}
	return acc
}

func clipResultToGeomT(g cgeom.Geom, srid int) (geom.T, error) {
	if g == nil {
		return geom.NewGeometryCollection().SetSRID(srid), nil
	}
	poly, ok := g.(cgeom.Polygon)
	if !ok {
		return geom.NewGeometryCollection().SetSRID(srid), nil
	}
	return ringsToGeomT(poly, srid)
}

// ringsToGeomT reassembles the clipper's flat, orientation-fixed ring
// list into a Polygon or MultiPolygon, grouping holes under their
// innermost enclosing shell by the same even-odd containment count
// ctessum/geom/op.FixOrientation uses internally to classify rings.
func ringsToGeomT(poly cgeom.Polygon, srid int) (geom.T, error) {
	n := len(poly)
	if n == 0 {
		return geom.NewGeometryCollection().SetSRID(srid), nil
	}
	rings := make([][][2]float64, n)
	for i, r := range poly {
		pts := make([][2]float64, len(r))
		for j, p := range r {
			pts[j] = [2]float64{p.X, p.Y}
		}
		rings[i] = pts
	}

	depth := make([]int, n)
	for i := range rings {
		if len(rings[i]) == 0 {
			continue
		}
		px, py := rings[i][0][0], rings[i][0][1]
		for j := range rings {
			if i == j || len(rings[j]) < 3 {
				continue
			}
			if pointInRing(px, py, rings[j]) {
				depth[i]++
			}
		}
	}

	type shell struct {
		outer [][2]float64
		holes [][][2]float64
	}
	shells := make(map[int]*shell)
	var shellOrder []int
	for i, d := range depth {
		if d%2 == 0 && len(rings[i]) > 0 {
			shells[i] = &shell{outer: rings[i]}
			shellOrder = append(shellOrder, i)
		}
	}
	for i, d := range depth {
		if d%2 == 0 || len(rings[i]) == 0 {
			continue
		}
		parent := -1
		for j := range rings {
			if j == i || depth[j] != d-1 {
				continue
			}
			if pointInRing(rings[i][0][0], rings[i][0][1], rings[j]) {
				parent = j
				break
			}
		}
		if parent >= 0 && shells[parent] != nil {
			shells[parent].holes = append(shells[parent].holes, rings[i])
		}
	}
	sort.Ints(shellOrder)
	if len(shellOrder) == 0 {
		return geom.NewGeometryCollection().SetSRID(srid), nil
	}

	polys := make([]*geom.Polygon, 0, len(shellOrder))
	for _, i := range shellOrder {
		s := shells[i]
		flat, ends := flattenClosedRings(append([][][2]float64{s.outer}, s.holes...))
		polys = append(polys, geom.NewPolygonFlat(geom.XY, flat, ends).SetSRID(srid))
	}
	if len(polys) == 1 {
		return polys[0], nil
	}
	mp := geom.NewMultiPolygon(geom.XY).SetSRID(srid)
	for _, p := range polys {
		if err := mp.Push(p); err != nil {
			return nil, err
		}
	}
	return mp, nil
}

func flattenClosedRings(rings [][][2]float64) ([]float64, []int) {
	var flat []float64
	var ends []int
	for _, r := range rings {
		for _, p := range closeRing(r) {
			flat = append(flat, p[0], p[1])
		}
		ends = append(ends, len(flat))
	}
	return flat, ends
}
