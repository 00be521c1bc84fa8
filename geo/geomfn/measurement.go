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
	"math"

	"github.com/twpayne/go-geom"

	"github.com/LucaCappelletti94/geolite/geo"
	"github.com/LucaCappelletti94/geolite/geo/geopb"
)

// Area returns the planar area of a, computed by the shoelace formula
// over each polygon's exterior ring minus its holes. Non-areal
// geometries have zero area.
func Area(a geo.Geometry) (float64, error) {
	t, err := a.AsGeomT()
	if err != nil {
		return 0, err
	}
	return areaOf(t), nil
}

func areaOf(t geom.T) float64 {
	switch t := t.(type) {
	case *geom.Polygon:
		return polygonArea(t)
	case *geom.MultiPolygon:
		var total float64
		for i := 0; i < t.NumPolygons(); i++ {
			total += polygonArea(t.Polygon(i))
		}
		return total
	case *geom.GeometryCollection:
		var total float64
		for i := 0; i < t.NumGeoms(); i++ {
			total += areaOf(t.Geom(i))
		}
		return total
	default:
		return 0
	}
}

func polygonArea(p *geom.Polygon) float64 {
	if p.NumLinearRings() == 0 {
		return 0
	}
	area := math.Abs(ringArea(p.LinearRing(0)))
	for i := 1; i < p.NumLinearRings(); i++ {
		area -= math.Abs(ringArea(p.LinearRing(i)))
	}
	if area < 0 {
		return 0
	}
	return area
}

// ringArea implements the shoelace formula; its sign encodes winding
// order, which callers discard with math.Abs.
func ringArea(ring *geom.LinearRing) float64 {
	flat := ring.FlatCoords()
	stride := ring.Layout().Stride()
	n := len(flat) / stride
	if n < 3 {
		return 0
	}
	var sum float64
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := flat[i*stride], flat[i*stride+1]
		xj, yj := flat[j*stride], flat[j*stride+1]
		sum += xj*yi - xi*yj
	}
	return sum / 2
}

// Length returns the total length of a's linear components. Areal and
// point geometries have zero length.
func Length(a geo.Geometry) (float64, error) {
	t, err := a.AsGeomT()
	if err != nil {
		return 0, err
	}
	return lengthOf(t), nil
}

func lengthOf(t geom.T) float64 {
	switch t := t.(type) {
	case *geom.LineString:
		return lineLength(t.FlatCoords(), t.Layout().Stride())
	case *geom.MultiLineString:
		var total float64
		for i := 0; i < t.NumLineStrings(); i++ {
			ls := t.LineString(i)
			total += lineLength(ls.FlatCoords(), ls.Layout().Stride())
		}
		return total
	case *geom.GeometryCollection:
		var total float64
		for i := 0; i < t.NumGeoms(); i++ {
			total += lengthOf(t.Geom(i))
		}
		return total
	default:
		return 0
	}
}

func lineLength(flat []float64, stride int) float64 {
	n := len(flat) / stride
	var total float64
	for i := 1; i < n; i++ {
		x0, y0 := flat[(i-1)*stride], flat[(i-1)*stride+1]
		x1, y1 := flat[i*stride], flat[i*stride+1]
		total += math.Hypot(x1-x0, y1-y0)
	}
	return total
}

// Perimeter returns the total length of a's areal boundaries. Non-areal
// geometries have zero perimeter.
func Perimeter(a geo.Geometry) (float64, error) {
	t, err := a.AsGeomT()
	if err != nil {
		return 0, err
	}
	return perimeterOf(t), nil
}

func perimeterOf(t geom.T) float64 {
	switch t := t.(type) {
	case *geom.Polygon:
		return polygonPerimeter(t)
	case *geom.MultiPolygon:
		var total float64
		for i := 0; i < t.NumPolygons(); i++ {
			total += polygonPerimeter(t.Polygon(i))
		}
		return total
	case *geom.GeometryCollection:
		var total float64
		for i := 0; i < t.NumGeoms(); i++ {
			total += perimeterOf(t.Geom(i))
		}
		return total
	default:
		return 0
	}
}

func polygonPerimeter(p *geom.Polygon) float64 {
	var total float64
	for i := 0; i < p.NumLinearRings(); i++ {
		ring := p.LinearRing(i)
		total += lineLength(ring.FlatCoords(), ring.Layout().Stride())
	}
	return total
}

// Centroid returns the area/length/point-weighted centroid of a,
// following PostGIS's dimension-of-highest-degree-present rule: areal
// components dominate lines, which dominate points.
func Centroid(a geo.Geometry) (geo.Geometry, error) {
	t, err := a.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	if t.Empty() {
		return geo.MakeGeometryFromGeomT(geom.NewPoint(geom.XY).SetSRID(t.SRID()))
	}
	x, y, ok := centroidOf(t)
	if !ok {
		return geo.Geometry{}, geo.NewInvalidArgumentError("cannot compute centroid")
	}
	pt := geom.NewPointFlat(geom.XY, []float64{x, y}).SetSRID(t.SRID())
	return geo.MakeGeometryFromGeomT(pt)
}

func centroidOf(t geom.T) (x, y float64, ok bool) {
	if area := areaOf(t); area > 0 {
		return areaCentroid(t, area)
	}
	if length := lengthOf(t); length > 0 {
		return lengthCentroid(t, length)
	}
	return pointCentroid(t)
}

func areaCentroid(t geom.T, totalArea float64) (float64, float64, bool) {
	var cx, cy float64
	walkPolygons(t, func(p *geom.Polygon) {
		area := polygonArea(p)
		if area == 0 || p.NumLinearRings() == 0 {
			return
		}
		rx, ry := ringCentroid(p.LinearRing(0))
		cx += rx * area
		cy += ry * area
	})
	if totalArea == 0 {
		return 0, 0, false
	}
	return cx / totalArea, cy / totalArea, true
}

func ringCentroid(ring *geom.LinearRing) (float64, float64) {
	flat := ring.FlatCoords()
	stride := ring.Layout().Stride()
	n := len(flat) / stride
	var cx, cy, areaSum float64
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := flat[i*stride], flat[i*stride+1]
		xj, yj := flat[j*stride], flat[j*stride+1]
		cross := xj*yi - xi*yj
		areaSum += cross
		cx += (xi + xj) * cross
		cy += (yi + yj) * cross
	}
	if areaSum == 0 {
		if n > 0 {
			return flat[0], flat[1]
		}
		return 0, 0
	}
	return cx / (3 * areaSum), cy / (3 * areaSum)
}

func walkPolygons(t geom.T, fn func(*geom.Polygon)) {
	switch t := t.(type) {
	case *geom.Polygon:
		fn(t)
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			fn(t.Polygon(i))
		}
	case *geom.GeometryCollection:
		for i := 0; i < t.NumGeoms(); i++ {
			walkPolygons(t.Geom(i), fn)
		}
	}
}

func lengthCentroid(t geom.T, totalLength float64) (float64, float64, bool) {
	var cx, cy float64
	walkLines(t, func(flat []float64, stride int) {
		n := len(flat) / stride
		for i := 1; i < n; i++ {
			x0, y0 := flat[(i-1)*stride], flat[(i-1)*stride+1]
			x1, y1 := flat[i*stride], flat[i*stride+1]
			segLen := math.Hypot(x1-x0, y1-y0)
			cx += (x0 + x1) / 2 * segLen
			cy += (y0 + y1) / 2 * segLen
		}
	})
	if totalLength == 0 {
		return 0, 0, false
	}
	return cx / totalLength, cy / totalLength, true
}

func walkLines(t geom.T, fn func(flat []float64, stride int)) {
	switch t := t.(type) {
	case *geom.LineString:
		fn(t.FlatCoords(), t.Layout().Stride())
	case *geom.MultiLineString:
		for i := 0; i < t.NumLineStrings(); i++ {
			ls := t.LineString(i)
			fn(ls.FlatCoords(), ls.Layout().Stride())
		}
	case *geom.GeometryCollection:
		for i := 0; i < t.NumGeoms(); i++ {
			walkLines(t.Geom(i), fn)
		}
	}
}

func pointCentroid(t geom.T) (float64, float64, bool) {
	var cx, cy float64
	var n int
	walkPoints(t, func(x, y float64) {
		cx += x
		cy += y
		n++
	})
	if n == 0 {
		return 0, 0, false
	}
	return cx / float64(n), cy / float64(n), true
}

func walkPoints(t geom.T, fn func(x, y float64)) {
	switch t := t.(type) {
	case *geom.Point:
		fn(t.X(), t.Y())
	case *geom.MultiPoint:
		for i := 0; i < t.NumPoints(); i++ {
			p := t.Point(i)
			fn(p.X(), p.Y())
		}
	case *geom.GeometryCollection:
		for i := 0; i < t.NumGeoms(); i++ {
			walkPoints(t.Geom(i), fn)
		}
	}
}

// PointOnSurface returns a point guaranteed to lie on a (unlike
// Centroid, which may fall outside a non-convex polygon): the vertex
// closest to the exact centroid.
func PointOnSurface(a geo.Geometry) (geo.Geometry, error) {
	t, err := a.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	if t.Empty() {
		return geo.Geometry{}, geo.NewInvalidArgumentError("cannot compute point on surface of empty geometry")
	}
	cx, cy, ok := centroidOf(t)
	if !ok {
		return geo.Geometry{}, geo.NewInvalidArgumentError("cannot compute point on surface")
	}
	bestX, bestY := math.NaN(), math.NaN()
	bestDist := math.Inf(1)
	walkAllVertices(t, func(x, y float64) {
		d := math.Hypot(x-cx, y-cy)
		if d < bestDist {
			bestDist = d
			bestX, bestY = x, y
		}
	})
	if math.IsInf(bestDist, 1) {
		return geo.Geometry{}, geo.NewInvalidArgumentError("cannot compute point on surface")
	}
	pt := geom.NewPointFlat(geom.XY, []float64{bestX, bestY}).SetSRID(t.SRID())
	return geo.MakeGeometryFromGeomT(pt)
}

func walkAllVertices(t geom.T, fn func(x, y float64)) {
	flat := t.FlatCoords()
	stride := t.Stride()
	if stride == 0 {
		return
	}
	for i := 0; i+1 < len(flat); i += stride {
		fn(flat[i], flat[i+1])
	}
}

// Envelope returns a's bounding box as a Polygon (or Point, if a is a
// single point).
func Envelope(a geo.Geometry) (geo.Geometry, error) {
	bb, ok := a.BoundingBox()
	if !ok {
		return geo.Geometry{}, geo.NewInvalidArgumentError("cannot compute envelope of empty geometry")
	}
	srid := int(a.SRID())
	if bb.MinX == bb.MaxX && bb.MinY == bb.MaxY {
		pt := geom.NewPointFlat(geom.XY, []float64{bb.MinX, bb.MinY}).SetSRID(srid)
		return geo.MakeGeometryFromGeomT(pt)
	}
	ring := []float64{
		bb.MinX, bb.MinY,
		bb.MaxX, bb.MinY,
		bb.MaxX, bb.MaxY,
		bb.MinX, bb.MaxY,
		bb.MinX, bb.MinY,
	}
	poly := geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)}).SetSRID(srid)
	return geo.MakeGeometryFromGeomT(poly)
}

// Distance returns the minimum Euclidean distance between a and b, 0 if
// they intersect.
func Distance(a, b geo.Geometry) (float64, error) {
	if a.SRID() != b.SRID() {
		return 0, geo.NewMismatchingSRIDsError(a.SpatialObject(), b.SpatialObject())
	}
	at, err := a.AsGeomT()
	if err != nil {
		return 0, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return 0, err
	}
	if at.Empty() || bt.Empty() {
		return 0, geo.NewInvalidArgumentError("cannot compute distance to/from an empty geometry")
	}
	return geometryDistance(at, bt), nil
}

func geometryDistance(a, b geom.T) float64 {
	aVerts := collectSegments(a)
	bVerts := collectSegments(b)
	if isAreal(a) {
		if anyVertexInside(b, a) {
			return 0
		}
	}
	if isAreal(b) {
		if anyVertexInside(a, b) {
			return 0
		}
	}
	best := math.Inf(1)
	for _, sa := range aVerts {
		for _, sb := range bVerts {
			d := segmentDistance(sa, sb)
			if d < best {
				best = d
			}
		}
	}
	if math.IsInf(best, 1) {
		// Degenerate: one side has no segments (a lone point).
		var px, py float64
		walkAllVertices(a, func(x, y float64) { px, py = x, y })
		walkAllVertices(b, func(x, y float64) {
			d := math.Hypot(x-px, y-py)
			if d < best {
				best = d
			}
		})
	}
	return best
}

func isAreal(t geom.T) bool {
	switch t.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
		return true
	default:
		return false
	}
}

func anyVertexInside(t geom.T, polygon geom.T) bool {
	found := false
	walkAllVertices(t, func(x, y float64) {
		if found {
			return
		}
		pt := geom.NewPointFlat(geom.XY, []float64{x, y})
		switch p := polygon.(type) {
		case *geom.Polygon:
			side, err := findPointSideOfPolygon(pt, p)
			if err == nil && side != outsideLinearRing {
				found = true
			}
		case *geom.MultiPolygon:
			for i := 0; i < p.NumPolygons(); i++ {
				side, err := findPointSideOfPolygon(pt, p.Polygon(i))
				if err == nil && side != outsideLinearRing {
					found = true
					return
				}
			}
		}
	})
	return found
}

type segment struct{ x0, y0, x1, y1 float64 }

func collectSegments(t geom.T) []segment {
	var segs []segment
	addRing := func(flat []float64, stride int, closed bool) {
		n := len(flat) / stride
		if n == 1 {
			segs = append(segs, segment{flat[0], flat[1], flat[0], flat[1]})
			return
		}
		for i := 1; i < n; i++ {
			segs = append(segs, segment{flat[(i-1)*stride], flat[(i-1)*stride+1], flat[i*stride], flat[i*stride+1]})
		}
	}
	switch t := t.(type) {
	case *geom.Point:
		segs = append(segs, segment{t.X(), t.Y(), t.X(), t.Y()})
	case *geom.MultiPoint:
		for i := 0; i < t.NumPoints(); i++ {
			p := t.Point(i)
			segs = append(segs, segment{p.X(), p.Y(), p.X(), p.Y()})
		}
	case *geom.LineString:
		addRing(t.FlatCoords(), t.Layout().Stride(), false)
	case *geom.MultiLineString:
		for i := 0; i < t.NumLineStrings(); i++ {
			ls := t.LineString(i)
			addRing(ls.FlatCoords(), ls.Layout().Stride(), false)
		}
	case *geom.Polygon:
		for i := 0; i < t.NumLinearRings(); i++ {
			ring := t.LinearRing(i)
			addRing(ring.FlatCoords(), ring.Layout().Stride(), true)
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			segs = append(segs, collectSegments(t.Polygon(i))...)
		}
	case *geom.GeometryCollection:
		for i := 0; i < t.NumGeoms(); i++ {
			segs = append(segs, collectSegments(t.Geom(i))...)
		}
	}
	return segs
}

func segmentDistance(a, b segment) float64 {
	if segmentsIntersect(a, b) {
		return 0
	}
	d1 := pointToSegmentDistance(a.x0, a.y0, b)
	d2 := pointToSegmentDistance(a.x1, a.y1, b)
	d3 := pointToSegmentDistance(b.x0, b.y0, a)
	d4 := pointToSegmentDistance(b.x1, b.y1, a)
	return math.Min(math.Min(d1, d2), math.Min(d3, d4))
}

func pointToSegmentDistance(px, py float64, s segment) float64 {
	dx, dy := s.x1-s.x0, s.y1-s.y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-s.x0, py-s.y0)
	}
	t := ((px-s.x0)*dx + (py-s.y0)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx, cy := s.x0+t*dx, s.y0+t*dy
	return math.Hypot(px-cx, py-cy)
}

func segmentsIntersect(a, b segment) bool {
	d1 := cross2(b.x1-b.x0, b.y1-b.y0, a.x0-b.x0, a.y0-b.y0)
	d2 := cross2(b.x1-b.x0, b.y1-b.y0, a.x1-b.x0, a.y1-b.y0)
	d3 := cross2(a.x1-a.x0, a.y1-a.y0, b.x0-a.x0, b.y0-a.y0)
	d4 := cross2(a.x1-a.x0, a.y1-a.y0, b.x1-a.x0, b.y1-a.y0)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(a.x0, a.y0, b.x0, b.y0, b.x1, b.y1) {
		return true
	}
	if d2 == 0 && onSegment(a.x1, a.y1, b.x0, b.y0, b.x1, b.y1) {
		return true
	}
	if d3 == 0 && onSegment(b.x0, b.y0, a.x0, a.y0, a.x1, a.y1) {
		return true
	}
	if d4 == 0 && onSegment(b.x1, b.y1, a.x0, a.y0, a.x1, a.y1) {
		return true
	}
	return false
}

func cross2(x1, y1, x2, y2 float64) float64 {
	return x1*y2 - y1*x2
}

// HausdorffDistance returns the Hausdorff distance between a and b: the
// greatest of the two directed distances (worst-case vertex-to-shape
// distance in each direction).
func HausdorffDistance(a, b geo.Geometry) (float64, error) {
	at, err := a.AsGeomT()
	if err != nil {
		return 0, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return 0, err
	}
	if at.Empty() || bt.Empty() {
		return 0, geo.NewInvalidArgumentError("cannot compute Hausdorff distance to/from an empty geometry")
	}
	return math.Max(directedHausdorff(at, bt), directedHausdorff(bt, at)), nil
}

func directedHausdorff(a, b geom.T) float64 {
	bSegs := collectSegments(b)
	worst := 0.0
	walkAllVertices(a, func(x, y float64) {
		best := math.Inf(1)
		for _, s := range bSegs {
			d := pointToSegmentDistance(x, y, s)
			if d < best {
				best = d
			}
		}
		if best > worst {
			worst = best
		}
	})
	return worst
}

// Azimuth returns the azimuth in radians (clockwise from north) of the
// segment from point a to point b.
func Azimuth(a, b geo.Geometry) (float64, error) {
	ax, ay, err := singlePointCoords(a)
	if err != nil {
		return 0, err
	}
	bx, by, err := singlePointCoords(b)
	if err != nil {
		return 0, err
	}
	if ax == bx && ay == by {
		return 0, geo.NewInvalidArgumentError("cannot compute azimuth of coincident points")
	}
	az := math.Atan2(bx-ax, by-ay)
	if az < 0 {
		az += 2 * math.Pi
	}
	return az, nil
}

func singlePointCoords(g geo.Geometry) (float64, float64, error) {
	if g.ShapeType() != geopb.ShapeType_Point {
		return 0, 0, geo.NewUnsupportedGeometryError("expected a Point, got %s", g.ShapeType())
	}
	t, err := g.AsGeomT()
	if err != nil {
		return 0, 0, err
	}
	pt, ok := t.(*geom.Point)
	if !ok || pt.Empty() {
		return 0, 0, geo.NewInvalidArgumentError("cannot operate on an empty point")
	}
	return pt.X(), pt.Y(), nil
}

// Project returns the point obtained by moving distance d from point a
// along azimuth (radians, clockwise from north).
func Project(a geo.Geometry, d, azimuth float64) (geo.Geometry, error) {
	ax, ay, err := singlePointCoords(a)
	if err != nil {
		return geo.Geometry{}, err
	}
	x := ax + d*math.Sin(azimuth)
	y := ay + d*math.Cos(azimuth)
	pt := geom.NewPointFlat(geom.XY, []float64{x, y}).SetSRID(int(a.SRID()))
	return geo.MakeGeometryFromGeomT(pt)
}

// ClosestPoint returns the point on a closest to b.
func ClosestPoint(a, b geo.Geometry) (geo.Geometry, error) {
	at, err := a.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	if at.Empty() || bt.Empty() {
		return geo.Geometry{}, geo.NewInvalidArgumentError("cannot compute closest point to/from an empty geometry")
	}
	aSegs := collectSegments(at)
	bSegs := collectSegments(bt)
	best := math.Inf(1)
	var bestX, bestY float64
	for _, sb := range bSegs {
		for _, sa := range aSegs {
			x, y, d := closestPointOnSegment(sa, sb)
			if d < best {
				best = d
				bestX, bestY = x, y
			}
		}
	}
	pt := geom.NewPointFlat(geom.XY, []float64{bestX, bestY}).SetSRID(at.SRID())
	return geo.MakeGeometryFromGeomT(pt)
}

// closestPointOnSegment returns the point on segment a closest to any
// point of segment b, and the distance between them.
func closestPointOnSegment(a, b segment) (float64, float64, float64) {
	if x, y, ok := segmentIntersectionPoint(a, b); ok {
		return x, y, 0
	}
	candidates := [][2]float64{{b.x0, b.y0}, {b.x1, b.y1}}
	best := math.Inf(1)
	var bestX, bestY float64
	for _, c := range candidates {
		dx, dy := a.x1-a.x0, a.y1-a.y0
		lenSq := dx*dx + dy*dy
		var cx, cy float64
		if lenSq == 0 {
			cx, cy = a.x0, a.y0
		} else {
			t := ((c[0]-a.x0)*dx + (c[1]-a.y0)*dy) / lenSq
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			cx, cy = a.x0+t*dx, a.y0+t*dy
		}
		d := math.Hypot(cx-c[0], cy-c[1])
		if d < best {
			best = d
			bestX, bestY = cx, cy
		}
	}
	// Without a crossing, the minimum can also sit at one of a's own
	// endpoints, measured against the whole of b.
	for _, p := range [][2]float64{{a.x0, a.y0}, {a.x1, a.y1}} {
		if d := pointToSegmentDistance(p[0], p[1], b); d < best {
			best = d
			bestX, bestY = p[0], p[1]
		}
	}
	return bestX, bestY, best
}
