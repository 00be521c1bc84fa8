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
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"

	"github.com/LucaCappelletti94/geolite/geo"
)

// DE9IM is a Dim-9 intersection matrix, one byte per (Interior, Boundary,
// Exterior) x (Interior, Boundary, Exterior) cell, laid out row-major:
// II, IB, IE, BI, BB, BE, EI, EB, EE. Each byte is one of 'F' (empty
// intersection), '0' (point intersection), '1' (line intersection), or
// '2' (areal intersection).
type DE9IM [9]byte

const (
	de9imII = 0
	de9imIB = 1
	de9imIE = 2
	de9imBI = 3
	de9imBB = 4
	de9imBE = 5
	de9imEI = 6
	de9imEB = 7
	de9imEE = 8
)

// String returns the standard 9-character DE-9IM text representation.
func (m DE9IM) String() string {
	return string(m[:])
}

// Matches reports whether m satisfies pattern, a 9-character DE-9IM
// pattern string using the standard wildcards: 'T' (any non-F value),
// '*' (any value), or a literal 'F'/'0'/'1'/'2'.
func (m DE9IM) Matches(pattern string) (bool, error) {
	if len(pattern) != 9 {
		return false, errors.Newf("geomfn: DE-9IM pattern must be 9 characters, got %q", pattern)
	}
	for i := 0; i < 9; i++ {
		want := pattern[i]
		got := m[i]
		switch want {
		case '*':
			continue
		case 'T':
			if got == 'F' {
				return false, nil
			}
		case 'F', '0', '1', '2':
			if got != want {
				return false, nil
			}
		default:
			return false, errors.Newf("geomfn: invalid DE-9IM pattern character %q at position %d", want, i)
		}
	}
	return true, nil
}

// dimensionOf returns the topological dimension of a shape kind: 0 for
// points, 1 for curves, 2 for areal geometries.
func dimensionOf(t geom.T) int {
	switch t.(type) {
	case *geom.Point, *geom.MultiPoint:
		return 0
	case *geom.LineString, *geom.MultiLineString:
		return 1
	case *geom.Polygon, *geom.MultiPolygon:
		return 2
	default:
		return 1
	}
}

// Relate computes the DE-9IM matrix for a and b. Point/Point,
// Point/Polygon and Point/LineString pairs get an exact matrix from
// direct geometric tests (point-in-polygon, point-on-segment), and
// LineString/LineString pairs are classified segment by segment by
// relateLineToLine. Every other pair (Line/Polygon, Polygon/Polygon, and
// any pair with a Multi* or GeometryCollection operand) gets the
// approximate matrix of approximateRelate, which looks only at
// bounding-box overlap and containment, so predicates derived from it
// can differ from the exact answer for those pairs (see DESIGN.md).
func Relate(a, b geo.Geometry) (DE9IM, error) {
	if a.SRID() != b.SRID() {
		return DE9IM{}, geo.NewMismatchingSRIDsError(a.SpatialObject(), b.SpatialObject())
	}
	at, err := a.AsGeomT()
	if err != nil {
		return DE9IM{}, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return DE9IM{}, err
	}
	return relateGeomT(at, bt)
}

func relateGeomT(a, b geom.T) (DE9IM, error) {
	aEmpty, bEmpty := a.Empty(), b.Empty()
	if aEmpty || bEmpty {
		return emptyRelate(a, b, aEmpty, bEmpty), nil
	}

	aBox, bBox := bboxOf(a), bboxOf(b)
	if !aBox.Intersects(bBox) {
		return disjointRelate(a, b), nil
	}

	switch at := a.(type) {
	case *geom.Point:
		return relatePointTo(at, b)
	}
	switch bt := b.(type) {
	case *geom.Point:
		rel, err := relatePointTo(bt, a)
		if err != nil {
			return DE9IM{}, err
		}
		return transposeRelate(rel), nil
	}

	if al, ok := a.(*geom.LineString); ok {
		if bl, ok := b.(*geom.LineString); ok {
			return relateLineToLine(al, bl), nil
		}
	}

	// Line/polygon, polygon/polygon: approximate via the derived-predicate
	// battery (touches/crosses/overlaps/contains), encoding the strongest
	// applicable relationship. Line/Line pairs are handled exactly above.
	return approximateRelate(a, b)
}

func emptyRelate(a, b geom.T, aEmpty, bEmpty bool) DE9IM {
	m := DE9IM{'F', 'F', 'F', 'F', 'F', 'F', 'F', 'F', 'F'}
	if !aEmpty {
		m[de9imEI], m[de9imEB] = byte('0'+dimensionOf(a)), byte('0'+dimensionOf(a))
		if dimensionOf(a) == 0 {
			m[de9imEB] = 'F'
		}
	}
	if !bEmpty {
		m[de9imIE], m[de9imBE] = byte('0'+dimensionOf(b)), byte('0'+dimensionOf(b))
		if dimensionOf(b) == 0 {
			m[de9imBE] = 'F'
		}
	}
	return m
}

func disjointRelate(a, b geom.T) DE9IM {
	m := DE9IM{'F', 'F', '0', 'F', 'F', 'F', '0', 'F', '2'}
	m[de9imIE] = byte('0' + dimensionOf(a))
	m[de9imEI] = byte('0' + dimensionOf(b))
	// A point has an empty boundary, a curve's boundary is 0-dimensional
	// and an areal geometry's is 1-dimensional.
	if d := dimensionOf(a); d > 0 {
		m[de9imBE] = byte('0' + d - 1)
	}
	if d := dimensionOf(b); d > 0 {
		m[de9imEB] = byte('0' + d - 1)
	}
	m[de9imEE] = '2'
	return m
}

func transposeRelate(m DE9IM) DE9IM {
	return DE9IM{
		m[de9imII], m[de9imBI], m[de9imEI],
		m[de9imIB], m[de9imBB], m[de9imEB],
		m[de9imIE], m[de9imBE], m[de9imEE],
	}
}

func relatePointTo(p *geom.Point, other geom.T) (DE9IM, error) {
	switch o := other.(type) {
	case *geom.Point:
		eq := p.X() == o.X() && p.Y() == o.Y()
		if eq {
			return DE9IM{'0', 'F', 'F', 'F', 'F', 'F', 'F', 'F', '2'}, nil
		}
		return disjointRelate(p, o), nil
	case *geom.Polygon:
		side, err := findPointSideOfPolygon(p, o)
		if err != nil {
			return DE9IM{}, err
		}
		switch side {
		case insideLinearRing:
			return DE9IM{'0', 'F', 'F', 'F', 'F', 'F', '2', '1', '2'}, nil
		case onLinearRing:
			return DE9IM{'F', '0', 'F', 'F', 'F', 'F', '2', '1', '2'}, nil
		default:
			return disjointRelate(p, o), nil
		}
	case *geom.LineString:
		return relatePointToLineString(p, o), nil
	default:
		// MultiPoint/MultiLineString/MultiPolygon: fall back to a
		// bounding-box based approximation.
		return approximateRelate(p, other)
	}
}

// relatePointToLineString computes the exact DE-9IM matrix for a point
// against a LineString by walking its segments with onSegment, the same
// on-segment test classifyPointAgainstRing uses for ring boundaries. A
// closed LineString (first coordinate equal to last) has an empty
// boundary, matching the standard OGC rule for closed curves.
func relatePointToLineString(p *geom.Point, l *geom.LineString) DE9IM {
	flat := l.FlatCoords()
	stride := l.Layout().Stride()
	n := len(flat) / stride
	if n < 2 {
		return disjointRelate(p, l)
	}

	px, py := p.X(), p.Y()
	onLine := false
	for i := 0; i < n-1; i++ {
		x1, y1 := flat[i*stride], flat[i*stride+1]
		x2, y2 := flat[(i+1)*stride], flat[(i+1)*stride+1]
		if onSegment(px, py, x1, y1, x2, y2) {
			onLine = true
			break
		}
	}
	fx, fy := flat[0], flat[1]
	lx, ly := flat[(n-1)*stride], flat[(n-1)*stride+1]
	closed := fx == lx && fy == ly
	if !onLine {
		m := disjointRelate(p, l)
		if closed {
			m[de9imEB] = 'F'
		}
		return m
	}
	if !closed && ((px == fx && py == fy) || (px == lx && py == ly)) {
		// The point coincides with one of the line's two boundary points.
		return DE9IM{'F', '0', 'F', 'F', 'F', 'F', '1', '0', '2'}
	}
	boundaryExterior := byte('F')
	if !closed {
		boundaryExterior = '0'
	}
	return DE9IM{'0', 'F', 'F', 'F', 'F', 'F', '1', boundaryExterior, '2'}
}

// lineEndpoints returns l's first and last coordinates.
func lineEndpoints(l *geom.LineString) (first, last [2]float64) {
	flat := l.FlatCoords()
	stride := l.Layout().Stride()
	n := len(flat) / stride
	first = [2]float64{flat[0], flat[1]}
	last = [2]float64{flat[(n-1)*stride], flat[(n-1)*stride+1]}
	return first, last
}

// onLineBoundary reports whether (x, y) is one of a LineString's two
// boundary points, which is the empty set for a closed line.
func onLineBoundary(x, y float64, first, last [2]float64, closed bool) bool {
	if closed {
		return false
	}
	return (x == first[0] && y == first[1]) || (x == last[0] && y == last[1])
}

// segmentsCollinear reports whether a and b lie on the same line,
// using the same cross-product orientation predicate segmentsIntersect
// uses to test properness.
func segmentsCollinear(a, b segment) bool {
	return cross2(a.x1-a.x0, a.y1-a.y0, b.x0-a.x0, b.y0-a.y0) == 0 &&
		cross2(a.x1-a.x0, a.y1-a.y0, b.x1-a.x0, b.y1-a.y0) == 0
}

// segmentIntersectionPoint returns the single point at which non-
// collinear segments a and b cross, or ok=false if they are parallel
// or don't cross within their bounds. Callers must rule out the
// collinear case separately (segmentsCollinear), since collinear
// overlapping segments intersect along a run, not at one point.
func segmentIntersectionPoint(a, b segment) (x, y float64, ok bool) {
	rx, ry := a.x1-a.x0, a.y1-a.y0
	sx, sy := b.x1-b.x0, b.y1-b.y0
	denom := rx*sy - ry*sx
	if denom == 0 {
		return 0, 0, false
	}
	qpx, qpy := b.x0-a.x0, b.y0-a.y0
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, false
	}
	return a.x0 + t*rx, a.y0 + t*ry, true
}

// relateLineToLine computes the exact DE-9IM matrix for two LineStrings
// by testing every pair of their segments with the same exact
// orientation predicate (segmentsIntersect) measurement.go's Distance
// uses, locating crossings with segmentIntersectionPoint, rather than a
// bounding-box heuristic:
// two lines whose bounding boxes don't contain one another can still
// genuinely cross, and Intersects/Crosses/Touches must agree with
// Distance about whether that crossing exists.
func relateLineToLine(a, b *geom.LineString) DE9IM {
	aSegs := collectSegments(a)
	bSegs := collectSegments(b)
	aFirst, aLast := lineEndpoints(a)
	bFirst, bLast := lineEndpoints(b)
	aClosed := aFirst == aLast
	bClosed := bFirst == bLast

	anyIntersection := false
	interiorCross := false
	collinearOverlap := false
	boundaryTouch := false

	for _, sa := range aSegs {
		for _, sb := range bSegs {
			if !segmentsIntersect(sa, sb) {
				continue
			}
			anyIntersection = true
			if segmentsCollinear(sa, sb) {
				collinearOverlap = true
				continue
			}
			x, y, ok := segmentIntersectionPoint(sa, sb)
			if !ok {
				collinearOverlap = true
				continue
			}
			if onLineBoundary(x, y, aFirst, aLast, aClosed) || onLineBoundary(x, y, bFirst, bLast, bClosed) {
				boundaryTouch = true
			} else {
				interiorCross = true
			}
		}
	}

	if !anyIntersection {
		return disjointRelate(a, b)
	}
	if interiorCross || collinearOverlap {
		dim := byte('0')
		if collinearOverlap {
			dim = '1'
		}
		boundaryExteriorA := byte('F')
		if !aClosed {
			boundaryExteriorA = '0'
		}
		boundaryExteriorB := byte('F')
		if !bClosed {
			boundaryExteriorB = '0'
		}
		return DE9IM{dim, 'F', '1', 'F', 'F', boundaryExteriorA, '1', boundaryExteriorB, '2'}
	}
	if boundaryTouch {
		return DE9IM{'F', '1', '1', '1', '0', '1', '1', '1', '2'}
	}
	return disjointRelate(a, b)
}

// approximateRelate derives a plausible matrix from the coarse battery
// of disjoint/touches/contains tests, for combinations not handled
// exactly above.
func approximateRelate(a, b geom.T) (DE9IM, error) {
	aBox, bBox := bboxOf(a), bboxOf(b)
	if !aBox.Intersects(bBox) {
		return disjointRelate(a, b), nil
	}
	contains, err := boundingBoxContains(aBox, bBox)
	if err != nil {
		return DE9IM{}, err
	}
	if contains {
		return DE9IM{byte('0' + dimensionOf(b)), 'F', byte('0' + dimensionOf(a)), 'F', 'F', 'F', 'F', 'F', '2'}, nil
	}
	return DE9IM{'F', '1', byte('0' + dimensionOf(a)), '1', '0', byte('0' + dimensionOf(a)), byte('0' + dimensionOf(b)), byte('0' + dimensionOf(b)), '2'}, nil
}

func boundingBoxContains(outer, inner bbox) (bool, error) {
	return outer.MinX <= inner.MinX && outer.MaxX >= inner.MaxX &&
		outer.MinY <= inner.MinY && outer.MaxY >= inner.MaxY, nil
}
