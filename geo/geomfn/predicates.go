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
	"github.com/LucaCappelletti94/geolite/geo"
	"github.com/LucaCappelletti94/geolite/geo/geopb"
)

func isPointKind(shape geopb.ShapeType) bool {
	return shape == geopb.ShapeType_Point || shape == geopb.ShapeType_MultiPoint
}

func isPolygonKind(shape geopb.ShapeType) bool {
	return shape == geopb.ShapeType_Polygon || shape == geopb.ShapeType_MultiPolygon
}

// Intersects returns whether a and b share at least one point.
func Intersects(a, b geo.Geometry) (bool, error) {
	if a.Empty() || b.Empty() {
		return false, nil
	}
	if isPointKind(a.ShapeType()) && isPolygonKind(b.ShapeType()) {
		return PointKindIntersectsPolygonKind(a, b)
	}
	if isPointKind(b.ShapeType()) && isPolygonKind(a.ShapeType()) {
		return PointKindIntersectsPolygonKind(b, a)
	}
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.Matches("T********")
}

// Disjoint returns whether a and b share no points.
func Disjoint(a, b geo.Geometry) (bool, error) {
	v, err := Intersects(a, b)
	return !v, err
}

// Contains returns whether no point of b lies in the exterior of a, and
// at least one point of b's interior lies in a's interior.
func Contains(a, b geo.Geometry) (bool, error) {
	if a.Empty() || b.Empty() {
		return false, nil
	}
	if isPointKind(b.ShapeType()) && isPolygonKind(a.ShapeType()) {
		return PointKindWithinPolygonKind(b, a)
	}
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.Matches("T*****FF*")
}

// Within returns whether every point of a lies in b, with at least one
// interior point of a in the interior of b.
func Within(a, b geo.Geometry) (bool, error) {
	return Contains(b, a)
}

// Covers returns whether every point of b lies in a (boundary points of
// b on the boundary of a are allowed, unlike Contains's stricter
// interior-overlap requirement).
func Covers(a, b geo.Geometry) (bool, error) {
	if a.Empty() || b.Empty() {
		return false, nil
	}
	if isPointKind(b.ShapeType()) && isPolygonKind(a.ShapeType()) {
		return PointKindCoveredByPolygonKind(b, a)
	}
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	// b has no point in a's exterior and meets a's interior or boundary.
	for _, p := range []string{"T*****FF*", "*T****FF*", "***T**FF*", "****T*FF*"} {
		ok, err := m.Matches(p)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// CoveredBy returns whether every point of a lies in b.
func CoveredBy(a, b geo.Geometry) (bool, error) {
	return Covers(b, a)
}

// Equals returns whether a and b represent the same set of points.
func Equals(a, b geo.Geometry) (bool, error) {
	if a.Empty() && b.Empty() {
		return true, nil
	}
	if a.Empty() != b.Empty() {
		return false, nil
	}
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.Matches("T*F**FFF*")
}

// Touches returns whether a and b have at least one point in common, but
// their interiors do not intersect.
func Touches(a, b geo.Geometry) (bool, error) {
	if a.Empty() || b.Empty() {
		return false, nil
	}
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	patterns := []string{"FT*******", "F**T*****", "F***T****"}
	for _, p := range patterns {
		ok, err := m.Matches(p)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Crosses returns whether a and b intersect in a geometry of lower
// dimension than the greater of their own dimensions, with interiors
// intersecting but neither containing the other.
func Crosses(a, b geo.Geometry) (bool, error) {
	if a.Empty() || b.Empty() {
		return false, nil
	}
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	at, err := a.AsGeomT()
	if err != nil {
		return false, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return false, err
	}
	switch da, db := dimensionOf(at), dimensionOf(bt); {
	case da == db && da != 1:
		return false, nil
	case da == 1 && db == 1:
		return m.Matches("0********")
	case da > db:
		return m.Matches("T*****T**")
	}
	return m.Matches("T*T******")
}

// Overlaps returns whether a and b intersect in their interiors and
// neither contains the other.
func Overlaps(a, b geo.Geometry) (bool, error) {
	if a.Empty() || b.Empty() {
		return false, nil
	}
	m, err := Relate(a, b)
	if err != nil {
		return false, err
	}
	return m.Matches("T*T***T**")
}

// DWithin returns whether a and b are within d of each other, exploiting
// the bounding-box short-circuit before falling back to exact distance.
func DWithin(a, b geo.Geometry, d float64) (bool, error) {
	if d < 0 {
		return false, geo.NewInvalidArgumentError("distance must be non-negative, got %f", d)
	}
	if a.Empty() || b.Empty() {
		return false, nil
	}
	at, err := a.AsGeomT()
	if err != nil {
		return false, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return false, err
	}
	if bboxOf(at).DistanceGreaterThan(bboxOf(bt), d) {
		return false, nil
	}
	dist, err := Distance(a, b)
	if err != nil {
		return false, err
	}
	return dist <= d, nil
}
