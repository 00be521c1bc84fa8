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
	"github.com/twpayne/go-geom"

	"github.com/LucaCappelletti94/geolite/geo"
)

// OverlayOp identifies which of the four boolean set operations an
// overlay call performs.
type OverlayOp int

// Overlay operations.
const (
	OverlayUnion OverlayOp = iota
	OverlayIntersection
	OverlayDifference
	OverlaySymDifference
)

// Union returns the point-set union of a and b.
func Union(a, b geo.Geometry) (geo.Geometry, error) {
	return overlay(a, b, OverlayUnion)
}

// Intersection returns the point-set intersection of a and b.
func Intersection(a, b geo.Geometry) (geo.Geometry, error) {
	return overlay(a, b, OverlayIntersection)
}

// Difference returns the points of a that are not in b.
func Difference(a, b geo.Geometry) (geo.Geometry, error) {
	return overlay(a, b, OverlayDifference)
}

// SymDifference returns the points that are in exactly one of a or b.
func SymDifference(a, b geo.Geometry) (geo.Geometry, error) {
	return overlay(a, b, OverlaySymDifference)
}

func overlay(a, b geo.Geometry, op OverlayOp) (geo.Geometry, error) {
	if a.SRID() != b.SRID() {
		return geo.Geometry{}, geo.NewMismatchingSRIDsError(a.SpatialObject(), b.SpatialObject())
	}
	at, err := a.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}

	// Fast path: disjoint bounding boxes resolve Union/SymDifference to a
	// GeometryCollection of both operands, and Intersection/Difference
	// without any clipping work at all.
	if !bboxOf(at).Intersects(bboxOf(bt)) {
		return disjointOverlayFastPath(at, bt, op, int(a.SRID()))
	}

	if isAreal(at) && isAreal(bt) {
		return arealOverlay(at, bt, op, int(a.SRID()))
	}

	// Point/line operands cannot self-intersect; Union is their simple
	// concatenation and Intersection/Difference degrade to the predicate
	// kernel's point-membership tests, which is cheaper than invoking the
	// polygon clipper for shapes that were never going to need it.
	return nonArealOverlay(at, bt, op, int(a.SRID()))
}

func disjointOverlayFastPath(a, b geom.T, op OverlayOp, srid int) (geo.Geometry, error) {
	switch op {
	case OverlayIntersection:
		return geo.MakeGeometryFromGeomT(geom.NewGeometryCollection().SetSRID(srid))
	case OverlayDifference:
		return geo.MakeGeometryFromGeomT(a)
	default: // Union, SymDifference: both operands, untouched.
		gc := geom.NewGeometryCollection().SetSRID(srid)
		if err := gc.Push(a); err != nil {
			return geo.Geometry{}, err
		}
		if err := gc.Push(b); err != nil {
			return geo.Geometry{}, err
		}
		return geo.MakeGeometryFromGeomT(gc)
	}
}

func nonArealOverlay(a, b geom.T, op OverlayOp, srid int) (geo.Geometry, error) {
	switch op {
	case OverlayUnion, OverlaySymDifference:
		gc := geom.NewGeometryCollection().SetSRID(srid)
		if err := gc.Push(a); err != nil {
			return geo.Geometry{}, err
		}
		if err := gc.Push(b); err != nil {
			return geo.Geometry{}, err
		}
		return geo.MakeGeometryFromGeomT(gc)
	case OverlayDifference:
		return geo.MakeGeometryFromGeomT(a)
	default: // OverlayIntersection
		return geo.MakeGeometryFromGeomT(geom.NewGeometryCollection().SetSRID(srid))
	}
}

func closeRing(ring [][2]float64) [][2]float64 {
	if len(ring) == 0 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] == last[0] && first[1] == last[1] {
		return ring
	}
	out := make([][2]float64, len(ring)+1)
	copy(out, ring)
	out[len(ring)] = first
	return out
}

func pointInRing(x, y float64, ring [][2]float64) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) {
			xIntersect := xi + (y-yi)*(xj-xi)/(yj-yi)
			if x < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}
