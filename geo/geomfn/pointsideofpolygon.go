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

// linearRingSide classifies a point's position relative to a ring.
type linearRingSide int

const (
	insideLinearRing linearRingSide = iota
	onLinearRing
	outsideLinearRing
)

// findPointSideOfPolygon classifies point's position relative to
// polygon, accounting for holes: a point strictly inside a hole is
// outsideLinearRing, and a point on any ring (exterior or hole) is
// onLinearRing.
func findPointSideOfPolygon(point geom.T, polygon geom.T) (linearRingSide, error) {
	pt, ok := point.(*geom.Point)
	if !ok {
		return outsideLinearRing, geo.NewUnsupportedGeometryError("expected a Point, got %T", point)
	}
	poly, ok := polygon.(*geom.Polygon)
	if !ok {
		return outsideLinearRing, geo.NewUnsupportedGeometryError("expected a Polygon, got %T", polygon)
	}
	if poly.NumLinearRings() == 0 {
		return outsideLinearRing, nil
	}
	x, y := pt.X(), pt.Y()

	exteriorSide := classifyPointAgainstRing(x, y, poly.LinearRing(0))
	if exteriorSide == onLinearRing || exteriorSide == outsideLinearRing {
		return exteriorSide, nil
	}
	for i := 1; i < poly.NumLinearRings(); i++ {
		holeSide := classifyPointAgainstRing(x, y, poly.LinearRing(i))
		switch holeSide {
		case onLinearRing:
			return onLinearRing, nil
		case insideLinearRing:
			// Strictly inside a hole means strictly outside the polygon.
			return outsideLinearRing, nil
		}
	}
	return insideLinearRing, nil
}

// classifyPointAgainstRing classifies (x, y) against a single ring,
// ignoring any other rings of the enclosing polygon, using an even-odd
// crossing-number test with an explicit on-segment check so boundary
// points are never misreported as strictly inside or outside.
func classifyPointAgainstRing(x, y float64, ring *geom.LinearRing) linearRingSide {
	flat := ring.FlatCoords()
	stride := ring.Layout().Stride()
	n := len(flat) / stride
	if n < 3 {
		return outsideLinearRing
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := flat[i*stride], flat[i*stride+1]
		xj, yj := flat[j*stride], flat[j*stride+1]

		if onSegment(x, y, xi, yi, xj, yj) {
			return onLinearRing
		}

		if (yi > y) != (yj > y) {
			xIntersect := xi + (y-yi)*(xj-xi)/(yj-yi)
			if x < xIntersect {
				inside = !inside
			}
		}
	}
	if inside {
		return insideLinearRing
	}
	return outsideLinearRing
}

// onSegment reports whether (x, y) lies on the closed segment from
// (x1, y1) to (x2, y2).
func onSegment(x, y, x1, y1, x2, y2 float64) bool {
	cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
	if cross != 0 {
		return false
	}
	return x >= min(x1, x2) && x <= max(x1, x2) && y >= min(y1, y2) && y <= max(y1, y2)
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
