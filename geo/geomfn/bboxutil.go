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
)

// bbox is a lightweight axis-aligned XY box computed directly off a
// geom.T's flat coordinates, used for the cheap short-circuits that
// precede the exact predicate/overlay algorithms below.
type bbox struct {
	MinX, MinY, MaxX, MaxY float64
}

func bboxOf(t geom.T) bbox {
	b := bbox{MinX: math.MaxFloat64, MinY: math.MaxFloat64, MaxX: -math.MaxFloat64, MaxY: -math.MaxFloat64}
	flat := t.FlatCoords()
	stride := t.Stride()
	if stride == 0 {
		return b
	}
	for i := 0; i+1 < len(flat); i += stride {
		x, y := flat[i], flat[i+1]
		b.MinX = math.Min(b.MinX, x)
		b.MaxX = math.Max(b.MaxX, x)
		b.MinY = math.Min(b.MinY, y)
		b.MaxY = math.Max(b.MaxY, y)
	}
	return b
}

// Intersects reports whether two bounding boxes overlap or touch.
func (b bbox) Intersects(other bbox) bool {
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// DistanceGreaterThan reports whether b and other are unambiguously more
// than d apart.
func (b bbox) DistanceGreaterThan(other bbox, d float64) bool {
	dx := math.Max(0, math.Max(b.MinX-other.MaxX, other.MinX-b.MaxX))
	dy := math.Max(0, math.Max(b.MinY-other.MaxY, other.MinY-b.MaxY))
	return math.Hypot(dx, dy) > d
}
