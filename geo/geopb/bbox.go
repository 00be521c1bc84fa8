// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geopb

import "math"

// BoundingBox is an axis-aligned rectangle in the XY plane. Empty
// geometries have no defined extent; Empty is set instead of relying on
// sentinel coordinate values, since a sentinel that happens to collide
// with a legitimate coordinate cannot be distinguished from real data.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
	Empty                  bool
}

// NewBoundingBox returns an empty bounding box ready to be grown with
// Update.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		MinX:  math.MaxFloat64,
		MaxX:  -math.MaxFloat64,
		MinY:  math.MaxFloat64,
		MaxY:  -math.MaxFloat64,
		Empty: true,
	}
}

// Update grows the BoundingBox to include (x, y).
func (b *BoundingBox) Update(x, y float64) {
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
	b.Empty = false
}

// Union returns the smallest BoundingBox containing both b and other. If
// either is empty, the other is returned unchanged.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	if b.Empty {
		return other
	}
	if other.Empty {
		return b
	}
	return BoundingBox{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// Intersects returns whether the two bounding boxes overlap. Two empty
// boxes, or a box compared against an empty one, never intersect.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	if b.Empty || other.Empty {
		return false
	}
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// DistanceGreaterThan returns whether the two boxes are unambiguously
// more than d apart, i.e. no point in b can be within d of any point in
// other. Used by DWithin's bounding-box short circuit.
func (b BoundingBox) DistanceGreaterThan(other BoundingBox, d float64) bool {
	if b.Empty || other.Empty {
		return true
	}
	dx := math.Max(0, math.Max(b.MinX-other.MaxX, other.MinX-b.MaxX))
	dy := math.Max(0, math.Max(b.MinY-other.MaxY, other.MinY-b.MaxY))
	return math.Hypot(dx, dy) > d
}
