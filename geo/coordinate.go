// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geo

import (
	"math"

	"github.com/twpayne/go-geom"
)

// Dim is the dimensionality flag carried by a whole geometry: every
// coordinate within one geometry shares the same Dim.
type Dim int

// Dim values, matching go-geom's Layout enum so conversions are direct.
const (
	DimXY   Dim = Dim(geom.XY)
	DimXYZ  Dim = Dim(geom.XYZ)
	DimXYM  Dim = Dim(geom.XYM)
	DimXYZM Dim = Dim(geom.XYZM)
)

// Layout converts a Dim to the go-geom Layout used to build geom.T
// values.
func (d Dim) Layout() geom.Layout {
	return geom.Layout(d)
}

// DimFromLayout converts a go-geom Layout into our Dim.
func DimFromLayout(l geom.Layout) Dim {
	return Dim(l)
}

// Coordinate is a tuple of finite IEEE-754 doubles. Z and M are carried
// only when the enclosing geometry's Dim says so; a Coordinate on its own
// does not know which of its fields are meaningful.
type Coordinate struct {
	X, Y, Z, M float64
}

// NewCoordinate constructs a 2D Coordinate, rejecting non-finite inputs.
func NewCoordinate(x, y float64) (Coordinate, error) {
	if !isFinite(x) || !isFinite(y) {
		return Coordinate{}, NewInvalidArgumentError("non-finite coordinate (%f, %f)", x, y)
	}
	return Coordinate{X: x, Y: y}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Equal reports bitwise equality on the dimensions d carries, treating
// -0.0 and +0.0 as equal.
func (c Coordinate) Equal(other Coordinate, d Dim) bool {
	if !eqZero(c.X, other.X) || !eqZero(c.Y, other.Y) {
		return false
	}
	if d.Layout().ZIndex() >= 0 && !eqZero(c.Z, other.Z) {
		return false
	}
	if d.Layout().MIndex() >= 0 && !eqZero(c.M, other.M) {
		return false
	}
	return true
}

func eqZero(a, b float64) bool {
	if a == 0 && b == 0 {
		return true
	}
	return a == b
}
