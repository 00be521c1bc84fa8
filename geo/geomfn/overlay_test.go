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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LucaCappelletti94/geolite/geo"
)

func TestIntersectionOfOverlappingSquares(t *testing.T) {
	a := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	b := mustParse(t, "POLYGON((2 2, 6 2, 6 6, 2 6, 2 2))")

	inter, err := Intersection(a, b)
	require.NoError(t, err)
	area, err := Area(inter)
	require.NoError(t, err)
	require.InDelta(t, 4.0, area, 1e-6)
}

func TestIntersectionOfDisjointSquaresIsEmpty(t *testing.T) {
	a := mustParse(t, "POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))")
	b := mustParse(t, "POLYGON((100 100, 101 100, 101 101, 100 101, 100 100))")

	inter, err := Intersection(a, b)
	require.NoError(t, err)
	require.True(t, inter.Empty())
}

func TestUnionOfDisjointSquaresIsACollectionOfBoth(t *testing.T) {
	a := mustParse(t, "POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))")
	b := mustParse(t, "POLYGON((100 100, 101 100, 101 101, 100 101, 100 100))")

	union, err := Union(a, b)
	require.NoError(t, err)
	require.False(t, union.Empty())
	require.Equal(t, "GeometryCollection", union.ShapeType().String())
}

func TestDifferenceOfDisjointSquaresIsA(t *testing.T) {
	a := mustParse(t, "POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))")
	b := mustParse(t, "POLYGON((100 100, 101 100, 101 101, 100 101, 100 100))")

	diff, err := Difference(a, b)
	require.NoError(t, err)
	areaDiff, err := Area(diff)
	require.NoError(t, err)
	areaA, err := Area(a)
	require.NoError(t, err)
	require.InDelta(t, areaA, areaDiff, 1e-9)
}

func TestSymDifferenceOfOverlappingSquares(t *testing.T) {
	a := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	b := mustParse(t, "POLYGON((2 2, 6 2, 6 6, 2 6, 2 2))")

	symDiff, err := SymDifference(a, b)
	require.NoError(t, err)
	require.False(t, symDiff.Empty())
}

func TestDifferenceOfNestedSquaresProducesAHoledPolygon(t *testing.T) {
	outer := mustParse(t, "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))")
	inner := mustParse(t, "POLYGON((3 3, 7 3, 7 7, 3 7, 3 3))")

	diff, err := Difference(outer, inner)
	require.NoError(t, err)
	area, err := Area(diff)
	require.NoError(t, err)
	require.InDelta(t, 84.0, area, 1e-6)
}

func TestUnionOfHoledPolygonWithItsHoleFillsTheHole(t *testing.T) {
	holed := mustParse(t, "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0),(3 3, 7 3, 7 7, 3 7, 3 3))")
	hole := mustParse(t, "POLYGON((3 3, 7 3, 7 7, 3 7, 3 3))")

	union, err := Union(holed, hole)
	require.NoError(t, err)
	area, err := Area(union)
	require.NoError(t, err)
	require.InDelta(t, 100.0, area, 1e-6)
}

func TestIntersectionOfHoledPolygonWithOverlapExcludesTheHole(t *testing.T) {
	holed := mustParse(t, "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0),(3 3, 7 3, 7 7, 3 7, 3 3))")
	slab := mustParse(t, "POLYGON((2 2, 8 2, 8 8, 2 8, 2 2))")

	inter, err := Intersection(holed, slab)
	require.NoError(t, err)
	area, err := Area(inter)
	require.NoError(t, err)
	// slab (36) minus the 3x3..7x7 hole it overlaps (16).
	require.InDelta(t, 20.0, area, 1e-6)
}

func TestOverlayRejectsMismatchingSRIDs(t *testing.T) {
	a, err := geo.ParseGeometry("POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))", 4326)
	require.NoError(t, err)
	b, err := geo.ParseGeometry("POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))", 3857)
	require.NoError(t, err)

	_, err = Union(a, b)
	require.Error(t, err)
}
