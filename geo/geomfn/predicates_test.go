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

func mustParse(t *testing.T, s string) geo.Geometry {
	g, err := geo.ParseGeometry(s, 0)
	require.NoError(t, err)
	return g
}

func TestIntersectsPointInsidePolygon(t *testing.T) {
	poly := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	pt := mustParse(t, "POINT(2 2)")

	ok, err := Intersects(poly, pt)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestIntersectsDisjointIsFalse(t *testing.T) {
	a := mustParse(t, "POINT(0 0)")
	b := mustParse(t, "POINT(100 100)")

	ok, err := Intersects(a, b)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDisjointIsNegationOfIntersects(t *testing.T) {
	a := mustParse(t, "POINT(0 0)")
	b := mustParse(t, "POINT(100 100)")

	ok, err := Disjoint(a, b)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestContainsPointInsidePolygon(t *testing.T) {
	poly := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	pt := mustParse(t, "POINT(2 2)")

	ok, err := Contains(poly, pt)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestContainsPointOutsidePolygonIsFalse(t *testing.T) {
	poly := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	pt := mustParse(t, "POINT(20 20)")

	ok, err := Contains(poly, pt)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWithinIsReverseOfContains(t *testing.T) {
	poly := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	pt := mustParse(t, "POINT(2 2)")

	ok, err := Within(pt, poly)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCoversAndCoveredByAreInverses(t *testing.T) {
	poly := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	pt := mustParse(t, "POINT(2 2)")

	coversOk, err := Covers(poly, pt)
	require.NoError(t, err)
	coveredOk, err := CoveredBy(pt, poly)
	require.NoError(t, err)
	require.Equal(t, coversOk, coveredOk)
	require.True(t, coversOk)
}

func TestEqualsIdenticalPoints(t *testing.T) {
	a := mustParse(t, "POINT(1 1)")
	b := mustParse(t, "POINT(1 1)")

	ok, err := Equals(a, b)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEqualsDifferingPointsIsFalse(t *testing.T) {
	a := mustParse(t, "POINT(1 1)")
	b := mustParse(t, "POINT(2 2)")

	ok, err := Equals(a, b)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDWithinRejectsNegativeDistance(t *testing.T) {
	a := mustParse(t, "POINT(0 0)")
	b := mustParse(t, "POINT(1 1)")

	_, err := DWithin(a, b, -1)
	require.Error(t, err)
}

func TestDWithinTrueWhenWithinRange(t *testing.T) {
	a := mustParse(t, "POINT(0 0)")
	b := mustParse(t, "POINT(3 4)")

	ok, err := DWithin(a, b, 5)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = DWithin(a, b, 4)
	require.NoError(t, err)
	require.False(t, ok)
}
