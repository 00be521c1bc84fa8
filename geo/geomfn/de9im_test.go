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

func TestDE9IMStringIsNineChars(t *testing.T) {
	m := DE9IM{'0', 'F', 'F', 'F', 'F', 'F', 'F', 'F', '2'}
	require.Equal(t, "0FFFFFFF2", m.String())
}

func TestDE9IMMatchesLiteral(t *testing.T) {
	m := DE9IM{'0', 'F', 'F', 'F', 'F', 'F', 'F', 'F', '2'}
	ok, err := m.Matches("0FFFFFFF2")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDE9IMMatchesWildcards(t *testing.T) {
	m := DE9IM{'0', 'F', 'F', 'F', 'F', 'F', 'F', 'F', '2'}
	ok, err := m.Matches("T********")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.Matches("*********")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDE9IMMatchesRejectsMismatch(t *testing.T) {
	m := DE9IM{'0', 'F', 'F', 'F', 'F', 'F', 'F', 'F', '2'}
	ok, err := m.Matches("1********")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDE9IMMatchesRejectsWrongLength(t *testing.T) {
	m := DE9IM{'0', 'F', 'F', 'F', 'F', 'F', 'F', 'F', '2'}
	_, err := m.Matches("0F")
	require.Error(t, err)
}

func TestDE9IMMatchesRejectsInvalidCharacter(t *testing.T) {
	m := DE9IM{'0', 'F', 'F', 'F', 'F', 'F', 'F', 'F', '2'}
	_, err := m.Matches("X********")
	require.Error(t, err)
}

func TestRelateEqualPointsAreEqual(t *testing.T) {
	a, err := geo.ParseGeometry("POINT(1 1)", 0)
	require.NoError(t, err)
	b, err := geo.ParseGeometry("POINT(1 1)", 0)
	require.NoError(t, err)

	m, err := Relate(a, b)
	require.NoError(t, err)
	require.Equal(t, byte('0'), m[de9imII])
	require.Equal(t, byte('2'), m[de9imEE])
}

func TestRelateDisjointGeometriesHaveDisjointMatrix(t *testing.T) {
	a, err := geo.ParseGeometry("POINT(0 0)", 0)
	require.NoError(t, err)
	b, err := geo.ParseGeometry("POINT(100 100)", 0)
	require.NoError(t, err)

	m, err := Relate(a, b)
	require.NoError(t, err)
	require.Equal(t, byte('F'), m[de9imII])
	require.Equal(t, byte('2'), m[de9imEE])
}

func TestRelatePointInsidePolygon(t *testing.T) {
	poly, err := geo.ParseGeometry("POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))", 0)
	require.NoError(t, err)
	pt, err := geo.ParseGeometry("POINT(2 2)", 0)
	require.NoError(t, err)

	m, err := Relate(poly, pt)
	require.NoError(t, err)
	require.Equal(t, byte('2'), m[de9imIE])
}

func TestRelatePointAtLineStringEndpoint(t *testing.T) {
	pt, err := geo.ParseGeometry("POINT(0 0)", 0)
	require.NoError(t, err)
	line, err := geo.ParseGeometry("LINESTRING(0 0, 1 0)", 0)
	require.NoError(t, err)

	m, err := Relate(pt, line)
	require.NoError(t, err)
	require.Equal(t, "F0FFFF102", m.String())
}

func TestRelatePointOnLineStringInterior(t *testing.T) {
	pt, err := geo.ParseGeometry("POINT(0.5 0)", 0)
	require.NoError(t, err)
	line, err := geo.ParseGeometry("LINESTRING(0 0, 1 0)", 0)
	require.NoError(t, err)

	m, err := Relate(pt, line)
	require.NoError(t, err)
	require.Equal(t, "0FFFFF102", m.String())
}

func TestRelatePointOffLineStringIsDisjoint(t *testing.T) {
	pt, err := geo.ParseGeometry("POINT(5 5)", 0)
	require.NoError(t, err)
	line, err := geo.ParseGeometry("LINESTRING(0 0, 1 0)", 0)
	require.NoError(t, err)

	m, err := Relate(pt, line)
	require.NoError(t, err)
	require.Equal(t, byte('F'), m[de9imII])
}

func TestRelateCrossingLinesWithNonContainingBoundingBoxesIntersect(t *testing.T) {
	a, err := geo.ParseGeometry("LINESTRING(0 0, 3 1)", 0)
	require.NoError(t, err)
	b, err := geo.ParseGeometry("LINESTRING(1 -1, 1 5)", 0)
	require.NoError(t, err)

	m, err := Relate(a, b)
	require.NoError(t, err)
	require.Equal(t, byte('0'), m[de9imII])

	ok, err := m.Matches("T********")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRelateLinesSharingOnlyAnEndpointTouch(t *testing.T) {
	a, err := geo.ParseGeometry("LINESTRING(0 0, 1 0)", 0)
	require.NoError(t, err)
	b, err := geo.ParseGeometry("LINESTRING(1 0, 1 1)", 0)
	require.NoError(t, err)

	m, err := Relate(a, b)
	require.NoError(t, err)
	require.Equal(t, byte('F'), m[de9imII])
	require.Equal(t, byte('1'), m[de9imIB])
}

func TestRelateRejectsMismatchingSRIDs(t *testing.T) {
	a, err := geo.ParseGeometry("POINT(0 0)", 4326)
	require.NoError(t, err)
	b, err := geo.ParseGeometry("POINT(1 1)", 3857)
	require.NoError(t, err)

	_, err = Relate(a, b)
	require.Error(t, err)
}
