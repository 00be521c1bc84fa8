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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LucaCappelletti94/geolite/geo"
)

func TestAreaOfSquare(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	area, err := Area(g)
	require.NoError(t, err)
	require.InDelta(t, 16.0, area, 1e-9)
}

func TestAreaSubtractsHoles(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0), (2 2, 4 2, 4 4, 2 4, 2 2))")
	area, err := Area(g)
	require.NoError(t, err)
	require.InDelta(t, 96.0, area, 1e-9)
}

func TestAreaOfPointIsZero(t *testing.T) {
	g := mustParse(t, "POINT(1 1)")
	area, err := Area(g)
	require.NoError(t, err)
	require.Zero(t, area)
}

func TestLengthOfLineString(t *testing.T) {
	g := mustParse(t, "LINESTRING(0 0, 3 0, 3 4)")
	length, err := Length(g)
	require.NoError(t, err)
	require.InDelta(t, 7.0, length, 1e-9)
}

func TestPerimeterOfSquare(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	perimeter, err := Perimeter(g)
	require.NoError(t, err)
	require.InDelta(t, 16.0, perimeter, 1e-9)
}

func TestCentroidOfSquare(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	c, err := Centroid(g)
	require.NoError(t, err)
	pt, err := c.AsGeomT()
	require.NoError(t, err)
	require.InDelta(t, 2.0, pt.FlatCoords()[0], 1e-9)
	require.InDelta(t, 2.0, pt.FlatCoords()[1], 1e-9)
}

func TestCentroidOfEmptyYieldsEmptyPoint(t *testing.T) {
	g := mustParse(t, "GEOMETRYCOLLECTION EMPTY")
	c, err := Centroid(g)
	require.NoError(t, err)
	require.True(t, c.Empty())
	require.Equal(t, g.SRID(), c.SRID())
}

func TestPointOnSurfaceLiesAmongVertices(t *testing.T) {
	g := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	p, err := PointOnSurface(g)
	require.NoError(t, err)
	require.False(t, p.Empty())
	pt, err := p.AsGeomT()
	require.NoError(t, err)
	require.Contains(t, [][]float64{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, pt.FlatCoords())
}

func TestEnvelopeOfLineStringIsPolygon(t *testing.T) {
	g := mustParse(t, "LINESTRING(0 0, 3 4)")
	env, err := Envelope(g)
	require.NoError(t, err)
	area, err := Area(env)
	require.NoError(t, err)
	require.InDelta(t, 12.0, area, 1e-9)
}

func TestEnvelopeOfSinglePointIsPoint(t *testing.T) {
	g := mustParse(t, "POINT(1 1)")
	env, err := Envelope(g)
	require.NoError(t, err)
	require.Equal(t, "Point", env.ShapeType().String())
}

func TestDistanceBetweenPoints(t *testing.T) {
	a := mustParse(t, "POINT(0 0)")
	b := mustParse(t, "POINT(3 4)")
	d, err := Distance(a, b)
	require.NoError(t, err)
	require.InDelta(t, 5.0, d, 1e-9)
}

func TestDistanceRejectsMismatchingSRIDs(t *testing.T) {
	a, err := geo.ParseGeometry("POINT(0 0)", 4326)
	require.NoError(t, err)
	b, err := geo.ParseGeometry("POINT(1 1)", 3857)
	require.NoError(t, err)
	_, err = Distance(a, b)
	require.Error(t, err)
}

func TestDistanceOfIntersectingGeometriesIsZero(t *testing.T) {
	poly := mustParse(t, "POLYGON((0 0, 4 0, 4 4, 0 4, 0 0))")
	pt := mustParse(t, "POINT(2 2)")
	d, err := Distance(poly, pt)
	require.NoError(t, err)
	require.Zero(t, d)
}

func TestHausdorffDistanceOfIdenticalGeometriesIsZero(t *testing.T) {
	a := mustParse(t, "LINESTRING(0 0, 1 1, 2 0)")
	b := mustParse(t, "LINESTRING(0 0, 1 1, 2 0)")
	d, err := HausdorffDistance(a, b)
	require.NoError(t, err)
	require.Zero(t, d)
}

func TestAzimuthOfCardinalDirections(t *testing.T) {
	origin := mustParse(t, "POINT(0 0)")
	north := mustParse(t, "POINT(0 1)")
	east := mustParse(t, "POINT(1 0)")

	az, err := Azimuth(origin, north)
	require.NoError(t, err)
	require.InDelta(t, 0.0, az, 1e-9)

	az, err = Azimuth(origin, east)
	require.NoError(t, err)
	require.InDelta(t, math.Pi/2, az, 1e-9)
}

func TestAzimuthRejectsCoincidentPoints(t *testing.T) {
	a := mustParse(t, "POINT(1 1)")
	_, err := Azimuth(a, a)
	require.Error(t, err)
}

func TestProjectMovesAlongAzimuth(t *testing.T) {
	origin := mustParse(t, "POINT(0 0)")
	moved, err := Project(origin, 5, math.Pi/2)
	require.NoError(t, err)
	pt, err := moved.AsGeomT()
	require.NoError(t, err)
	require.InDelta(t, 5.0, pt.FlatCoords()[0], 1e-9)
	require.InDelta(t, 0.0, pt.FlatCoords()[1], 1e-9)
}

func TestClosestPointOnLineToExternalPoint(t *testing.T) {
	line := mustParse(t, "LINESTRING(0 0, 10 0)")
	ext := mustParse(t, "POINT(5 5)")
	p, err := ClosestPoint(line, ext)
	require.NoError(t, err)
	pt, err := p.AsGeomT()
	require.NoError(t, err)
	require.InDelta(t, 5.0, pt.FlatCoords()[0], 1e-9)
	require.InDelta(t, 0.0, pt.FlatCoords()[1], 1e-9)
}
