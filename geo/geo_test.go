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
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/LucaCappelletti94/geolite/geo/geopb"
)

func TestMakeGeometryFromGeomTRoundTripsThroughEWKB(t *testing.T) {
	pt := geom.NewPointFlat(geom.XY, []float64{1, 2}).SetSRID(4326)
	g, err := MakeGeometryFromGeomT(pt)
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(4326), g.SRID())
	require.Equal(t, geopb.ShapeType_Point, g.ShapeType())
	require.False(t, g.Empty())

	back, err := ParseGeometryFromEWKB(g.EWKB())
	require.NoError(t, err)
	require.Equal(t, g.SRID(), back.SRID())
	require.Equal(t, g.ShapeType(), back.ShapeType())
}

func TestGeometryBoundingBox(t *testing.T) {
	ls := geom.NewLineStringFlat(geom.XY, []float64{0, 0, 3, 4})
	g, err := MakeGeometryFromGeomT(ls)
	require.NoError(t, err)

	box, ok := g.BoundingBox()
	require.True(t, ok)
	require.Equal(t, geopb.BoundingBox{MinX: 0, MinY: 0, MaxX: 3, MaxY: 4}, box)
}

func TestEmptyGeometryHasNoBoundingBox(t *testing.T) {
	gc := geom.NewGeometryCollection()
	g, err := MakeGeometryFromGeomT(gc)
	require.NoError(t, err)
	require.True(t, g.Empty())

	_, ok := g.BoundingBox()
	require.False(t, ok)
}

func TestSetSRIDPatchesWithoutReencoding(t *testing.T) {
	pt := geom.NewPointFlat(geom.XY, []float64{5, 6}).SetSRID(0)
	g, err := MakeGeometryFromGeomT(pt)
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(0), g.SRID())

	reSRID, err := g.SetSRID(4326)
	require.NoError(t, err)
	require.Equal(t, geopb.SRID(4326), reSRID.SRID())

	t2, err := reSRID.AsGeomT()
	require.NoError(t, err)
	require.Equal(t, 4326, t2.SRID())
}

func TestGeometryStringIsWKT(t *testing.T) {
	pt := geom.NewPointFlat(geom.XY, []float64{1, 2})
	g, err := MakeGeometryFromGeomT(pt)
	require.NoError(t, err)
	require.Equal(t, "POINT (1 2)", g.String())
}

func TestNewGeometryFromGeomIsAnAliasForMake(t *testing.T) {
	pt := geom.NewPointFlat(geom.XY, []float64{1, 2})
	a, err := MakeGeometryFromGeomT(pt)
	require.NoError(t, err)
	b, err := NewGeometryFromGeom(pt)
	require.NoError(t, err)
	require.Equal(t, a.EWKB(), b.EWKB())
}
