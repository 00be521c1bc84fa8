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
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestSpatialObjectToWKT(t *testing.T) {
	g, err := ParseGeometry("POINT(1 2)", 0)
	require.NoError(t, err)

	wkt, err := SpatialObjectToWKT(g.SpatialObject())
	require.NoError(t, err)
	require.Equal(t, "POINT (1 2)", string(wkt))
}

func TestSpatialObjectToEWKT(t *testing.T) {
	g, err := ParseGeometry("POINT(1 2)", 4326)
	require.NoError(t, err)

	ewkt, err := SpatialObjectToEWKT(g.SpatialObject())
	require.NoError(t, err)
	require.Equal(t, "SRID=4326;POINT (1 2)", string(ewkt))
}

func TestSpatialObjectToWKBAndBackMatchesOriginal(t *testing.T) {
	g, err := ParseGeometry("LINESTRING(0 0, 1 1)", 0)
	require.NoError(t, err)

	wkb, err := SpatialObjectToWKB(g.SpatialObject(), binary.LittleEndian)
	require.NoError(t, err)
	require.NotEmpty(t, wkb)

	back, err := ParseGeometry(string(wkb), 0)
	require.NoError(t, err)
	require.Equal(t, g.ShapeType(), back.ShapeType())
	backT, err := back.AsGeomT()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 1, 1}, backT.FlatCoords())
}

func TestSpatialObjectToEWKBIsIdentityForCanonicalByteOrder(t *testing.T) {
	g, err := ParseGeometry("POINT(1 2)", 4326)
	require.NoError(t, err)

	ewkb, err := SpatialObjectToEWKB(g.SpatialObject(), DefaultEWKBEncodingFormat)
	require.NoError(t, err)
	require.Equal(t, g.EWKB(), ewkb)
}

func TestSpatialObjectToEWKBReencodesForOtherByteOrder(t *testing.T) {
	g, err := ParseGeometry("POINT(1 2)", 4326)
	require.NoError(t, err)

	ewkb, err := SpatialObjectToEWKB(g.SpatialObject(), binary.BigEndian)
	require.NoError(t, err)
	require.NotEqual(t, g.EWKB(), ewkb)
}

func TestSpatialObjectToGeoJSON(t *testing.T) {
	g, err := ParseGeometry("POINT(1 2)", 0)
	require.NoError(t, err)

	b, err := SpatialObjectToGeoJSON(g.SpatialObject(), DefaultGeoJSONDecimalDigits, GeoJSONFlagZero)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"Point","coordinates":[1,2]}`, string(b))
}

func TestSpatialObjectToGeoJSONRejectsXYM(t *testing.T) {
	pt := geom.NewPointFlat(geom.XYM, []float64{1, 2, 3})
	g, err := MakeGeometryFromGeomT(pt)
	require.NoError(t, err)

	_, err = SpatialObjectToGeoJSON(g.SpatialObject(), DefaultGeoJSONDecimalDigits, GeoJSONFlagZero)
	require.Error(t, err)
	kind, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, ErrorKindDimensionMismatch, kind.Kind)
}

func TestSpatialObjectToGeoJSONRejectsXYZM(t *testing.T) {
	pt := geom.NewPointFlat(geom.XYZM, []float64{1, 2, 3, 4})
	g, err := MakeGeometryFromGeomT(pt)
	require.NoError(t, err)

	_, err = SpatialObjectToGeoJSON(g.SpatialObject(), DefaultGeoJSONDecimalDigits, GeoJSONFlagZero)
	require.Error(t, err)
	kind, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, ErrorKindDimensionMismatch, kind.Kind)
}

func TestSpatialObjectToGeoJSONWithBBox(t *testing.T) {
	g, err := ParseGeometry("LINESTRING(0 0, 3 4)", 0)
	require.NoError(t, err)

	b, err := SpatialObjectToGeoJSON(g.SpatialObject(), DefaultGeoJSONDecimalDigits, GeoJSONFlagIncludeBBox)
	require.NoError(t, err)
	require.Contains(t, string(b), `"bbox"`)
}

func TestSpatialObjectToWKBHexIsUpperCase(t *testing.T) {
	g, err := ParseGeometry("POINT(1 2)", 0)
	require.NoError(t, err)

	hex, err := SpatialObjectToWKBHex(g.SpatialObject())
	require.NoError(t, err)
	require.Equal(t, hex, hex)
	for _, c := range hex {
		require.False(t, c >= 'a' && c <= 'f')
	}
}

func TestStringToByteOrder(t *testing.T) {
	require.Equal(t, binary.LittleEndian, StringToByteOrder("ndr"))
	require.Equal(t, binary.LittleEndian, StringToByteOrder("NDR"))
	require.Equal(t, binary.BigEndian, StringToByteOrder("xdr"))
	require.Equal(t, DefaultEWKBEncodingFormat, StringToByteOrder("unknown"))
}
