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
	"strings"

	"github.com/twpayne/go-geom"
	geomewkb "github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbcommon"
	"github.com/twpayne/go-geom/encoding/wkbhex"

	"github.com/LucaCappelletti94/geolite/geo/geopb"
	"github.com/LucaCappelletti94/geolite/geo/wkt"
)

// DefaultGeoJSONDecimalDigits is the default number of digits coordinates
// carry in GeoJSON output, matching PostGIS's ST_AsGeoJSON default.
const DefaultGeoJSONDecimalDigits = 9

// SpatialObjectToWKT transforms a given SpatialObject to WKT.
func SpatialObjectToWKT(so geopb.SpatialObject) (geopb.WKT, error) {
	t, err := geomewkb.Unmarshal([]byte(so.EWKB))
	if err != nil {
		return "", NewParseError("ewkb", 0, err.Error())
	}
	ret, err := wkt.Marshal(t)
	if err != nil {
		return "", NewParseError("wkt", 0, err.Error())
	}
	return geopb.WKT(ret), nil
}

// SpatialObjectToEWKT transforms a given SpatialObject to EWKT.
func SpatialObjectToEWKT(so geopb.SpatialObject) (geopb.EWKT, error) {
	t, err := geomewkb.Unmarshal([]byte(so.EWKB))
	if err != nil {
		return "", NewParseError("ewkb", 0, err.Error())
	}
	ret, err := wkt.MarshalEWKT(t, int(so.SRID))
	if err != nil {
		return "", NewParseError("wkt", 0, err.Error())
	}
	return geopb.EWKT(ret), nil
}

// SpatialObjectToWKB transforms a given SpatialObject to WKB in the given
// byte order.
func SpatialObjectToWKB(so geopb.SpatialObject, byteOrder binary.ByteOrder) ([]byte, error) {
	t, err := geomewkb.Unmarshal([]byte(so.EWKB))
	if err != nil {
		return nil, NewParseError("ewkb", 0, err.Error())
	}
	ret, err := wkb.Marshal(t, byteOrder, wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
	if err != nil {
		return nil, NewParseError("wkb", 0, err.Error())
	}
	return ret, nil
}

// SpatialObjectToEWKB transforms a given SpatialObject to EWKB in the given
// byte order, re-encoding if the requested order differs from the
// canonical little-endian storage format.
func SpatialObjectToEWKB(so geopb.SpatialObject, byteOrder binary.ByteOrder) (geopb.EWKB, error) {
	if byteOrder == DefaultEWKBEncodingFormat {
		return so.EWKB, nil
	}
	t, err := geomewkb.Unmarshal([]byte(so.EWKB))
	if err != nil {
		return nil, NewParseError("ewkb", 0, err.Error())
	}
	ret, err := geomewkb.Marshal(t, byteOrder)
	if err != nil {
		return nil, NewParseError("ewkb", 0, err.Error())
	}
	return geopb.EWKB(ret), nil
}

// GeoJSONFlag maps to the ST_AsGeoJSON option flags of PostGIS.
type GeoJSONFlag int

// GeoJSON option flags, matching ST_AsGeoJSON's bitmask in PostGIS:
//
//	0: no option
//	1: include a "bbox" member
const (
	GeoJSONFlagIncludeBBox GeoJSONFlag = 1 << iota

	GeoJSONFlagZero GeoJSONFlag = 0
)

// SpatialObjectToGeoJSON transforms a given SpatialObject to GeoJSON,
// following RFC 7946 axis order. No legacy "crs" member is ever emitted.
func SpatialObjectToGeoJSON(
	so geopb.SpatialObject, maxDecimalDigits int, flag GeoJSONFlag,
) ([]byte, error) {
	t, err := geomewkb.Unmarshal([]byte(so.EWKB))
	if err != nil {
		return nil, NewParseError("ewkb", 0, err.Error())
	}
	if layout := t.Layout(); layout == geom.XYM || layout == geom.XYZM {
		return nil, NewDimensionMismatchError("ST_AsGeoJSON: XYM and XYZM geometries are not supported, got %s", layout)
	}
	options := []geojson.EncodeGeometryOption{
		geojson.EncodeGeometryWithMaxDecimalDigits(maxDecimalDigits),
	}
	if flag&GeoJSONFlagIncludeBBox != 0 && so.BoundingBox != nil && !so.BoundingBox.Empty {
		options = append(options, geojson.EncodeGeometryWithBBox())
	}
	b, err := geojson.Marshal(t, options...)
	if err != nil {
		return nil, NewParseError("geojson", 0, err.Error())
	}
	return b, nil
}

// SpatialObjectToWKBHex transforms a given SpatialObject to upper-case
// hex-encoded WKB.
func SpatialObjectToWKBHex(so geopb.SpatialObject) (string, error) {
	t, err := geomewkb.Unmarshal([]byte(so.EWKB))
	if err != nil {
		return "", NewParseError("ewkb", 0, err.Error())
	}
	ret, err := wkbhex.Encode(t, DefaultEWKBEncodingFormat, wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN))
	if err != nil {
		return "", NewParseError("wkbhex", 0, err.Error())
	}
	return strings.ToUpper(ret), nil
}

// StringToByteOrder returns the byte order named by s, matching PostGIS's
// ST_AsBinary "NDR"/"XDR" endianness argument.
func StringToByteOrder(s string) binary.ByteOrder {
	switch strings.ToLower(s) {
	case "ndr":
		return binary.LittleEndian
	case "xdr":
		return binary.BigEndian
	default:
		return DefaultEWKBEncodingFormat
	}
}
