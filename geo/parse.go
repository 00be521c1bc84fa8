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
	geomewkb "github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/ewkbhex"

	"github.com/LucaCappelletti94/geolite/geo/geopb"
	"github.com/LucaCappelletti94/geolite/geo/wkt"
)

// ParseGeometry parses text as a Geometry, using the leading character as
// a heuristic to disambiguate EWKB-hex, raw EWKB/WKB, and WKT/EWKT input,
// mirroring PostGIS's direct cast from text to GEOMETRY. defaultSRID is
// applied only when the parsed geometry does not already carry one.
func ParseGeometry(str string, defaultSRID geopb.SRID) (Geometry, error) {
	b, err := parseAmbiguousTextToEWKB(str, defaultSRID)
	if err != nil {
		return Geometry{}, err
	}
	return ParseGeometryFromEWKB(b)
}

// parseAmbiguousTextToEWKB parses str as one of EWKB-hex, raw EWKB/WKB, or
// WKT/EWKT, picked by its first character, and re-encodes it as canonical
// little-endian EWKB.
func parseAmbiguousTextToEWKB(str string, defaultSRID geopb.SRID) (geopb.EWKB, error) {
	if len(str) == 0 {
		return nil, NewParseError("text", 0, "parsing empty string to geometry")
	}

	// Parse as EWKB hex: PostGIS's wire format for geometry literals
	// starts with a hex-encoded byte-order marker, which is always an
	// ASCII digit ('0' or '1').
	if str[0] == '0' || str[0] == '1' {
		t, err := ewkbhex.Decode(str)
		if err != nil {
			return nil, NewParseError("ewkbhex", 0, err.Error())
		}
		if defaultSRID != 0 && t.SRID() == 0 {
			adjustGeomSRID(t, defaultSRID)
		}
		b, err := geomewkb.Marshal(t, DefaultEWKBEncodingFormat)
		if err != nil {
			return nil, NewParseError("ewkb", 0, err.Error())
		}
		return geopb.EWKB(b), nil
	}

	// Parse as raw EWKB/WKB if it starts with a byte-order marker byte.
	if str[0] == 0x00 || str[0] == 0x01 {
		t, err := geomewkb.Unmarshal([]byte(str))
		if err != nil {
			return nil, NewParseError("ewkb", 0, err.Error())
		}
		if defaultSRID != 0 && t.SRID() == 0 {
			adjustGeomSRID(t, defaultSRID)
		}
		b, err := geomewkb.Marshal(t, DefaultEWKBEncodingFormat)
		if err != nil {
			return nil, NewParseError("ewkb", 0, err.Error())
		}
		return geopb.EWKB(b), nil
	}

	return decodeEWKT(str, defaultSRID)
}

// decodeEWKT decodes a WKT or EWKT string into canonical little-endian EWKB.
func decodeEWKT(str string, defaultSRID geopb.SRID) (geopb.EWKB, error) {
	t, srid, err := wkt.Unmarshal(str)
	if err != nil {
		return nil, NewParseError("wkt", 0, err.Error())
	}
	effectiveSRID := geopb.SRID(srid)
	if effectiveSRID == 0 {
		effectiveSRID = defaultSRID
	}
	if effectiveSRID != 0 {
		adjustGeomSRID(t, effectiveSRID)
	}
	b, err := geomewkb.Marshal(t, DefaultEWKBEncodingFormat)
	if err != nil {
		return nil, NewParseError("ewkb", 0, err.Error())
	}
	return geopb.EWKB(b), nil
}
