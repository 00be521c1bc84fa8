// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package ewkb deals with the EWKB byte layout directly, below the level
// of github.com/twpayne/go-geom's decoder: cheap header inspection and a
// byte-level SRID patch that avoids a full decode/re-encode round trip.
//
// Wire format (little-endian, the only byte order this library writes):
//
//	[0x01]    byte order marker
//	[u32 LE]  geometry type with flags
//	          bit 29 (0x20000000): SRID present
//	          bit 31 (0x80000000): Z dimension
//	          bit 30 (0x40000000): M dimension
//	          bits 0-28: geometry type (1=Point, 2=LineString, ...)
//	[i32 LE]  SRID (only when the SRID flag is set)
//	...       ISO WKB geometry payload
package ewkb

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Flag bits within the EWKB type word.
const (
	SRIDFlag uint32 = 0x20000000
	ZFlag    uint32 = 0x80000000
	MFlag    uint32 = 0x40000000

	typeMask uint32 = 0x1FFFFFFF
)

// WKB geometry type codes, matching geopb.ShapeType.
const (
	TypePoint              uint32 = 1
	TypeLineString         uint32 = 2
	TypePolygon            uint32 = 3
	TypeMultiPoint         uint32 = 4
	TypeMultiLineString    uint32 = 5
	TypeMultiPolygon       uint32 = 6
	TypeGeometryCollection uint32 = 7
)

// Header is the result of peeking at an EWKB blob's header without fully
// decoding its geometry payload.
type Header struct {
	GeomType   uint32
	SRID       int32
	HasSRID    bool
	HasZ       bool
	HasM       bool
	DataOffset int
}

// ParseHeader peeks at blob's EWKB header. It does not decode the
// geometry payload, so it is cheap enough to call on every row during a
// table scan that only needs the SRID or type.
func ParseHeader(blob []byte) (Header, error) {
	if len(blob) < 5 {
		return Header{}, errors.New("ewkb: blob too short")
	}
	if blob[0] != 0x01 {
		return Header{}, errors.New("ewkb: big-endian EWKB not supported")
	}

	rawType := binary.LittleEndian.Uint32(blob[1:5])
	hasSRID := rawType&SRIDFlag != 0
	h := Header{
		GeomType:   rawType & typeMask,
		HasSRID:    hasSRID,
		HasZ:       rawType&ZFlag != 0,
		HasM:       rawType&MFlag != 0,
		DataOffset: 5,
	}
	if hasSRID {
		if len(blob) < 9 {
			return Header{}, errors.New("ewkb: SRID flag set but blob too short")
		}
		h.SRID = int32(binary.LittleEndian.Uint32(blob[5:9]))
		h.DataOffset = 9
	}
	return h, nil
}

// ExtractSRID returns the SRID embedded in blob, or 0 if the blob is
// malformed or carries no SRID.
func ExtractSRID(blob []byte) int32 {
	h, err := ParseHeader(blob)
	if err != nil || !h.HasSRID {
		return 0
	}
	return h.SRID
}

// SetSRID returns a copy of blob with its SRID rewritten at the byte
// level, adding the SRID flag and field if the blob did not already
// carry one; blob itself is not modified. It never
// touches the geometry payload, so it cannot fail on a structurally
// valid geometry with an unsupported coordinate layout.
func SetSRID(blob []byte, srid int32) ([]byte, error) {
	h, err := ParseHeader(blob)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(blob)+4)
	out = append(out, 0x01)

	rawType := binary.LittleEndian.Uint32(blob[1:5]) | SRIDFlag
	var typeBuf [4]byte
	binary.LittleEndian.PutUint32(typeBuf[:], rawType)
	out = append(out, typeBuf[:]...)

	var sridBuf [4]byte
	binary.LittleEndian.PutUint32(sridBuf[:], uint32(srid))
	out = append(out, sridBuf[:]...)

	out = append(out, blob[h.DataOffset:]...)
	return out, nil
}

// GeomTypeName returns the PostGIS-style ST_* name for a WKB type code,
// ignoring the Z/M/SRID flag bits if rawType still carries them.
func GeomTypeName(rawType uint32) string {
	switch rawType & typeMask {
	case TypePoint:
		return "ST_Point"
	case TypeLineString:
		return "ST_LineString"
	case TypePolygon:
		return "ST_Polygon"
	case TypeMultiPoint:
		return "ST_MultiPoint"
	case TypeMultiLineString:
		return "ST_MultiLineString"
	case TypeMultiPolygon:
		return "ST_MultiPolygon"
	case TypeGeometryCollection:
		return "ST_GeometryCollection"
	default:
		return "ST_Unknown"
	}
}
