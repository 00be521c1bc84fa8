// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package ewkb

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func pointEWKB(srid int32, withSRID bool) []byte {
	rawType := TypePoint
	out := []byte{0x01}
	if withSRID {
		rawType |= SRIDFlag
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], rawType)
	out = append(out, buf[:]...)
	if withSRID {
		var sbuf [4]byte
		binary.LittleEndian.PutUint32(sbuf[:], uint32(srid))
		out = append(out, sbuf[:]...)
	}
	var x, y [8]byte
	binary.LittleEndian.PutUint64(x[:], 0x3FF0000000000000) // 1.0
	binary.LittleEndian.PutUint64(y[:], 0x4000000000000000) // 2.0
	out = append(out, x[:]...)
	out = append(out, y[:]...)
	return out
}

func TestParseHeaderTooShort(t *testing.T) {
	_, err := ParseHeader([]byte{0x01, 0x02})
	require.Error(t, err)
	_, err = ParseHeader(nil)
	require.Error(t, err)
}

func TestParseHeaderBigEndianRejected(t *testing.T) {
	_, err := ParseHeader([]byte{0x00, 0x01, 0x00, 0x00, 0x00})
	require.Error(t, err)
}

func TestParseHeaderSRIDFlagTruncated(t *testing.T) {
	blob := []byte{0x01}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], TypePoint|SRIDFlag)
	blob = append(blob, buf[:]...)
	_, err := ParseHeader(blob)
	require.Error(t, err)
}

func TestParseHeaderValidWithSRID(t *testing.T) {
	blob := pointEWKB(4326, true)
	h, err := ParseHeader(blob)
	require.NoError(t, err)
	require.Equal(t, TypePoint, h.GeomType)
	require.True(t, h.HasSRID)
	require.Equal(t, int32(4326), h.SRID)
	require.False(t, h.HasZ)
	require.False(t, h.HasM)
	require.Equal(t, 9, h.DataOffset)
}

func TestParseHeaderValidWithoutSRID(t *testing.T) {
	blob := pointEWKB(0, false)
	h, err := ParseHeader(blob)
	require.NoError(t, err)
	require.False(t, h.HasSRID)
	require.Equal(t, 5, h.DataOffset)
}

func TestExtractSRID(t *testing.T) {
	require.Equal(t, int32(4326), ExtractSRID(pointEWKB(4326, true)))
	require.Equal(t, int32(0), ExtractSRID(pointEWKB(0, false)))
	require.Equal(t, int32(0), ExtractSRID(nil))
}

func TestSetSRIDReplacesExisting(t *testing.T) {
	blob := pointEWKB(4326, true)
	updated, err := SetSRID(blob, 3857)
	require.NoError(t, err)
	require.Equal(t, int32(3857), ExtractSRID(updated))
}

func TestSetSRIDAddsToBlobWithoutSRID(t *testing.T) {
	blob := pointEWKB(0, false)
	updated, err := SetSRID(blob, 4326)
	require.NoError(t, err)
	require.Equal(t, int32(4326), ExtractSRID(updated))
	require.Len(t, updated, len(blob)+4)
}

func TestGeomTypeNameAllTypes(t *testing.T) {
	require.Equal(t, "ST_Point", GeomTypeName(TypePoint))
	require.Equal(t, "ST_LineString", GeomTypeName(TypeLineString))
	require.Equal(t, "ST_Polygon", GeomTypeName(TypePolygon))
	require.Equal(t, "ST_MultiPoint", GeomTypeName(TypeMultiPoint))
	require.Equal(t, "ST_MultiLineString", GeomTypeName(TypeMultiLineString))
	require.Equal(t, "ST_MultiPolygon", GeomTypeName(TypeMultiPolygon))
	require.Equal(t, "ST_GeometryCollection", GeomTypeName(TypeGeometryCollection))
	require.Equal(t, "ST_Unknown", GeomTypeName(42))
}
