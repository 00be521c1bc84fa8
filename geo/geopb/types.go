// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geopb contains the wire-level value types shared by the geo
// package and its subpackages: the canonical EWKB byte representation,
// the SRID tag, the bounding box, and the shape type enum. These are
// plain Go structs rather than generated protobuf types, since this
// library has no RPC surface of its own to justify a wire-format
// generation layer.
package geopb

// EWKB is a canonical little-endian EWKB-encoded geometry.
type EWKB []byte

// WKT is well-known text, optionally carrying an EWKT "SRID=...;" prefix.
type WKT string

// EWKT is well-known text with a mandatory "SRID=...;" prefix.
type EWKT string

// SRID is a Spatial Reference System Identifier. Zero means unknown.
type SRID int32

// ShapeType identifies which of the seven OGC simple-features variants a
// geometry is. The numeric values match the WKB type codes (1..7).
type ShapeType uint32

// Shape type constants, matching the WKB/EWKB type codes.
const (
	ShapeType_Unset              ShapeType = 0
	ShapeType_Point              ShapeType = 1
	ShapeType_LineString         ShapeType = 2
	ShapeType_Polygon            ShapeType = 3
	ShapeType_MultiPoint         ShapeType = 4
	ShapeType_MultiLineString    ShapeType = 5
	ShapeType_MultiPolygon       ShapeType = 6
	ShapeType_GeometryCollection ShapeType = 7
)

// String implements fmt.Stringer, returning the OGC name of the shape.
func (s ShapeType) String() string {
	switch s {
	case ShapeType_Point:
		return "Point"
	case ShapeType_LineString:
		return "LineString"
	case ShapeType_Polygon:
		return "Polygon"
	case ShapeType_MultiPoint:
		return "MultiPoint"
	case ShapeType_MultiLineString:
		return "MultiLineString"
	case ShapeType_MultiPolygon:
		return "MultiPolygon"
	case ShapeType_GeometryCollection:
		return "GeometryCollection"
	default:
		return "Unknown"
	}
}

// SpatialObject is the canonical, on-disk-equivalent representation of a
// geometry value: the EWKB blob plus the metadata that is cheap to
// extract from it without a full decode. This is what geo.Geometry
// wraps: a cheap-to-copy summary plus an on-demand decode into a
// go-geom geom.T.
type SpatialObject struct {
	EWKB        EWKB
	SRID        SRID
	ShapeType   ShapeType
	BoundingBox *BoundingBox
}
