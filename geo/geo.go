// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geo contains the geometry algebra, codecs, and bounding-box
// arithmetic that back every ST_* function: a PostGIS-compatible,
// two-dimensional (with optional Z/M) geometry engine that is safe to
// call concurrently and introduces no cgo dependency, so it runs
// identically under the native Go runtime and under WebAssembly.
//
// Subpackages implement the heavier kernels on top of this core:
//   - geo/geomfn: measurement, DE-9IM predicates, and overlay/buffer for
//     planar geometries.
//   - geo/geogfn: spherical/spheroidal measurement variants.
//   - geo/geoindex: bounding-box extraction and R-tree adapter DDL.
//   - geo/registry: the PostGIS function name -> entry point catalog.
package geo

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
	geomewkb "github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/LucaCappelletti94/geolite/geo/ewkb"
	"github.com/LucaCappelletti94/geolite/geo/geopb"
	"github.com/LucaCappelletti94/geolite/geo/wkt"
)

// DefaultEWKBEncodingFormat is the byte order new EWKB blobs are written
// in. Little-endian is canonical.
var DefaultEWKBEncodingFormat = binary.LittleEndian

// Geometry is an immutable value representing one of the seven OGC
// simple-features variants plus an SRID tag. Its
// canonical representation is a little-endian EWKB blob; AsGeomT lazily
// decodes it into a github.com/twpayne/go-geom value for algebraic
// manipulation. Every Geometry returned by a core operation is
// independently usable: there is no shared mutable state between values.
type Geometry struct {
	spatialObject geopb.SpatialObject
}

// SpatialObject returns the geopb.SpatialObject this Geometry wraps.
func (g Geometry) SpatialObject() geopb.SpatialObject {
	return g.spatialObject
}

// EWKB returns the canonical little-endian EWKB encoding of g.
func (g Geometry) EWKB() geopb.EWKB {
	return g.spatialObject.EWKB
}

// SRID returns the SRID tag of g. Zero means unknown.
func (g Geometry) SRID() geopb.SRID {
	return g.spatialObject.SRID
}

// ShapeType returns which of the seven OGC variants g is.
func (g Geometry) ShapeType() geopb.ShapeType {
	return g.spatialObject.ShapeType
}

// Empty reports whether g is the empty instance of its variant.
func (g Geometry) Empty() bool {
	return g.spatialObject.BoundingBox == nil || g.spatialObject.BoundingBox.Empty
}

// BoundingBox returns the precomputed bounding box of g. ok is false if
// g is empty: an empty geometry has no well-defined bounding box, so
// callers must check ok before using the result.
func (g Geometry) BoundingBox() (geopb.BoundingBox, bool) {
	if g.Empty() {
		return geopb.BoundingBox{}, false
	}
	return *g.spatialObject.BoundingBox, true
}

// AsGeomT decodes g's EWKB into a github.com/twpayne/go-geom value for
// algebraic manipulation. Each call decodes independently; Geometry
// itself never caches a decoded form.
func (g Geometry) AsGeomT() (geom.T, error) {
	t, err := geomewkb.Unmarshal([]byte(g.spatialObject.EWKB))
	if err != nil {
		return nil, NewParseError("ewkb", 0, err.Error())
	}
	return t, nil
}

// SetSRID returns a copy of g with its SRID overwritten. It does not
// reproject coordinates: ST_SetSRID is a pure metadata
// patch, implemented here as a byte-level rewrite of the EWKB header
// (geo/ewkb.SetSRID) rather than a full decode/re-encode round trip.
func (g Geometry) SetSRID(srid geopb.SRID) (Geometry, error) {
	patched, err := ewkb.SetSRID([]byte(g.spatialObject.EWKB), int32(srid))
	if err != nil {
		return Geometry{}, NewParseError("ewkb", 0, err.Error())
	}
	so := g.spatialObject
	so.EWKB = geopb.EWKB(patched)
	so.SRID = srid
	return Geometry{spatialObject: so}, nil
}

// String implements fmt.Stringer by printing g as WKT, for debugging and
// test failure output.
func (g Geometry) String() string {
	t, err := g.AsGeomT()
	if err != nil {
		return "<invalid geometry>"
	}
	s, err := wkt.Marshal(t)
	if err != nil {
		return "<invalid geometry>"
	}
	return s
}

// MakeGeometryFromGeomT encodes a go-geom value into a Geometry,
// computing its bounding box and shape type along the way.
func MakeGeometryFromGeomT(t geom.T) (Geometry, error) {
	shapeType, err := shapeTypeOf(t)
	if err != nil {
		return Geometry{}, err
	}
	blob, err := geomewkb.Marshal(t, DefaultEWKBEncodingFormat)
	if err != nil {
		return Geometry{}, NewParseError("ewkb", 0, err.Error())
	}
	return Geometry{
		spatialObject: geopb.SpatialObject{
			EWKB:        geopb.EWKB(blob),
			SRID:        geopb.SRID(t.SRID()),
			ShapeType:   shapeType,
			BoundingBox: computeBoundingBox(t),
		},
	}, nil
}

// NewGeometryFromGeom is an alias for MakeGeometryFromGeomT, kept since
// both spellings appear across geo/geomfn call sites.
func NewGeometryFromGeom(t geom.T) (Geometry, error) {
	return MakeGeometryFromGeomT(t)
}

// ParseGeometryFromEWKB decodes an EWKB blob into a Geometry, computing
// its bounding box and shape type.
func ParseGeometryFromEWKB(b geopb.EWKB) (Geometry, error) {
	t, err := geomewkb.Unmarshal([]byte(b))
	if err != nil {
		return Geometry{}, NewParseError("ewkb", 0, err.Error())
	}
	shapeType, err := shapeTypeOf(t)
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{
		spatialObject: geopb.SpatialObject{
			EWKB:        b,
			SRID:        geopb.SRID(t.SRID()),
			ShapeType:   shapeType,
			BoundingBox: computeBoundingBox(t),
		},
	}, nil
}

func shapeTypeOf(t geom.T) (geopb.ShapeType, error) {
	switch t.(type) {
	case *geom.Point:
		return geopb.ShapeType_Point, nil
	case *geom.LineString:
		return geopb.ShapeType_LineString, nil
	case *geom.Polygon:
		return geopb.ShapeType_Polygon, nil
	case *geom.MultiPoint:
		return geopb.ShapeType_MultiPoint, nil
	case *geom.MultiLineString:
		return geopb.ShapeType_MultiLineString, nil
	case *geom.MultiPolygon:
		return geopb.ShapeType_MultiPolygon, nil
	case *geom.GeometryCollection:
		return geopb.ShapeType_GeometryCollection, nil
	default:
		return geopb.ShapeType_Unset, NewUnsupportedGeometryError("unknown geom type: %T", t)
	}
}

// computeBoundingBox walks every flat coordinate of t using its stride,
// so it works uniformly across XY/XYZ/XYM/XYZM without caring which
// trailing dimension is present (X and Y are always the first two
// stride slots in go-geom's layout convention).
func computeBoundingBox(t geom.T) *geopb.BoundingBox {
	bb := geopb.NewBoundingBox()
	if t.Empty() {
		return bb
	}
	flat := t.FlatCoords()
	stride := t.Stride()
	if stride == 0 {
		return bb
	}
	for i := 0; i+1 < len(flat); i += stride {
		bb.Update(flat[i], flat[i+1])
	}
	return bb
}

// adjustGeomSRID sets the SRID of any geom.T, working around go-geom not
// exposing SetSRID on the common T interface (each concrete type returns
// its own pointer type from SetSRID).
func adjustGeomSRID(t geom.T, srid geopb.SRID) {
	switch t := t.(type) {
	case *geom.Point:
		t.SetSRID(int(srid))
	case *geom.LineString:
		t.SetSRID(int(srid))
	case *geom.Polygon:
		t.SetSRID(int(srid))
	case *geom.GeometryCollection:
		t.SetSRID(int(srid))
	case *geom.MultiPoint:
		t.SetSRID(int(srid))
	case *geom.MultiLineString:
		t.SetSRID(int(srid))
	case *geom.MultiPolygon:
		t.SetSRID(int(srid))
	default:
		panic(errors.AssertionFailedf("geo: unknown geom type: %T", t))
	}
}
