// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package registry

import (
	"github.com/LucaCappelletti94/geolite/geo"
	"github.com/LucaCappelletti94/geolite/geo/geogfn"
	"github.com/LucaCappelletti94/geolite/geo/geoindex"
	"github.com/LucaCappelletti94/geolite/geo/geomfn"
)

// New builds the catalog of every ST_* function this library exposes,
// plus the two direct-only spatial-index management functions.
func New() Catalog {
	c := Catalog{}

	// I/O.
	c.add(FunctionSpec{Name: "ST_GeomFromText", Arity: 1, Fn: ioGeomFromText})
	c.add(FunctionSpec{Name: "ST_GeomFromText", Arity: 2, Fn: ioGeomFromText})
	c.add(FunctionSpec{Name: "ST_GeomFromWKB", Arity: 1, Fn: ioGeomFromWKB})
	c.add(FunctionSpec{Name: "ST_GeomFromWKB", Arity: 2, Fn: ioGeomFromWKB})
	c.add(FunctionSpec{Name: "ST_GeomFromEWKB", Arity: 1, Fn: ioGeomFromEWKB})
	c.add(FunctionSpec{Name: "ST_GeomFromGeoJSON", Arity: 1, Fn: ioGeomFromGeoJSON})
	c.add(FunctionSpec{Name: "ST_AsText", Arity: 1, Fn: ioAsText})
	c.add(FunctionSpec{Name: "ST_AsEWKT", Arity: 1, Fn: ioAsEWKT})
	c.add(FunctionSpec{Name: "ST_AsBinary", Arity: 1, Fn: ioAsBinary})
	c.add(FunctionSpec{Name: "ST_AsBinary", Arity: 2, Fn: ioAsBinary})
	c.add(FunctionSpec{Name: "ST_AsEWKB", Arity: 1, Fn: ioAsEWKB})
	c.add(FunctionSpec{Name: "ST_AsGeoJSON", Arity: 1, Fn: ioAsGeoJSON})
	c.add(FunctionSpec{Name: "ST_AsGeoJSON", Arity: 2, Fn: ioAsGeoJSON})
	c.add(FunctionSpec{Name: "ST_AsGeoJSON", Arity: 3, Fn: ioAsGeoJSON})

	// Constructors.
	c.add(FunctionSpec{Name: "ST_Point", Arity: 2, Fn: constructorPoint})
	c.add(FunctionSpec{Name: "ST_Point", Arity: 3, Fn: constructorPoint})
	c.add(FunctionSpec{Name: "ST_MakePoint", Arity: 2, Fn: constructorPoint})
	c.add(FunctionSpec{Name: "ST_MakeLine", Arity: 2, Fn: constructorMakeLine})
	c.add(FunctionSpec{Name: "ST_MakePolygon", Arity: 1, Fn: constructorMakePolygon})
	c.add(FunctionSpec{Name: "ST_MakeEnvelope", Arity: 4, Fn: constructorMakeEnvelope})
	c.add(FunctionSpec{Name: "ST_MakeEnvelope", Arity: 5, Fn: constructorMakeEnvelope})
	c.add(FunctionSpec{Name: "ST_Collect", Arity: 2, Fn: constructorCollect})
	c.add(FunctionSpec{Name: "ST_TileEnvelope", Arity: 3, Fn: constructorTileEnvelope})

	// Accessors.
	c.add(FunctionSpec{Name: "ST_SRID", Arity: 1, Fn: accessorSRID})
	c.add(FunctionSpec{Name: "ST_SetSRID", Arity: 2, NullPolicy: NullPolicyCustom, Fn: accessorSetSRID})
	c.add(FunctionSpec{Name: "ST_GeometryType", Arity: 1, Fn: accessorGeometryType})
	c.add(FunctionSpec{Name: "GeometryType", Arity: 1, Fn: accessorGeometryType})
	c.add(FunctionSpec{Name: "ST_NDims", Arity: 1, Fn: accessorNDims})
	c.add(FunctionSpec{Name: "ST_CoordDim", Arity: 1, Fn: accessorCoordDim})
	c.add(FunctionSpec{Name: "ST_Zmflag", Arity: 1, Fn: accessorZmflag})
	c.add(FunctionSpec{Name: "ST_IsEmpty", Arity: 1, Fn: accessorIsEmpty})
	c.add(FunctionSpec{Name: "ST_MemSize", Arity: 1, Fn: accessorMemSize})
	c.add(FunctionSpec{Name: "ST_X", Arity: 1, Fn: accessorX})
	c.add(FunctionSpec{Name: "ST_Y", Arity: 1, Fn: accessorY})
	c.add(FunctionSpec{Name: "ST_NumPoints", Arity: 1, Fn: accessorNumPoints})
	c.add(FunctionSpec{Name: "ST_NPoints", Arity: 1, Fn: accessorNPoints})
	c.add(FunctionSpec{Name: "ST_NumGeometries", Arity: 1, Fn: accessorNumGeometries})
	c.add(FunctionSpec{Name: "ST_NumInteriorRings", Arity: 1, Fn: accessorNumInteriorRings})
	c.add(FunctionSpec{Name: "ST_NumInteriorRing", Arity: 1, Fn: accessorNumInteriorRings})
	c.add(FunctionSpec{Name: "ST_NumRings", Arity: 1, Fn: accessorNumRings})
	c.add(FunctionSpec{Name: "ST_PointN", Arity: 2, Fn: accessorPointN})
	c.add(FunctionSpec{Name: "ST_StartPoint", Arity: 1, Fn: accessorStartPoint})
	c.add(FunctionSpec{Name: "ST_EndPoint", Arity: 1, Fn: accessorEndPoint})
	c.add(FunctionSpec{Name: "ST_ExteriorRing", Arity: 1, Fn: accessorExteriorRing})
	c.add(FunctionSpec{Name: "ST_InteriorRingN", Arity: 2, Fn: accessorInteriorRingN})
	c.add(FunctionSpec{Name: "ST_GeometryN", Arity: 2, Fn: accessorGeometryN})
	c.add(FunctionSpec{Name: "ST_Dimension", Arity: 1, Fn: accessorDimension})
	c.add(FunctionSpec{Name: "ST_Envelope", Arity: 1, Fn: wrapGeomFnUnary(geomfn.Envelope)})
	c.add(FunctionSpec{Name: "ST_IsValid", Arity: 1, Fn: accessorIsValid})
	c.add(FunctionSpec{Name: "ST_IsValidReason", Arity: 1, Fn: accessorIsValidReason})

	// Measurement.
	c.add(FunctionSpec{Name: "ST_Area", Arity: 1, Fn: wrapGeomFnFloatUnary(geomfn.Area)})
	c.add(FunctionSpec{Name: "ST_Length", Arity: 1, Fn: wrapGeomFnFloatUnary(geomfn.Length)})
	c.add(FunctionSpec{Name: "ST_Length2D", Arity: 1, Fn: wrapGeomFnFloatUnary(geomfn.Length)})
	c.add(FunctionSpec{Name: "ST_Perimeter", Arity: 1, Fn: wrapGeomFnFloatUnary(geomfn.Perimeter)})
	c.add(FunctionSpec{Name: "ST_Perimeter2D", Arity: 1, Fn: wrapGeomFnFloatUnary(geomfn.Perimeter)})
	c.add(FunctionSpec{Name: "ST_Distance", Arity: 2, Fn: wrapGeomFnFloatBinary(geomfn.Distance)})
	c.add(FunctionSpec{Name: "ST_Centroid", Arity: 1, Fn: wrapGeomFnUnary(geomfn.Centroid)})
	c.add(FunctionSpec{Name: "ST_PointOnSurface", Arity: 1, Fn: wrapGeomFnUnary(geomfn.PointOnSurface)})
	c.add(FunctionSpec{Name: "ST_HausdorffDistance", Arity: 2, Fn: wrapGeomFnFloatBinary(geomfn.HausdorffDistance)})
	c.add(FunctionSpec{Name: "ST_XMin", Arity: 1, Fn: bboxField(func(b geoBox) float64 { return b.MinX })})
	c.add(FunctionSpec{Name: "ST_XMax", Arity: 1, Fn: bboxField(func(b geoBox) float64 { return b.MaxX })})
	c.add(FunctionSpec{Name: "ST_YMin", Arity: 1, Fn: bboxField(func(b geoBox) float64 { return b.MinY })})
	c.add(FunctionSpec{Name: "ST_YMax", Arity: 1, Fn: bboxField(func(b geoBox) float64 { return b.MaxY })})
	c.add(FunctionSpec{Name: "ST_DistanceSphere", Arity: 2, Fn: wrapGeomFnFloatBinary(geogfn.DistanceSphere)})
	c.add(FunctionSpec{Name: "ST_DistanceSpheroid", Arity: 2, Fn: func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := geometryArg(args, 1)
		if err != nil {
			return nil, err
		}
		return geogfn.DistanceSpheroid(a, b, geogfn.WGS84Spheroid)
	}})
	c.add(FunctionSpec{Name: "ST_LengthSphere", Arity: 1, Fn: func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		return geogfn.LengthSphere(a)
	}})
	c.add(FunctionSpec{Name: "ST_Azimuth", Arity: 2, Fn: wrapGeomFnFloatBinary(geomfn.Azimuth)})
	c.add(FunctionSpec{Name: "ST_Project", Arity: 3, Fn: func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		d, err := float64Arg(args, 1)
		if err != nil {
			return nil, err
		}
		azimuth, err := float64Arg(args, 2)
		if err != nil {
			return nil, err
		}
		return geomfn.Project(a, d, azimuth)
	}})
	c.add(FunctionSpec{Name: "ST_ClosestPoint", Arity: 2, Fn: wrapGeomFnUnaryBinary(geomfn.ClosestPoint)})

	// Operations.
	c.add(FunctionSpec{Name: "ST_Union", Arity: 2, Fn: wrapGeomFnUnaryBinary(geomfn.Union)})
	c.add(FunctionSpec{Name: "ST_Intersection", Arity: 2, Fn: wrapGeomFnUnaryBinary(geomfn.Intersection)})
	c.add(FunctionSpec{Name: "ST_Difference", Arity: 2, Fn: wrapGeomFnUnaryBinary(geomfn.Difference)})
	c.add(FunctionSpec{Name: "ST_SymDifference", Arity: 2, Fn: wrapGeomFnUnaryBinary(geomfn.SymDifference)})
	c.add(FunctionSpec{Name: "ST_Buffer", Arity: 2, Fn: func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		d, err := float64Arg(args, 1)
		if err != nil {
			return nil, err
		}
		return geomfn.Buffer(a, d, geomfn.DefaultBufferParams())
	}})

	// Predicates.
	c.add(FunctionSpec{Name: "ST_Intersects", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Intersects)})
	c.add(FunctionSpec{Name: "ST_Contains", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Contains)})
	c.add(FunctionSpec{Name: "ST_Within", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Within)})
	c.add(FunctionSpec{Name: "ST_Disjoint", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Disjoint)})
	c.add(FunctionSpec{Name: "ST_DWithin", Arity: 3, Fn: func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := geometryArg(args, 1)
		if err != nil {
			return nil, err
		}
		d, err := float64Arg(args, 2)
		if err != nil {
			return nil, err
		}
		return geomfn.DWithin(a, b, d)
	}})
	c.add(FunctionSpec{Name: "ST_Covers", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Covers)})
	c.add(FunctionSpec{Name: "ST_CoveredBy", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.CoveredBy)})
	c.add(FunctionSpec{Name: "ST_Equals", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Equals)})
	c.add(FunctionSpec{Name: "ST_Touches", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Touches)})
	c.add(FunctionSpec{Name: "ST_Crosses", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Crosses)})
	c.add(FunctionSpec{Name: "ST_Overlaps", Arity: 2, Fn: wrapGeomFnBoolBinary(geomfn.Overlaps)})
	c.add(FunctionSpec{Name: "ST_Relate", Arity: 2, Fn: func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := geometryArg(args, 1)
		if err != nil {
			return nil, err
		}
		m, err := geomfn.Relate(a, b)
		if err != nil {
			return nil, err
		}
		return m.String(), nil
	}})
	c.add(FunctionSpec{Name: "ST_Relate", Arity: 3, Fn: func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := geometryArg(args, 1)
		if err != nil {
			return nil, err
		}
		pattern, err := stringArg(args, 2)
		if err != nil {
			return nil, err
		}
		m, err := geomfn.Relate(a, b)
		if err != nil {
			return nil, err
		}
		return m.Matches(pattern)
	}})
	c.add(FunctionSpec{Name: "ST_RelateMatch", Arity: 2, Fn: func(args []interface{}) (interface{}, error) {
		matrix, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		pattern, err := stringArg(args, 1)
		if err != nil {
			return nil, err
		}
		var m geomfn.DE9IM
		if len(matrix) != 9 {
			return nil, geo.NewInvalidArgumentError("ST_RelateMatch: matrix must be 9 characters, got %d", len(matrix))
		}
		copy(m[:], matrix)
		return m.Matches(pattern)
	}})

	// Direct-only spatial index management, per SQLITE_DIRECT_ONLY_FUNCTIONS:
	// these mutate the host's schema (a virtual rtree table and its
	// triggers) and so cannot be marked deterministic/side-effect-free.
	c.add(FunctionSpec{Name: "CreateSpatialIndex", Arity: 2, DirectOnly: true, Fn: func(args []interface{}) (interface{}, error) {
		table, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		column, err := stringArg(args, 1)
		if err != nil {
			return nil, err
		}
		return geoindex.CreateSpatialIndexDDL(table, column)
	}})
	c.add(FunctionSpec{Name: "DropSpatialIndex", Arity: 2, DirectOnly: true, Fn: func(args []interface{}) (interface{}, error) {
		table, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		column, err := stringArg(args, 1)
		if err != nil {
			return nil, err
		}
		return geoindex.DropSpatialIndexDDL(table, column)
	}})

	return c
}

type geoBox = struct {
	MinX, MinY, MaxX, MaxY float64
	Empty                  bool
}

func bboxField(field func(geoBox) float64) Fn {
	return func(args []interface{}) (interface{}, error) {
		g, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		box, ok := g.BoundingBox()
		if !ok {
			return nil, geo.NewInvalidArgumentError("cannot take an extent of an empty geometry")
		}
		return field(geoBox{MinX: box.MinX, MinY: box.MinY, MaxX: box.MaxX, MaxY: box.MaxY, Empty: box.Empty}), nil
	}
}

func wrapGeomFnUnary(f func(geo.Geometry) (geo.Geometry, error)) Fn {
	return func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		return f(a)
	}
}

func wrapGeomFnUnaryBinary(f func(a, b geo.Geometry) (geo.Geometry, error)) Fn {
	return func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := geometryArg(args, 1)
		if err != nil {
			return nil, err
		}
		return f(a, b)
	}
}

func wrapGeomFnFloatUnary(f func(geo.Geometry) (float64, error)) Fn {
	return func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		return f(a)
	}
}

func wrapGeomFnFloatBinary(f func(a, b geo.Geometry) (float64, error)) Fn {
	return func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := geometryArg(args, 1)
		if err != nil {
			return nil, err
		}
		return f(a, b)
	}
}

func wrapGeomFnBoolBinary(f func(a, b geo.Geometry) (bool, error)) Fn {
	return func(args []interface{}) (interface{}, error) {
		a, err := geometryArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := geometryArg(args, 1)
		if err != nil {
			return nil, err
		}
		return f(a, b)
	}
}
