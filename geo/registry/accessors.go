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
	"encoding/binary"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/LucaCappelletti94/geolite/geo"
	"github.com/LucaCappelletti94/geolite/geo/geopb"
)

// These accessors and constructors read or build directly off a go-geom
// value's own fields (X, NumCoords, Layout, and so on) rather than going
// through a dedicated geomfn entry point, since each is a one- or
// two-line operation. They're grouped in one file, one function per
// catalog row, rather than scattered across geomfn as single-purpose
// files.

func accessorSRID(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	return int64(g.SRID()), nil
}

func accessorSetSRID(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	if args[1] == nil {
		return g, nil
	}
	srid, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	out, err := g.SetSRID(geopb.SRID(srid))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func accessorGeometryType(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	return "ST_" + g.ShapeType().String(), nil
}

func accessorNDims(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	return int64(t.Layout().Stride()), nil
}

func accessorCoordDim(args []interface{}) (interface{}, error) {
	return accessorNDims(args)
}

func accessorZmflag(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	layout := t.Layout()
	switch {
	case layout.ZIndex() >= 0 && layout.MIndex() >= 0:
		return int64(3), nil
	case layout.MIndex() >= 0:
		return int64(2), nil
	case layout.ZIndex() >= 0:
		return int64(1), nil
	default:
		return int64(0), nil
	}
}

func accessorIsEmpty(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	return g.Empty(), nil
}

func accessorMemSize(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	return int64(len(g.EWKB())), nil
}

func accessorDimension(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	switch g.ShapeType() {
	case geopb.ShapeType_Point, geopb.ShapeType_MultiPoint:
		return int64(0), nil
	case geopb.ShapeType_LineString, geopb.ShapeType_MultiLineString:
		return int64(1), nil
	case geopb.ShapeType_Polygon, geopb.ShapeType_MultiPolygon:
		return int64(2), nil
	default:
		return int64(0), nil
	}
}

func accessorX(args []interface{}) (interface{}, error) {
	return pointCoordinate(args, 0)
}

func accessorY(args []interface{}) (interface{}, error) {
	return pointCoordinate(args, 1)
}

func pointCoordinate(args []interface{}, axis int) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	pt, ok := t.(*geom.Point)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("expected a Point, got %s", g.ShapeType())
	}
	if pt.Empty() {
		return nil, nil
	}
	if axis == 0 {
		return pt.X(), nil
	}
	return pt.Y(), nil
}

func accessorNumPoints(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	ls, ok := t.(*geom.LineString)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("expected a LineString, got %s", g.ShapeType())
	}
	return int64(ls.NumCoords()), nil
}

func accessorNPoints(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	return int64(countVertices(t)), nil
}

func countVertices(t geom.T) int {
	switch t := t.(type) {
	case *geom.GeometryCollection:
		total := 0
		for i := 0; i < t.NumGeoms(); i++ {
			total += countVertices(t.Geom(i))
		}
		return total
	default:
		return len(t.FlatCoords()) / max(1, t.Stride())
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func accessorNumGeometries(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	switch t := t.(type) {
	case *geom.MultiPoint:
		return int64(t.NumPoints()), nil
	case *geom.MultiLineString:
		return int64(t.NumLineStrings()), nil
	case *geom.MultiPolygon:
		return int64(t.NumPolygons()), nil
	case *geom.GeometryCollection:
		return int64(t.NumGeoms()), nil
	default:
		if t.Empty() {
			return int64(0), nil
		}
		return int64(1), nil
	}
}

func accessorGeometryN(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	idx := n - 1
	var part geom.T
	switch t := t.(type) {
	case *geom.MultiPoint:
		if idx < 0 || idx >= t.NumPoints() {
			return nil, nil
		}
		part = t.Point(idx)
	case *geom.MultiLineString:
		if idx < 0 || idx >= t.NumLineStrings() {
			return nil, nil
		}
		part = t.LineString(idx)
	case *geom.MultiPolygon:
		if idx < 0 || idx >= t.NumPolygons() {
			return nil, nil
		}
		part = t.Polygon(idx)
	case *geom.GeometryCollection:
		if idx < 0 || idx >= t.NumGeoms() {
			return nil, nil
		}
		part = t.Geom(idx)
	default:
		if idx != 0 {
			return nil, nil
		}
		part = t
	}
	return geo.MakeGeometryFromGeomT(part)
}

func accessorNumInteriorRings(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	p, ok := t.(*geom.Polygon)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("expected a Polygon, got %s", g.ShapeType())
	}
	return int64(p.NumLinearRings() - 1), nil
}

func accessorNumRings(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	p, ok := t.(*geom.Polygon)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("expected a Polygon, got %s", g.ShapeType())
	}
	return int64(p.NumLinearRings()), nil
}

func accessorPointN(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	ls, ok := t.(*geom.LineString)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("expected a LineString, got %s", g.ShapeType())
	}
	idx := n - 1
	if idx < 0 || idx >= ls.NumCoords() {
		return nil, nil
	}
	coord := ls.Coord(idx)
	pt := geom.NewPointFlat(t.Layout(), coord).SetSRID(t.SRID())
	return geo.MakeGeometryFromGeomT(pt)
}

func accessorStartPoint(args []interface{}) (interface{}, error) {
	return endpointOf(args, 0)
}

func accessorEndPoint(args []interface{}) (interface{}, error) {
	return endpointOf(args, -1)
}

func endpointOf(args []interface{}, idxFromEnd int) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	ls, ok := t.(*geom.LineString)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("expected a LineString, got %s", g.ShapeType())
	}
	if ls.NumCoords() == 0 {
		return nil, nil
	}
	idx := idxFromEnd
	if idx < 0 {
		idx = ls.NumCoords() + idx
	}
	coord := ls.Coord(idx)
	pt := geom.NewPointFlat(t.Layout(), coord).SetSRID(t.SRID())
	return geo.MakeGeometryFromGeomT(pt)
}

func accessorExteriorRing(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	p, ok := t.(*geom.Polygon)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("expected a Polygon, got %s", g.ShapeType())
	}
	if p.NumLinearRings() == 0 {
		return nil, nil
	}
	ring := p.LinearRing(0)
	ls := geom.NewLineStringFlat(ring.Layout(), ring.FlatCoords()).SetSRID(ring.SRID())
	return geo.MakeGeometryFromGeomT(ls)
}

func accessorInteriorRingN(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return nil, err
	}
	p, ok := t.(*geom.Polygon)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("expected a Polygon, got %s", g.ShapeType())
	}
	idx := n
	if idx < 1 || idx >= p.NumLinearRings() {
		return nil, nil
	}
	ring := p.LinearRing(idx)
	ls := geom.NewLineStringFlat(ring.Layout(), ring.FlatCoords()).SetSRID(ring.SRID())
	return geo.MakeGeometryFromGeomT(ls)
}

func accessorIsValid(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	_, err = isValidReason(g)
	return err == nil, nil
}

func accessorIsValidReason(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	reason, err := isValidReason(g)
	if err != nil {
		return err.Error(), nil
	}
	return reason, nil
}

// isValidReason runs the small set of structural checks this kernel can
// perform without a full DE-9IM self-intersection sweep: ring closure
// and minimum vertex counts. A polygon with self-intersecting rings
// passes this check, since detecting that exactly needs the topology
// engine this library intentionally doesn't carry (see DESIGN.md).
func isValidReason(g geo.Geometry) (string, error) {
	t, err := g.AsGeomT()
	if err != nil {
		return "", err
	}
	var bad error
	checkRing := func(ring *geom.LinearRing) {
		if bad != nil {
			return
		}
		n := ring.NumCoords()
		if n < 4 {
			bad = fmt.Errorf("ring with fewer than 4 points")
			return
		}
		first, last := ring.Coord(0), ring.Coord(n-1)
		if first[0] != last[0] || first[1] != last[1] {
			bad = fmt.Errorf("ring self-intersection[0]: ring is not closed")
		}
	}
	switch t := t.(type) {
	case *geom.Polygon:
		for i := 0; i < t.NumLinearRings(); i++ {
			checkRing(t.LinearRing(i))
		}
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			p := t.Polygon(i)
			for j := 0; j < p.NumLinearRings(); j++ {
				checkRing(p.LinearRing(j))
			}
		}
	}
	if bad != nil {
		return "", bad
	}
	return "Valid Geometry", nil
}

func constructorPoint(args []interface{}) (interface{}, error) {
	x, err := float64Arg(args, 0)
	if err != nil {
		return nil, err
	}
	y, err := float64Arg(args, 1)
	if err != nil {
		return nil, err
	}
	pt := geom.NewPointFlat(geom.XY, []float64{x, y})
	if len(args) > 2 && args[2] != nil {
		srid, err := intArg(args, 2)
		if err != nil {
			return nil, err
		}
		pt.SetSRID(srid)
	}
	return geo.MakeGeometryFromGeomT(pt)
}

func constructorMakeLine(args []interface{}) (interface{}, error) {
	a, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	b, err := geometryArg(args, 1)
	if err != nil {
		return nil, err
	}
	if a.SRID() != b.SRID() {
		return nil, geo.NewMismatchingSRIDsError(a.SpatialObject(), b.SpatialObject())
	}
	at, err := a.AsGeomT()
	if err != nil {
		return nil, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return nil, err
	}
	apt, ok := at.(*geom.Point)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("ST_MakeLine expects two Points, got %s", a.ShapeType())
	}
	bpt, ok := bt.(*geom.Point)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("ST_MakeLine expects two Points, got %s", b.ShapeType())
	}
	ls := geom.NewLineStringFlat(geom.XY, []float64{apt.X(), apt.Y(), bpt.X(), bpt.Y()}).SetSRID(int(a.SRID()))
	return geo.MakeGeometryFromGeomT(ls)
}

func constructorMakePolygon(args []interface{}) (interface{}, error) {
	a, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	t, err := a.AsGeomT()
	if err != nil {
		return nil, err
	}
	ls, ok := t.(*geom.LineString)
	if !ok {
		return nil, geo.NewUnsupportedGeometryError("ST_MakePolygon expects a closed LineString, got %s", a.ShapeType())
	}
	p := geom.NewPolygonFlat(ls.Layout(), ls.FlatCoords(), []int{len(ls.FlatCoords())}).SetSRID(ls.SRID())
	return geo.MakeGeometryFromGeomT(p)
}

func constructorMakeEnvelope(args []interface{}) (interface{}, error) {
	xmin, err := float64Arg(args, 0)
	if err != nil {
		return nil, err
	}
	ymin, err := float64Arg(args, 1)
	if err != nil {
		return nil, err
	}
	xmax, err := float64Arg(args, 2)
	if err != nil {
		return nil, err
	}
	ymax, err := float64Arg(args, 3)
	if err != nil {
		return nil, err
	}
	srid := 0
	if len(args) > 4 && args[4] != nil {
		srid, err = intArg(args, 4)
		if err != nil {
			return nil, err
		}
	}
	ring := []float64{xmin, ymin, xmax, ymin, xmax, ymax, xmin, ymax, xmin, ymin}
	p := geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)}).SetSRID(srid)
	return geo.MakeGeometryFromGeomT(p)
}

func constructorTileEnvelope(args []interface{}) (interface{}, error) {
	zoom, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	tileX, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	tileY, err := intArg(args, 2)
	if err != nil {
		return nil, err
	}
	if zoom < 0 || tileX < 0 || tileY < 0 {
		return nil, geo.NewInvalidArgumentError("ST_TileEnvelope: zoom, tile x and tile y must be non-negative")
	}
	const worldSize = 20037508.342789244 * 2
	n := float64(int64(1) << uint(zoom))
	tileSize := worldSize / n
	xmin := -worldSize/2 + float64(tileX)*tileSize
	xmax := xmin + tileSize
	ymax := worldSize/2 - float64(tileY)*tileSize
	ymin := ymax - tileSize
	ring := []float64{xmin, ymin, xmax, ymin, xmax, ymax, xmin, ymax, xmin, ymin}
	p := geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)}).SetSRID(3857)
	return geo.MakeGeometryFromGeomT(p)
}

func constructorCollect(args []interface{}) (interface{}, error) {
	a, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	b, err := geometryArg(args, 1)
	if err != nil {
		return nil, err
	}
	if a.SRID() != b.SRID() {
		return nil, geo.NewMismatchingSRIDsError(a.SpatialObject(), b.SpatialObject())
	}
	at, err := a.AsGeomT()
	if err != nil {
		return nil, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return nil, err
	}
	gc := geom.NewGeometryCollection().SetSRID(int(a.SRID()))
	if err := gc.Push(at); err != nil {
		return nil, geo.NewInvalidArgumentError("ST_Collect: %s", err)
	}
	if err := gc.Push(bt); err != nil {
		return nil, geo.NewInvalidArgumentError("ST_Collect: %s", err)
	}
	return geo.MakeGeometryFromGeomT(gc)
}

func ioGeomFromText(args []interface{}) (interface{}, error) {
	s, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	srid := geopb.SRID(0)
	if len(args) > 1 && args[1] != nil {
		n, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		srid = geopb.SRID(n)
	}
	return geo.ParseGeometry(s, srid)
}

func ioGeomFromWKB(args []interface{}) (interface{}, error) {
	b, err := bytesArg(args, 0)
	if err != nil {
		return nil, err
	}
	g, err := geo.ParseGeometry(string(b), 0)
	if err != nil {
		return nil, err
	}
	if len(args) > 1 && args[1] != nil {
		srid, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		return g.SetSRID(geopb.SRID(srid))
	}
	return g, nil
}

func ioGeomFromEWKB(args []interface{}) (interface{}, error) {
	b, err := bytesArg(args, 0)
	if err != nil {
		return nil, err
	}
	return geo.ParseGeometry(string(b), 0)
}

func ioGeomFromGeoJSON(args []interface{}) (interface{}, error) {
	s, err := stringArg(args, 0)
	if err != nil {
		return nil, err
	}
	// GeoJSON carries no SRID; decoded geometries get 4326.
	var t geom.T
	if err := geojson.Unmarshal([]byte(s), &t); err != nil {
		return nil, geo.NewParseError("geojson", 0, err.Error())
	}
	g, err := geo.MakeGeometryFromGeomT(t)
	if err != nil {
		return nil, err
	}
	return g.SetSRID(4326)
}

func ioAsText(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	s, err := geo.SpatialObjectToWKT(g.SpatialObject())
	return string(s), err
}

func ioAsEWKT(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	s, err := geo.SpatialObjectToEWKT(g.SpatialObject())
	return string(s), err
}

func ioAsBinary(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	order := binary.ByteOrder(geo.DefaultEWKBEncodingFormat)
	if len(args) > 1 && args[1] != nil {
		s, err := stringArg(args, 1)
		if err != nil {
			return nil, err
		}
		order = geo.StringToByteOrder(s)
	}
	return geo.SpatialObjectToWKB(g.SpatialObject(), order)
}

func ioAsEWKB(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	b, err := geo.SpatialObjectToEWKB(g.SpatialObject(), geo.DefaultEWKBEncodingFormat)
	return []byte(b), err
}

func ioAsGeoJSON(args []interface{}) (interface{}, error) {
	g, err := geometryArg(args, 0)
	if err != nil {
		return nil, err
	}
	digits := geo.DefaultGeoJSONDecimalDigits
	if len(args) > 1 && args[1] != nil {
		digits, err = intArg(args, 1)
		if err != nil {
			return nil, err
		}
	}
	flag := geo.GeoJSONFlagZero
	if len(args) > 2 && args[2] != nil {
		n, err := intArg(args, 2)
		if err != nil {
			return nil, err
		}
		flag = geo.GeoJSONFlag(n)
	}
	b, err := geo.SpatialObjectToGeoJSON(g.SpatialObject(), digits, flag)
	return string(b), err
}
