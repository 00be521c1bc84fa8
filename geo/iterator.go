// Copyright 2021 The Cockroach Authors.
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
	"github.com/twpayne/go-geom"
)

// EmptyBehavior signals how a GeomTIterator should treat empty
// sub-geometries it encounters while flattening a collection.
type EmptyBehavior int

const (
	// EmptyBehaviorError causes Next to return an error upon encountering
	// an empty sub-geometry.
	EmptyBehaviorError EmptyBehavior = iota
	// EmptyBehaviorOmit causes Next to silently skip empty sub-geometries.
	EmptyBehaviorOmit
)

// GeomTIterator flattens a geom.T into its leaf single-geometry
// components (Point, LineString, Polygon), in order, regardless of how
// many levels of Multi*/GeometryCollection nesting wrap them. Predicates
// that must test every element of a (multi)point against every element
// of a (multi)polygon, such as the point-in-polygon optimization in
// geomfn, use it to treat all input shapes uniformly.
type GeomTIterator struct {
	flattened     []geom.T
	emptyBehavior EmptyBehavior
	idx           int
}

// NewGeomTIterator returns an iterator over t's leaf single-geometry
// components.
func NewGeomTIterator(t geom.T, emptyBehavior EmptyBehavior) GeomTIterator {
	it := GeomTIterator{emptyBehavior: emptyBehavior}
	it.flattened = flattenGeomT(t, nil)
	return it
}

// Next returns the next leaf geometry, or hasNext=false once exhausted.
func (it *GeomTIterator) Next() (geom.T, bool, error) {
	for it.idx < len(it.flattened) {
		t := it.flattened[it.idx]
		it.idx++
		if t.Empty() {
			switch it.emptyBehavior {
			case EmptyBehaviorOmit:
				continue
			default:
				return nil, false, NewUnsupportedGeometryError("unexpected empty geometry in iterator")
			}
		}
		return t, true, nil
	}
	return nil, false, nil
}

// Reset rewinds the iterator to its first element.
func (it *GeomTIterator) Reset() {
	it.idx = 0
}

func flattenGeomT(t geom.T, into []geom.T) []geom.T {
	switch t := t.(type) {
	case *geom.Point, *geom.LineString, *geom.Polygon:
		return append(into, t)
	case *geom.MultiPoint:
		for i := 0; i < t.NumPoints(); i++ {
			into = append(into, t.Point(i))
		}
		return into
	case *geom.MultiLineString:
		for i := 0; i < t.NumLineStrings(); i++ {
			into = append(into, t.LineString(i))
		}
		return into
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			into = append(into, t.Polygon(i))
		}
		return into
	case *geom.GeometryCollection:
		for i := 0; i < t.NumGeoms(); i++ {
			into = flattenGeomT(t.Geom(i), into)
		}
		return into
	default:
		return into
	}
}
