// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geogfn

import (
	"github.com/golang/geo/s2"
	"github.com/twpayne/go-geom"

	"github.com/LucaCappelletti94/geolite/geo"
)

// DistanceSphere returns the great-circle distance in metres between a
// and b, treating their coordinates as (longitude, latitude) degrees on
// a sphere. For anything beyond two single points it falls back to the
// minimum great-circle distance over every vertex pair, since a full
// spherical segment-to-segment distance (s2.Polyline/Polygon's own
// distance machinery) is unneeded for the point-heavy workloads this
// engine targets.
func DistanceSphere(a, b geo.Geometry) (float64, error) {
	return distanceWith(a, b, func(lon1, lat1, lon2, lat2 float64) float64 {
		p1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lon1))
		p2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lon2))
		return p1.Distance(p2).Radians() * 6371008.8
	})
}

// DistanceSpheroid returns the geodesic distance in metres between a and
// b on s (WGS-84 by default), via Vincenty's inverse formula.
func DistanceSpheroid(a, b geo.Geometry, s Spheroid) (float64, error) {
	return distanceWith(a, b, func(lon1, lat1, lon2, lat2 float64) float64 {
		return vincentyInverse(s, lon1, lat1, lon2, lat2)
	})
}

func distanceWith(a, b geo.Geometry, metric func(lon1, lat1, lon2, lat2 float64) float64) (float64, error) {
	if a.SRID() != b.SRID() {
		return 0, geo.NewMismatchingSRIDsError(a.SpatialObject(), b.SpatialObject())
	}
	at, err := a.AsGeomT()
	if err != nil {
		return 0, err
	}
	bt, err := b.AsGeomT()
	if err != nil {
		return 0, err
	}
	if at.Empty() || bt.Empty() {
		return 0, geo.NewInvalidArgumentError("cannot compute distance to/from an empty geometry")
	}

	best := -1.0
	walkVertices(at, func(lon1, lat1 float64) {
		walkVertices(bt, func(lon2, lat2 float64) {
			d := metric(lon1, lat1, lon2, lat2)
			if best < 0 || d < best {
				best = d
			}
		})
	})
	if best < 0 {
		return 0, geo.NewInvalidArgumentError("cannot compute distance: no vertices found")
	}
	return best, nil
}

func walkVertices(t geom.T, fn func(lon, lat float64)) {
	flat := t.FlatCoords()
	stride := t.Stride()
	if stride == 0 {
		return
	}
	for i := 0; i+1 < len(flat); i += stride {
		fn(flat[i], flat[i+1])
	}
}

// LengthSphere returns the great-circle length in metres of a's linear
// components, treating coordinates as (longitude, latitude) degrees.
func LengthSphere(a geo.Geometry) (float64, error) {
	t, err := a.AsGeomT()
	if err != nil {
		return 0, err
	}
	return lengthSphereOf(t), nil
}

func lengthSphereOf(t geom.T) float64 {
	switch t := t.(type) {
	case *geom.LineString:
		return sphereLineLength(t.FlatCoords(), t.Layout().Stride())
	case *geom.MultiLineString:
		var total float64
		for i := 0; i < t.NumLineStrings(); i++ {
			ls := t.LineString(i)
			total += sphereLineLength(ls.FlatCoords(), ls.Layout().Stride())
		}
		return total
	case *geom.GeometryCollection:
		var total float64
		for i := 0; i < t.NumGeoms(); i++ {
			total += lengthSphereOf(t.Geom(i))
		}
		return total
	default:
		return 0
	}
}

func sphereLineLength(flat []float64, stride int) float64 {
	n := len(flat) / stride
	var total float64
	for i := 1; i < n; i++ {
		lon0, lat0 := flat[(i-1)*stride], flat[(i-1)*stride+1]
		lon1, lat1 := flat[i*stride], flat[i*stride+1]
		total += haversineDistance(lon0, lat0, lon1, lat1)
	}
	return total
}
