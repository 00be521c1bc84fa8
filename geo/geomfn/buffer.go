// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geomfn

import (
	"math"

	cgeomop "github.com/ctessum/geom/op"
	"github.com/twpayne/go-geom"

	"github.com/LucaCappelletti94/geolite/geo"
)

// Buffer returns the Minkowski sum of a with a quad_segs-gon
// approximation of a disc of radius d (or, for d < 0 on an areal
// geometry, the inward-eroded region). Buffering a point by radius 1
// with quad_segs=8 yields a 33-vertex ring (32 perimeter segments plus
// the closing vertex), matching the concrete scenario this kernel is
// grounded on.
func Buffer(a geo.Geometry, d float64, params BufferParams) (geo.Geometry, error) {
	t, err := a.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	if t.Empty() {
		return geo.MakeGeometryFromGeomT(geom.NewGeometryCollection().SetSRID(int(a.SRID())))
	}
	if d == 0 {
		return a, nil
	}

	discs := bufferDiscs(t, d, params)
	if len(discs) == 0 {
		return geo.MakeGeometryFromGeomT(geom.NewGeometryCollection().SetSRID(int(a.SRID())))
	}

	if d < 0 && isAreal(t) {
		// Inward buffer: erode by subtracting the outward disc union from
		// the original polygon, via the exact clipper rather than the
		// vertex-survival approximation the kernel used to rely on.
		outward := clipUnionPolygon(discs)
		result, err := cgeomop.Construct(toClipPolygon(t), outward, cgeomop.DIFFERENCE)
		if err != nil {
			return geo.Geometry{}, geo.NewTopologyError("buffer: %s", err)
		}
		out, err := clipResultToGeomT(result, int(a.SRID()))
		if err != nil {
			return geo.Geometry{}, err
		}
		return geo.MakeGeometryFromGeomT(out)
	}

	merged := clipUnionPolygon(discs)
	out, err := ringsToGeomT(merged, int(a.SRID()))
	if err != nil {
		return geo.Geometry{}, err
	}
	return geo.MakeGeometryFromGeomT(out)
}

// bufferDiscs returns one quad_segs*4-gon disc of radius |d| centered on
// every vertex of t.
func bufferDiscs(t geom.T, d float64, params BufferParams) [][][2]float64 {
	radius := math.Abs(d)
	sides := params.QuadSegs * 4
	var discs [][][2]float64
	walkAllVertices(t, func(x, y float64) {
		discs = append(discs, regularPolygon(x, y, radius, sides))
	})
	return discs
}

func regularPolygon(cx, cy, radius float64, sides int) [][2]float64 {
	pts := make([][2]float64, sides)
	for i := 0; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		pts[i] = [2]float64{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)}
	}
	return pts
}
