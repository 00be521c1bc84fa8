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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineDistanceCoincidentPointsIsZero(t *testing.T) {
	d := haversineDistance(10, 20, 10, 20)
	require.Zero(t, d)
}

func TestHaversineDistanceEquatorQuarterCircumference(t *testing.T) {
	d := haversineDistance(0, 0, 90, 0)
	require.InDelta(t, radius*1.5707963267948966, d, 1.0)
}

func TestVincentyInverseOneDegreeLatitudeAtEquator(t *testing.T) {
	// The WGS-84 meridian arc from 0 to 1 degree latitude; the sphere
	// approximation gives about 111195 m for the same pair.
	d := vincentyInverse(WGS84Spheroid, 0, 0, 0, 1)
	require.InDelta(t, 110574.4, d, 500)
}

func TestVincentyInverseCoincidentPointsIsZero(t *testing.T) {
	d := vincentyInverse(WGS84Spheroid, 5, 5, 5, 5)
	require.Zero(t, d)
}

func TestVincentyInverseSymmetric(t *testing.T) {
	d1 := vincentyInverse(WGS84Spheroid, 0, 0, 10, 10)
	d2 := vincentyInverse(WGS84Spheroid, 10, 10, 0, 0)
	require.InDelta(t, d1, d2, 1e-6)
}

func TestWGS84SpheroidConstants(t *testing.T) {
	require.InDelta(t, 6378137.0, WGS84Spheroid.Radius, 1e-9)
	require.InDelta(t, 1.0/298.257223563, WGS84Spheroid.Flattening, 1e-12)
}
