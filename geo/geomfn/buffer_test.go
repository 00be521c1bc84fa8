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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferOfPointIsApproximatelyCircular(t *testing.T) {
	pt := mustParse(t, "POINT(0 0)")
	buffered, err := Buffer(pt, 1, DefaultBufferParams())
	require.NoError(t, err)

	area, err := Area(buffered)
	require.NoError(t, err)
	require.InDelta(t, math.Pi, area, 0.2)
}

func TestBufferOfZeroDistanceIsIdentity(t *testing.T) {
	pt := mustParse(t, "POINT(1 2)")
	buffered, err := Buffer(pt, 0, DefaultBufferParams())
	require.NoError(t, err)
	require.Equal(t, pt.EWKB(), buffered.EWKB())
}

func TestBufferOfEmptyGeometryIsEmpty(t *testing.T) {
	empty := mustParse(t, "GEOMETRYCOLLECTION EMPTY")
	buffered, err := Buffer(empty, 1, DefaultBufferParams())
	require.NoError(t, err)
	require.True(t, buffered.Empty())
}

func TestBufferLargerQuadSegsApproximatesBetterCircle(t *testing.T) {
	pt := mustParse(t, "POINT(0 0)")
	coarse, err := Buffer(pt, 1, BufferParams{QuadSegs: 2})
	require.NoError(t, err)
	fine, err := Buffer(pt, 1, BufferParams{QuadSegs: 16})
	require.NoError(t, err)

	coarseArea, err := Area(coarse)
	require.NoError(t, err)
	fineArea, err := Area(fine)
	require.NoError(t, err)
	require.Greater(t, fineArea, coarseArea)
}

func TestBufferOfNegativeDistanceErodesAreaInward(t *testing.T) {
	square := mustParse(t, "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))")
	eroded, err := Buffer(square, -1, DefaultBufferParams())
	require.NoError(t, err)

	area, err := Area(eroded)
	require.NoError(t, err)
	require.Less(t, area, 100.0)
	require.Greater(t, area, 0.0)
}

func TestDefaultBufferParamsMatchPostGISDefaults(t *testing.T) {
	p := DefaultBufferParams()
	require.Equal(t, 8, p.QuadSegs)
	require.Equal(t, BufferEndCapRound, p.EndCap)
	require.Equal(t, BufferJoinRound, p.Join)
	require.InDelta(t, 5.0, p.MitreLimit, 1e-9)
	require.Equal(t, BufferSideBoth, p.Side)
}

func TestParseBufferParamsEmptyStringGivesDefaults(t *testing.T) {
	p, err := ParseBufferParams("")
	require.NoError(t, err)
	require.Equal(t, DefaultBufferParams(), p)
}

func TestParseBufferParamsOverridesOptions(t *testing.T) {
	p, err := ParseBufferParams("quad_segs=16 endcap=square join=mitre mitre_limit=2.5 side=left")
	require.NoError(t, err)
	require.Equal(t, 16, p.QuadSegs)
	require.Equal(t, BufferEndCapSquare, p.EndCap)
	require.Equal(t, BufferJoinMitre, p.Join)
	require.InDelta(t, 2.5, p.MitreLimit, 1e-9)
	require.Equal(t, BufferSideLeft, p.Side)
}

func TestParseBufferParamsRejectsUnknownOption(t *testing.T) {
	_, err := ParseBufferParams("bogus=1")
	require.Error(t, err)
}

func TestParseBufferParamsRejectsMalformedField(t *testing.T) {
	_, err := ParseBufferParams("quad_segs")
	require.Error(t, err)
}

func TestParseBufferParamsRejectsNonPositiveQuadSegs(t *testing.T) {
	_, err := ParseBufferParams("quad_segs=0")
	require.Error(t, err)
}
