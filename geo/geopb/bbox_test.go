// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geopb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoundingBoxIsEmpty(t *testing.T) {
	b := NewBoundingBox()
	require.True(t, b.Empty)
}

func TestBoundingBoxUpdate(t *testing.T) {
	b := NewBoundingBox()
	b.Update(1, 2)
	b.Update(-3, 4)
	require.False(t, b.Empty)
	require.Equal(t, BoundingBox{MinX: -3, MinY: 2, MaxX: 1, MaxY: 4}, *b)
}

func TestBoundingBoxUnion(t *testing.T) {
	a := BoundingBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := BoundingBox{MinX: 2, MinY: 2, MaxX: 3, MaxY: 3}
	require.Equal(t, BoundingBox{MinX: 0, MinY: 0, MaxX: 3, MaxY: 3}, a.Union(b))

	empty := BoundingBox{Empty: true}
	require.Equal(t, a, a.Union(empty))
	require.Equal(t, a, empty.Union(a))
}

func TestBoundingBoxIntersects(t *testing.T) {
	a := BoundingBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}
	b := BoundingBox{MinX: 1, MinY: 1, MaxX: 3, MaxY: 3}
	c := BoundingBox{MinX: 10, MinY: 10, MaxX: 11, MaxY: 11}
	require.True(t, a.Intersects(b))
	require.False(t, a.Intersects(c))
	require.False(t, a.Intersects(BoundingBox{Empty: true}))
}

func TestBoundingBoxDistanceGreaterThan(t *testing.T) {
	a := BoundingBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := BoundingBox{MinX: 10, MinY: 0, MaxX: 11, MaxY: 1}
	require.True(t, a.DistanceGreaterThan(b, 5))
	require.False(t, a.DistanceGreaterThan(b, 50))
}
