// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geoindex provides the two things a host engine needs to back
// an R-tree index over a geometry column without this library taking on
// any storage responsibility itself: Bbox, a pure function extracting a
// geometry's extent, and the DDL text for the virtual rtree table plus
// its maintenance triggers. It additionally offers MemIndex, a pure-Go
// in-process spatial index for callers with no host SQLite connection.
package geoindex

import (
	"github.com/LucaCappelletti94/geolite/geo"
	"github.com/LucaCappelletti94/geolite/geo/geopb"
)

// Bbox returns g's bounding box. ok is false for an empty geometry,
// which has no defined extent and so cannot be indexed.
func Bbox(g geo.Geometry) (geopb.BoundingBox, bool) {
	return g.BoundingBox()
}
