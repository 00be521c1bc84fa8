// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geoindex

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/google/btree"

	"github.com/LucaCappelletti94/geolite/geo"
	"github.com/LucaCappelletti94/geolite/geo/geopb"
)

// MemIndex is a pure-Go, in-process spatial index for callers with no
// host SQLite connection to back an rtree virtual table. It indexes on
// MinX via a btree (ordered by MinX then primary key) and filters
// candidates by a full bounding-box intersection test on Query, trading
// a wider candidate scan for the one-dimensional ordering a btree
// naturally provides.
type MemIndex struct {
	bt    *btree.BTree
	boxes map[int64]geopb.BoundingBox
}

// NewMemIndex returns an empty MemIndex.
func NewMemIndex() *MemIndex {
	return &MemIndex{
		bt:    btree.New(8),
		boxes: make(map[int64]geopb.BoundingBox),
	}
}

type memIndexEntry struct {
	minX float64
	pk   int64
}

func (e memIndexEntry) Less(than btree.Item) bool {
	o := than.(memIndexEntry)
	if e.minX == o.minX {
		return e.pk < o.pk
	}
	return e.minX < o.minX
}

// Insert adds g under primary key pk. Empty geometries have no bounding
// box and are not indexed.
func (idx *MemIndex) Insert(pk int64, g geo.Geometry) {
	box, ok := Bbox(g)
	if !ok {
		return
	}
	if existing, ok := idx.boxes[pk]; ok {
		idx.bt.Delete(memIndexEntry{minX: existing.MinX, pk: pk})
	}
	idx.boxes[pk] = box
	idx.bt.ReplaceOrInsert(memIndexEntry{minX: box.MinX, pk: pk})
}

// Delete removes pk from the index. It is a no-op if pk was never
// inserted or was inserted with an empty geometry.
func (idx *MemIndex) Delete(pk int64) {
	box, ok := idx.boxes[pk]
	if !ok {
		return
	}
	if idx.bt.Delete(memIndexEntry{minX: box.MinX, pk: pk}) == nil {
		panic(errors.AssertionFailedf("memindex: pk %d tracked in boxes but missing from btree", pk))
	}
	delete(idx.boxes, pk)
}

// Query returns, sorted ascending, the primary keys of every indexed
// geometry whose bounding box intersects box.
func (idx *MemIndex) Query(box geopb.BoundingBox) []int64 {
	var result []int64
	idx.bt.AscendGreaterOrEqual(memIndexEntry{minX: box.MinX - maxBoxWidth(idx)}, func(i btree.Item) bool {
		e := i.(memIndexEntry)
		if e.minX > box.MaxX {
			return false
		}
		if other, ok := idx.boxes[e.pk]; ok && other.Intersects(box) {
			result = append(result, e.pk)
		}
		return true
	})
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// maxBoxWidth bounds how far left of box.MinX a candidate's own MinX
// could still be while its box extends rightward into box: the widest
// indexed box's width. Without this, a box entirely to the left of
// box.MinX but wide enough to overlap it would be skipped by the
// ascending scan's starting point.
func maxBoxWidth(idx *MemIndex) float64 {
	var widest float64
	for _, b := range idx.boxes {
		if w := b.MaxX - b.MinX; w > widest {
			widest = w
		}
	}
	return widest
}

// Len reports the number of geometries currently indexed.
func (idx *MemIndex) Len() int {
	return idx.bt.Len()
}
