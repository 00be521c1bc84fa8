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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateSpatialIndexDDLStatements(t *testing.T) {
	stmts, err := CreateSpatialIndexDDL("parcels", "shape")
	require.NoError(t, err)
	require.Len(t, stmts, 6)
	require.Contains(t, stmts[0], "CREATE VIRTUAL TABLE IF NOT EXISTS [parcels_shape_rtree] USING rtree")
	require.Contains(t, stmts[1], "DELETE FROM [parcels_shape_rtree]")
	require.Contains(t, stmts[2], "INSERT INTO [parcels_shape_rtree]")
	require.Contains(t, stmts[2], "ST_IsEmpty([shape]) = 0")
	require.Contains(t, stmts[3], "CREATE TRIGGER IF NOT EXISTS [parcels_shape_insert] AFTER INSERT ON [parcels]")
	require.Contains(t, stmts[4], "CREATE TRIGGER IF NOT EXISTS [parcels_shape_update] AFTER UPDATE OF [shape] ON [parcels]")
	require.Contains(t, stmts[5], "CREATE TRIGGER IF NOT EXISTS [parcels_shape_delete] AFTER DELETE ON [parcels]")
}

func TestDropSpatialIndexDDLStatements(t *testing.T) {
	stmts, err := DropSpatialIndexDDL("parcels", "shape")
	require.NoError(t, err)
	require.Equal(t, []string{
		"DROP TRIGGER IF EXISTS [parcels_shape_insert]",
		"DROP TRIGGER IF EXISTS [parcels_shape_update]",
		"DROP TRIGGER IF EXISTS [parcels_shape_delete]",
		"DROP TABLE IF EXISTS [parcels_shape_rtree]",
	}, stmts)
}

func TestCreateSpatialIndexDDLRejectsBadIdentifiers(t *testing.T) {
	_, err := CreateSpatialIndexDDL("parcels; DROP TABLE users", "shape")
	require.Error(t, err)

	_, err = CreateSpatialIndexDDL("parcels", "shape'")
	require.Error(t, err)
}

func TestDropSpatialIndexDDLRejectsBadIdentifiers(t *testing.T) {
	_, err := DropSpatialIndexDDL("parcels", "shape--")
	require.Error(t, err)
}
