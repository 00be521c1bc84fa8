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
	"fmt"
	"regexp"

	"github.com/LucaCappelletti94/geolite/geo"
)

// identifierPattern mirrors validate_identifier's "only [a-zA-Z0-9_]
// allowed" rule.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func validateIdentifier(kind, name string) error {
	if !identifierPattern.MatchString(name) {
		return geo.NewInvalidArgumentError("invalid %s identifier %q: only letters, digits and underscore are allowed", kind, name)
	}
	return nil
}

// rtreeTableName is the name of the shadow rtree virtual table backing
// the spatial index on table.column.
func rtreeTableName(table, column string) string {
	return fmt.Sprintf("%s_%s_rtree", table, column)
}

// CreateSpatialIndexDDL returns, in execution order, the SQL statements
// the host engine must run to create and populate an R-tree spatial
// index over column in table: the virtual rtree table, a rebuild of its
// contents from the table's current rows, and the three AFTER
// INSERT/UPDATE/DELETE triggers that keep it in sync. Every row whose
// column value is NULL or an empty geometry is excluded from the index,
// since such rows have no bounding box to index.
//
// The caller is expected to run these statements inside a single
// transaction (SAVEPOINT/RELEASE in the host's own style) so that a
// partial failure leaves no orphaned rtree table or trigger behind.
func CreateSpatialIndexDDL(table, column string) ([]string, error) {
	if err := validateIdentifier("table", table); err != nil {
		return nil, err
	}
	if err := validateIdentifier("column", column); err != nil {
		return nil, err
	}
	rtree := rtreeTableName(table, column)

	return []string{
		fmt.Sprintf(
			`CREATE VIRTUAL TABLE IF NOT EXISTS [%s] USING rtree(id, xmin, xmax, ymin, ymax)`,
			rtree,
		),
		fmt.Sprintf(`DELETE FROM [%s]`, rtree),
		fmt.Sprintf(
			`INSERT INTO [%s] SELECT rowid, ST_XMin([%s]), ST_XMax([%s]), ST_YMin([%s]), ST_YMax([%s]) `+
				`FROM [%s] WHERE [%s] IS NOT NULL AND ST_IsEmpty([%s]) = 0`,
			rtree, column, column, column, column, table, column, column,
		),
		fmt.Sprintf(
			`CREATE TRIGGER IF NOT EXISTS [%s_insert] AFTER INSERT ON [%s] `+
				`WHEN NEW.[%s] IS NOT NULL AND ST_IsEmpty(NEW.[%s]) = 0 `+
				`BEGIN INSERT INTO [%s] VALUES (NEW.rowid, ST_XMin(NEW.[%s]), ST_XMax(NEW.[%s]), ST_YMin(NEW.[%s]), ST_YMax(NEW.[%s])); END`,
			rtreeTriggerBase(table, column), table, column, column, rtree, column, column, column, column,
		),
		fmt.Sprintf(
			`CREATE TRIGGER IF NOT EXISTS [%s_update] AFTER UPDATE OF [%s] ON [%s] `+
				`BEGIN `+
				`DELETE FROM [%s] WHERE id = OLD.rowid; `+
				`INSERT INTO [%s] SELECT NEW.rowid, ST_XMin(NEW.[%s]), ST_XMax(NEW.[%s]), ST_YMin(NEW.[%s]), ST_YMax(NEW.[%s]) `+
				`WHERE NEW.[%s] IS NOT NULL AND ST_IsEmpty(NEW.[%s]) = 0; `+
				`END`,
			rtreeTriggerBase(table, column), column, table,
			rtree,
			rtree, column, column, column, column,
			column, column,
		),
		fmt.Sprintf(
			`CREATE TRIGGER IF NOT EXISTS [%s_delete] AFTER DELETE ON [%s] `+
				`BEGIN DELETE FROM [%s] WHERE id = OLD.rowid; END`,
			rtreeTriggerBase(table, column), table, rtree,
		),
	}, nil
}

// DropSpatialIndexDDL returns, in execution order, the SQL statements
// the host engine must run to remove a spatial index previously created
// by CreateSpatialIndexDDL: the three maintenance triggers, then the
// shadow rtree table itself.
func DropSpatialIndexDDL(table, column string) ([]string, error) {
	if err := validateIdentifier("table", table); err != nil {
		return nil, err
	}
	if err := validateIdentifier("column", column); err != nil {
		return nil, err
	}
	base := rtreeTriggerBase(table, column)
	rtree := rtreeTableName(table, column)

	return []string{
		fmt.Sprintf(`DROP TRIGGER IF EXISTS [%s_insert]`, base),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS [%s_update]`, base),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS [%s_delete]`, base),
		fmt.Sprintf(`DROP TABLE IF EXISTS [%s]`, rtree),
	}, nil
}

func rtreeTriggerBase(table, column string) string {
	return fmt.Sprintf("%s_%s", table, column)
}
