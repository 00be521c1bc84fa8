// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package registry is the single table a host SQL engine consults to
// learn which ST_* functions this library exposes, at which arities,
// and how each argument list's NULLs should be handled before the call
// reaches the underlying geo/geomfn/geogfn/geoindex entry point. Its
// deterministic and direct-only function sets mirror SQLite's own
// SQLITE_DETERMINISTIC and direct-only declarations for a SQLite
// geometry extension's function table.
package registry

import (
	"strings"

	"github.com/LucaCappelletti94/geolite/geo"
)

// NullPolicy governs how a FunctionSpec's Call reacts to a NULL
// (represented to Go callers as a nil interface{}) in its argument
// list, mirroring SQLite's own SQLITE_DETERMINISTIC / direct-only split
// plus the per-function NULL handling PostGIS documents for its own
// ST_* surface.
type NullPolicy int

const (
	// NullPolicyStrict returns a nil result (no error) the moment any
	// argument is NULL, matching the overwhelming majority of ST_*
	// functions in PostGIS, which all bail out to SQL NULL on a NULL
	// blob argument.
	NullPolicyStrict NullPolicy = iota
	// NullPolicyTolerant calls through even when an argument is NULL,
	// for functions whose own semantics distinguish "NULL argument" from
	// "absent argument" (none of the current catalog entries need this,
	// but the policy exists so a future variadic-default function, e.g.
	// one honoring a NULL optional SRID as "no SRID", has a home without
	// another enum value).
	NullPolicyTolerant
	// NullPolicyCustom defers the NULL decision entirely to Fn, for
	// functions whose NULL-propagation can't be expressed as a single
	// blanket rule across all of their arguments (ST_SetSRID, for
	// instance, must reject a NULL geometry but could in principle treat
	// a NULL srid as "clear the SRID" rather than failing outright).
	NullPolicyCustom
)

// Fn is the uniform shape every catalog entry's implementation takes:
// args are the call's actual arguments (already arity-checked by
// Lookup's caller), and the return value is whatever the SQL engine's
// own value marshalling layer expects to receive — a geo.Geometry, a
// float64, a string, a bool, an int, or nil for SQL NULL.
type Fn func(args []interface{}) (interface{}, error)

// FunctionSpec is one name+arity overload of the catalog.
type FunctionSpec struct {
	Name       string
	Arity      int
	NullPolicy NullPolicy
	DirectOnly bool
	Fn         Fn
}

// Catalog indexes every FunctionSpec by name; a name with more than one
// accepted arity (e.g. ST_Point/2 and ST_Point/3) has one entry per
// arity in the slice.
type Catalog map[string][]FunctionSpec

func (c Catalog) add(spec FunctionSpec) {
	c[spec.Name] = append(c[spec.Name], spec)
}

// Lookup returns the FunctionSpec registered for name at the given
// arity, or ok=false if no such overload exists. Names are compared
// case-insensitively, so "st_point" finds ST_Point.
func (c Catalog) Lookup(name string, arity int) (FunctionSpec, bool) {
	specs, ok := c[name]
	if !ok {
		for registered, candidates := range c {
			if strings.EqualFold(registered, name) {
				specs = candidates
				break
			}
		}
	}
	for _, spec := range specs {
		if spec.Arity == arity {
			return spec, true
		}
	}
	return FunctionSpec{}, false
}

// Names returns every registered function name, for a host engine that
// wants to bulk-register them with its own SQL function mechanism.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}

func geometryArg(args []interface{}, i int) (geo.Geometry, error) {
	g, ok := args[i].(geo.Geometry)
	if !ok {
		return geo.Geometry{}, geo.NewInvalidArgumentError("argument %d: expected a geometry", i)
	}
	return g, nil
}

func float64Arg(args []interface{}, i int) (float64, error) {
	switch v := args[i].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, geo.NewInvalidArgumentError("argument %d: expected a number", i)
	}
}

func intArg(args []interface{}, i int) (int, error) {
	switch v := args[i].(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, geo.NewInvalidArgumentError("argument %d: expected an integer", i)
	}
}

func stringArg(args []interface{}, i int) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", geo.NewInvalidArgumentError("argument %d: expected a string", i)
	}
	return s, nil
}

func bytesArg(args []interface{}, i int) ([]byte, error) {
	switch v := args[i].(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, geo.NewInvalidArgumentError("argument %d: expected a blob", i)
	}
}

// anyNull reports whether any of args is a SQL NULL (a nil interface).
func anyNull(args []interface{}) bool {
	for _, a := range args {
		if a == nil {
			return true
		}
	}
	return false
}
