// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package wkt implements the EWKT "SRID=<srid>;" envelope around the
// OGC WKT grammar. The WKT grammar itself is delegated to
// github.com/twpayne/go-geom/encoding/wkt, the same pure-Go, cgo-free
// library this module already uses for its EWKB/WKB paths.
package wkt

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
	geomwkt "github.com/twpayne/go-geom/encoding/wkt"
)

const sridPrefix = "SRID="

// MaxRecursionDepth bounds nested GEOMETRYCOLLECTION depth.
const MaxRecursionDepth = 32

// Unmarshal parses WKT or EWKT text into a geom.T. An "SRID=<int>;" prefix,
// if present, is stripped and the SRID is applied to the result via
// adjustGeomSRID-equivalent logic in the geo package; Unmarshal itself
// returns the embedded SRID separately since go-geom's WKT decoder has
// no notion of it.
func Unmarshal(s string) (geom.T, int, error) {
	srid := 0
	if strings.HasPrefix(s, sridPrefix) {
		rest := s[len(sridPrefix):]
		semi := strings.IndexByte(rest, ';')
		if semi < 0 {
			return nil, 0, errors.New("wkt: missing ';' after SRID prefix")
		}
		n, err := strconv.Atoi(rest[:semi])
		if err != nil {
			return nil, 0, errors.Wrap(err, "wkt: invalid SRID prefix")
		}
		srid = n
		s = rest[semi+1:]
	}
	if err := checkRecursionDepth(s); err != nil {
		return nil, 0, err
	}
	t, err := geomwkt.Unmarshal(s)
	if err != nil {
		return nil, 0, errors.Wrap(err, "wkt: parse error")
	}
	return t, srid, nil
}

// checkRecursionDepth rejects GEOMETRYCOLLECTION nestings deeper than
// MaxRecursionDepth before handing the text to the underlying parser, since
// go-geom's own parser has no configurable recursion cap.
func checkRecursionDepth(s string) error {
	upper := strings.ToUpper(s)
	var gcParens []bool // per open '(': whether it opened a GEOMETRYCOLLECTION
	depth, maxDepth, pendingGC := 0, 0, false
	for i := 0; i < len(upper); i++ {
		switch c := upper[i]; {
		case strings.HasPrefix(upper[i:], "GEOMETRYCOLLECTION"):
			pendingGC = true
		case c == '(':
			gcParens = append(gcParens, pendingGC)
			if pendingGC {
				depth++
				maxDepth = max(maxDepth, depth)
			}
			pendingGC = false
		case c == ')' || c == ',':
			if n := len(gcParens); c == ')' && n > 0 {
				if gcParens[n-1] {
					depth--
				}
				gcParens = gcParens[:n-1]
			}
			pendingGC = false
		}
	}
	if maxDepth > MaxRecursionDepth {
		return errors.Newf("wkt: geometry collection nesting exceeds %d levels", MaxRecursionDepth)
	}
	return nil
}

// Marshal prints t as plain WKT (no SRID prefix), using go-geom's encoder,
// which already emits the shortest round-trip float representation via
// strconv.AppendFloat(..., 'g', -1, 64).
func Marshal(t geom.T) (string, error) {
	s, err := geomwkt.Marshal(t)
	if err != nil {
		return "", errors.Wrap(err, "wkt: marshal error")
	}
	return s, nil
}

// MarshalEWKT prints t as EWKT: an "SRID=<srid>;" prefix (when srid is
// nonzero) followed by WKT.
func MarshalEWKT(t geom.T, srid int) (string, error) {
	s, err := Marshal(t)
	if err != nil {
		return "", err
	}
	if srid == 0 {
		return s, nil
	}
	return sridPrefix + strconv.Itoa(srid) + ";" + s, nil
}
