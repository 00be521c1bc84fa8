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
	"strconv"
	"strings"

	"github.com/LucaCappelletti94/geolite/geo"
)

// BufferEndCapStyle is the ST_Buffer "endcap" option.
type BufferEndCapStyle int

// End cap styles.
const (
	BufferEndCapRound BufferEndCapStyle = iota
	BufferEndCapFlat
	BufferEndCapSquare
)

// BufferJoinStyle is the ST_Buffer "join" option.
type BufferJoinStyle int

// Join styles.
const (
	BufferJoinRound BufferJoinStyle = iota
	BufferJoinMitre
	BufferJoinBevel
)

// BufferSide is the ST_Buffer "side" option, used for one-sided buffers
// of linear geometries.
type BufferSide int

// Buffer sides.
const (
	BufferSideBoth BufferSide = iota
	BufferSideLeft
	BufferSideRight
)

// BufferParams mirrors the PostGIS ST_Buffer "key=value key2=value2..."
// option string.
type BufferParams struct {
	QuadSegs   int
	EndCap     BufferEndCapStyle
	Join       BufferJoinStyle
	MitreLimit float64
	Side       BufferSide
}

// DefaultBufferParams matches PostGIS's ST_Buffer defaults.
func DefaultBufferParams() BufferParams {
	return BufferParams{
		QuadSegs:   8,
		EndCap:     BufferEndCapRound,
		Join:       BufferJoinRound,
		MitreLimit: 5.0,
		Side:       BufferSideBoth,
	}
}

// ParseBufferParams parses a PostGIS-style "key=value key2=value2"
// ST_Buffer options string.
func ParseBufferParams(s string) (BufferParams, error) {
	p := DefaultBufferParams()
	if strings.TrimSpace(s) == "" {
		return p, nil
	}
	for _, field := range strings.Fields(s) {
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			return BufferParams{}, geo.NewInvalidArgumentError("buffer: invalid option %q", field)
		}
		key, val := strings.ToLower(kv[0]), strings.ToLower(kv[1])
		switch key {
		case "quad_segs":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return BufferParams{}, geo.NewInvalidArgumentError("buffer: invalid quad_segs %q", val)
			}
			p.QuadSegs = n
		case "endcap":
			switch val {
			case "round":
				p.EndCap = BufferEndCapRound
			case "flat", "butt":
				p.EndCap = BufferEndCapFlat
			case "square":
				p.EndCap = BufferEndCapSquare
			default:
				return BufferParams{}, geo.NewInvalidArgumentError("buffer: invalid endcap %q", val)
			}
		case "join":
			switch val {
			case "round":
				p.Join = BufferJoinRound
			case "mitre", "miter":
				p.Join = BufferJoinMitre
			case "bevel":
				p.Join = BufferJoinBevel
			default:
				return BufferParams{}, geo.NewInvalidArgumentError("buffer: invalid join %q", val)
			}
		case "mitre_limit", "miter_limit":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return BufferParams{}, geo.NewInvalidArgumentError("buffer: invalid mitre_limit %q", val)
			}
			p.MitreLimit = f
		case "side":
			switch val {
			case "both":
				p.Side = BufferSideBoth
			case "left":
				p.Side = BufferSideLeft
			case "right":
				p.Side = BufferSideRight
			default:
				return BufferParams{}, geo.NewInvalidArgumentError("buffer: invalid side %q", val)
			}
		default:
			return BufferParams{}, geo.NewInvalidArgumentError("buffer: unknown option %q", key)
		}
	}
	return p, nil
}
