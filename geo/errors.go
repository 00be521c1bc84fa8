// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geo

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/LucaCappelletti94/geolite/geo/geopb"
)

// ErrorKind enumerates the error taxonomy every ST_* function fails
// into: no entry point ever surfaces a bare string, only one of these
// kinds wrapping a cause.
type ErrorKind int

const (
	ErrorKindParse ErrorKind = iota
	ErrorKindUnsupportedGeometry
	ErrorKindDimensionMismatch
	ErrorKindSRIDMismatch
	ErrorKindInvalidArgument
	ErrorKindTopologyException
	ErrorKindCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindParse:
		return "ParseError"
	case ErrorKindUnsupportedGeometry:
		return "UnsupportedGeometry"
	case ErrorKindDimensionMismatch:
		return "DimensionMismatch"
	case ErrorKindSRIDMismatch:
		return "SRIDMismatch"
	case ErrorKindInvalidArgument:
		return "InvalidArgument"
	case ErrorKindTopologyException:
		return "TopologyException"
	case ErrorKindCancelled:
		return "Cancelled"
	default:
		return "UnknownError"
	}
}

// Error is the single error type returned by every core entry point. It
// always carries a Kind so that host adapters can map it onto their own
// error channel without string sniffing.
type Error struct {
	Kind  ErrorKind
	cause error
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, cause: errors.Newf(format, args...)}
}

// NewParseError reports a malformed WKT, EWKB, or GeoJSON payload.
// codec is e.g. "wkt"/"ewkb"/"geojson"; pos is a byte offset or line
// number, whichever the codec tracks.
func NewParseError(codec string, pos int, message string) *Error {
	return newError(ErrorKindParse, "%s: %s (at %d)", codec, message, pos)
}

// NewUnsupportedGeometryError reports a curve type or unrecognized WKB
// type code.
func NewUnsupportedGeometryError(format string, args ...interface{}) *Error {
	return newError(ErrorKindUnsupportedGeometry, format, args...)
}

// NewDimensionMismatchError reports mixing XY with XYZ/XYM where an
// operation requires matching dimensionality.
func NewDimensionMismatchError(format string, args ...interface{}) *Error {
	return newError(ErrorKindDimensionMismatch, format, args...)
}

// NewMismatchingSRIDsError reports a binary operation invoked on operands
// with differing SRIDs.
func NewMismatchingSRIDsError(a, b geopb.SpatialObject) *Error {
	return newError(
		ErrorKindSRIDMismatch,
		"operation on mixed SRIDs: %d != %d", a.SRID, b.SRID,
	)
}

// NewInvalidArgumentError reports a negative buffer distance, an empty
// geometry where one is not allowed, or a non-finite coordinate.
func NewInvalidArgumentError(format string, args ...interface{}) *Error {
	return newError(ErrorKindInvalidArgument, format, args...)
}

// NewTopologyError reports an overlay that cannot produce a valid result.
func NewTopologyError(format string, args ...interface{}) *Error {
	return newError(ErrorKindTopologyException, format, args...)
}

// NewCancelledError reports a caller-supplied deadline being exceeded.
func NewCancelledError() *Error {
	return newError(ErrorKindCancelled, "operation cancelled: deadline exceeded")
}

// AsError extracts a *geo.Error from any error, following the same path
// as errors.As. It is a convenience for host adapters that need the Kind
// to map onto their own error channel.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
