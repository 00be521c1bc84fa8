// Copyright 2021 The Cockroach Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package registry

import (
	"github.com/cockroachdb/errors"

	"github.com/LucaCappelletti94/geolite/geo"
)

// Call looks up name/len(args) in c and invokes it, applying the
// overload's NullPolicy first and recovering any panic the
// implementation raises into a *geo.Error so that a single bad input
// can never take down the host process embedding this library. A panic
// is always a bug in this library, not in caller input, so it is
// reported as an InvalidArgument-shaped error carrying the original
// panic value as its cause — there is no dedicated taxonomy slot for an
// internal assertion failure, and InvalidArgument is the closest the
// existing error kinds come to "this call could not be completed".
func Call(c Catalog, name string, args []interface{}) (result interface{}, err error) {
	spec, ok := c.Lookup(name, len(args))
	if !ok {
		return nil, geo.NewInvalidArgumentError("unknown function %s/%d", name, len(args))
	}

	if spec.NullPolicy == NullPolicyStrict && anyNull(args) {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(name, r)
			result = nil
		}
	}()

	return spec.Fn(args)
}

func newPanicError(name string, r interface{}) error {
	if e, ok := r.(error); ok {
		return geo.NewInvalidArgumentError("%s: recovered from an internal panic: %s", name, errors.Wrap(e, "panic"))
	}
	return geo.NewInvalidArgumentError("%s: recovered from an internal panic: %v", name, r)
}
