// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"

	"storj.io/eventkit"
)

var (
	mon = monkit.Package()
	evs = eventkit.Package()
)

// Error is the default error class for eclib. Every error returned by a
// Driver belongs to it; the specific kind is detected with the classes in
// errors.go.
var Error = errs.Class("eclib")
