// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package eclib

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storj.io/eclib/private/backend"
	"storj.io/eclib/private/codec"
	"storj.io/eventkit"
)

// Config defines the scheme a Driver is bound with.
type Config struct {
	// K is the number of data fragments.
	K int
	// M is the number of parity fragments. It must be zero for striping
	// and positive for every other family.
	M int

	// Type names the codec family. Exactly one of Type and Backend must be
	// set.
	Type string
	// Backend names a backend added with RegisterBackend.
	Backend string

	// Checksum names the per-fragment checksum, "none" when empty.
	Checksum string

	// Validate additionally requires the family to be available on this
	// host before it is opened.
	Validate bool

	// Log receives debug output. Nothing is logged when nil.
	Log *zap.Logger
}

// NewDriver validates config and binds a Driver to the selected backend.
func NewDriver(ctx context.Context, config Config) (*Driver, error) {
	return config.NewDriver(ctx)
}

// NewDriver validates config and binds a Driver to the selected backend.
func (config Config) NewDriver(ctx context.Context) (_ *Driver, err error) {
	defer mon.Task()(&ctx)(&err)

	log := config.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("eclib")

	scheme, open, err := config.scheme()
	if err != nil {
		return nil, Error.Wrap(err)
	}

	b, err := open(scheme)
	if err != nil {
		if !codec.ErrBackendInitialization.Has(err) {
			err = codec.ErrBackendInitialization.Wrap(err)
		}
		initFailed(log, scheme, err)
		return nil, Error.Wrap(err)
	}

	if missing := codec.MissingCapabilities(b); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = string(c)
		}
		err := codec.ErrBackendInitialization.New("backend %s is missing required operations: %s", b.Name(), strings.Join(names, ", "))
		initFailed(log, scheme, err)
		return nil, Error.Wrap(err)
	}

	log.Debug("driver bound",
		zap.String("ec_type", scheme.Name()),
		zap.Int("k", scheme.K),
		zap.Int("m", scheme.M),
		zap.Int("hd", scheme.HD),
		zap.Stringer("checksum", scheme.Checksum))

	return &Driver{
		scheme: scheme,
		codec:  b.(codec.Codec),
		log:    log,
	}, nil
}

// scheme runs the validation steps in order and returns the normalized
// scheme with the opener that serves it.
func (config Config) scheme() (codec.Scheme, codec.Opener, error) {
	if config.K <= 0 {
		return codec.Scheme{}, nil, codec.ErrInvalidParameter.New("k must be > 0, got %d", config.K)
	}
	if config.M < 0 {
		return codec.Scheme{}, nil, codec.ErrInvalidParameter.New("m must be >= 0, got %d", config.M)
	}

	switch {
	case config.Type == "" && config.Backend == "":
		return codec.Scheme{}, nil, codec.ErrInvalidParameter.New("one of ec_type or backend is required")
	case config.Type != "" && config.Backend != "":
		return codec.Scheme{}, nil, codec.ErrInvalidParameter.New("ec_type %q and backend %q are mutually exclusive", config.Type, config.Backend)
	}

	scheme := codec.Scheme{K: config.K, M: config.M, HD: config.M}
	var open codec.Opener
	if config.Type != "" {
		t, ok := codec.ParseType(config.Type)
		if !ok {
			return codec.Scheme{}, nil, codec.ErrBackendNotSupported.New("ec_type %q", config.Type)
		}
		scheme.Type = t
		open = backend.Open
	} else {
		opener, ok := lookupBackend(config.Backend)
		if !ok {
			return codec.Scheme{}, nil, codec.ErrBackendNotSupported.New("backend %q is not registered", config.Backend)
		}
		scheme.Backend = config.Backend
		open = opener
	}

	if config.Checksum != "" {
		kind, ok := codec.ParseChecksum(config.Checksum)
		if !ok {
			return codec.Scheme{}, nil, codec.ErrInvalidParameter.New("checksum_type %q", config.Checksum)
		}
		scheme.Checksum = kind
	}

	if hd, ok := backend.FixedHD(scheme.Type); ok {
		scheme.HD = hd
	}
	switch {
	case scheme.Type == codec.Striping && scheme.M != 0:
		return codec.Scheme{}, nil, codec.ErrInvalidParameter.New("m must be 0 for %s, got %d", scheme.Type, scheme.M)
	case scheme.Type != codec.Striping && scheme.M == 0:
		return codec.Scheme{}, nil, codec.ErrInvalidParameter.New("m must be > 0 for %s", scheme.Name())
	}

	if config.Validate && scheme.Type != codec.TypeUnknown && !Available(scheme.Type) {
		return codec.Scheme{}, nil, codec.ErrBackendInitialization.New("%s is not available on this host", scheme.Type)
	}

	return scheme, open, nil
}

func initFailed(log *zap.Logger, scheme codec.Scheme, err error) {
	log.Warn("backend initialization failed", zap.String("ec_type", scheme.Name()), zap.Error(err))
	evs.Event("driver-init-failure",
		eventkit.String("ec_type", scheme.Name()),
		eventkit.Int64("k", int64(scheme.K)),
		eventkit.Int64("m", int64(scheme.M)))
}
