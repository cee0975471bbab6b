// Package errors provides error handling for cs2ts.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// wrapping and user-facing hints from a single import:
//
//	if err := loadManifest(path); err != nil {
//	    return errors.Wrapf(err, "failed to load manifest %s", path)
//	}
//
//	return errors.WithHint(err, "run the parser again to refresh the manifest")
//
// The generation core itself never returns errors; it degrades per unit and
// records diagnostics. Errors only surface from I/O, configuration and the CLI.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing hints and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Sentinel errors. Wrap them to add context; test with errors.Is.
var (
	// ErrInvalidManifest indicates a declaration manifest could not be decoded
	ErrInvalidManifest = New("invalid manifest")

	// ErrUnsupportedSchema indicates a manifest schema version outside the supported range
	ErrUnsupportedSchema = New("unsupported manifest schema")

	// ErrOutOfDate indicates generated files on disk differ from a fresh generation
	ErrOutOfDate = New("generated files are out of date")

	// ErrInvalidConfig indicates configuration failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsOutOfDate reports whether err is or wraps ErrOutOfDate
func IsOutOfDate(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// WrapInvalidManifest marks err as a manifest decoding failure for path,
// keeping err as the cause
func WrapInvalidManifest(err error, path string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrapf(err, "manifest %s", path), ErrInvalidManifest)
}
