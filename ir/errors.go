// Package ir is the minimal in-repo stand-in for the external word-level
// intermediate representation (expression interning, bit-vector/array sort
// info, and transition-system iteration) that the falsifier's core analyses
// are built against. See DESIGN.md for why this lives in-repo rather than
// behind a third-party crate.
package ir

import "errors"

// Sentinel errors for the ir package, following the teacher's
// errors.New-per-condition convention (core/types.go).
var (
	// ErrUnknownRef indicates a lookup used a handle with no backing node.
	ErrUnknownRef = errors.New("ir: unknown expr ref")

	// ErrBadWidth indicates a construction request with an invalid width
	// (zero, or exceeding the 64-bit core budget).
	ErrBadWidth = errors.New("ir: bad bit-vector width")

	// ErrNotBoolean indicates an operation required a 1-bit expression.
	ErrNotBoolean = errors.New("ir: expression is not 1-bit")

	// ErrDuplicateName indicates a symbol name collision during construction.
	ErrDuplicateName = errors.New("ir: duplicate symbol name")

	// ErrUnsupportedWidth indicates a bit-vector wider than 64 bits was
	// encountered where the core requires direct Word storage.
	ErrUnsupportedWidth = errors.New("ir: widths above 64 bits are not supported by this core")

	// ErrUnsupportedArray indicates an array-sorted symbol was encountered
	// where only bit-vector symbols are supported.
	ErrUnsupportedArray = errors.New("ir: array-typed symbols are not supported by this core")
)
