package parser

import "errors"

// Sentinel errors for a malformed or unsupported transition-system file
// (spec §7: "File missing or malformed → fatal, abort with a diagnostic").
var (
	ErrEmptyLine        = errors.New("parser: unexpected empty tokenized line")
	ErrBadID            = errors.New("parser: node id is not an integer")
	ErrUnknownRef       = errors.New("parser: reference to an undeclared node id")
	ErrUnknownSort      = errors.New("parser: reference to an undeclared sort id")
	ErrUnknownKeyword   = errors.New("parser: unrecognized line keyword")
	ErrUnsupportedOp    = errors.New("parser: operator is outside this core's supported IR")
	ErrArity            = errors.New("parser: wrong number of arguments for this keyword")
	ErrDuplicateID      = errors.New("parser: node id declared more than once")
	ErrNotBitvectorSort = errors.New("parser: expected a bitvec sort, got an array sort")
)
