package wire

import (
	"errors"
)

var (
	// ErrInvalidHeaderLength is returned when a serialized block header is
	// not exactly HeaderSize bytes.
	ErrInvalidHeaderLength = errors.New("invalid block header length")
)
