package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

const (
	// input err
	ErrInvalidHex       = 1101
	ErrInvalidHeader    = 1102
	ErrInvalidTarget    = 1103
	ErrReadInput        = 1104
	ErrInvalidParameter = 1105
	ErrMessageTooLong   = 1106

	// config err
	ErrLoadConfig  = 1201
	ErrCheckConfig = 1202
	ErrInitLogger  = 1203

	// datastore err
	ErrOpenDatastore  = 1301
	ErrWriteDatastore = 1302
	ErrReadDatastore  = 1303

	// mining err
	ErrCreateMiner    = 1401
	ErrNonceExhausted = 1402
	ErrMiningCanceled = 1403

	// other err
	ErrUnknownErr = 1701
)

var ErrCode = map[uint32]string{
	ErrInvalidHex:       "Argument must be hexadecimal string",
	ErrInvalidHeader:    "Invalid block header",
	ErrInvalidTarget:    "Invalid target",
	ErrReadInput:        "Failed to read input",
	ErrInvalidParameter: "Invalid parameter",
	ErrMessageTooLong:   "Message too long",
	ErrLoadConfig:       "Failed to load config",
	ErrCheckConfig:      "Invalid config",
	ErrInitLogger:       "Failed to init logger",
	ErrOpenDatastore:    "Failed to open datastore",
	ErrWriteDatastore:   "Failed to write datastore",
	ErrReadDatastore:    "Failed to read datastore",
	ErrCreateMiner:      "Failed to create miner",
	ErrNonceExhausted:   "No nonce satisfies the target",
	ErrMiningCanceled:   "Mining canceled",
	ErrUnknownErr:       "Unknown error",
}

// CodedError is an error carrying one of the codes above.
type CodedError struct {
	code  uint32
	cause error
}

// New returns a CodedError for code wrapping cause, which may be nil.
func New(code uint32, cause error) *CodedError {
	return &CodedError{code: code, cause: cause}
}

// Code returns the numeric code of e.
func (e *CodedError) Code() uint32 { return e.code }

// Cause returns the wrapped error, for github.com/pkg/errors.Cause.
func (e *CodedError) Cause() error { return e.cause }

// Unwrap returns the wrapped error.
func (e *CodedError) Unwrap() error { return e.cause }

func (e *CodedError) Error() string {
	msg, ok := ErrCode[e.code]
	if !ok {
		msg = ErrCode[ErrUnknownErr]
	}
	if e.cause == nil {
		return fmt.Sprintf("%s (%d)", msg, e.code)
	}
	return fmt.Sprintf("%s (%d): %v", msg, e.code, e.cause)
}

// Wrap annotates err with code and a message. It returns nil if err is nil.
func Wrap(code uint32, err error, msg string) error {
	if err == nil {
		return nil
	}
	return New(code, pkgerrors.Wrap(err, msg))
}

// CodeOf returns the code of the outermost CodedError in err's chain, or
// ErrUnknownErr.
func CodeOf(err error) uint32 {
	for err != nil {
		if ce, ok := err.(*CodedError); ok {
			return ce.code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			c, ok := err.(interface{ Cause() error })
			if !ok {
				break
			}
			err = c.Cause()
			continue
		}
		err = u.Unwrap()
	}
	return ErrUnknownErr
}
