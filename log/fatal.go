package log

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Common errors that can happen on startup of a command.
var (
	ErrMalformedConfig = newFatalError("ERR_MALFORMED_CONFIG", "config file is malformed")
	ErrBadFlags        = newFatalError("ERR_BAD_FLAGS", "bad CLI flags")
	ErrEnsureDataDir   = newFatalError("ERR_ENSURE_DATA_DIR", "could not open/create data dir")
	ErrLockDataDir     = newFatalError("ERR_LOCK_DATA_DIR", "data dir is used by another process")
	ErrOpenStore       = newFatalError("ERR_OPEN_STORE", "could not open extrinsics store")
)

// FatalError describes an error that terminates a command with a stable code.
type FatalError struct {
	Code   string
	Text   string
	Reason error
}

func newFatalError(code, text string) func(reason error) *FatalError {
	return func(reason error) *FatalError {
		return &FatalError{
			Code:   code,
			Text:   text,
			Reason: reason,
		}
	}
}

func (fe *FatalError) Error() string {
	if fe.Reason == nil {
		return fe.Text
	}
	return fmt.Sprintf("%s: %v", fe.Text, fe.Reason)
}

func (fe *FatalError) Unwrap() error {
	return fe.Reason
}

// MarshalLogObject implements logging encoder for FatalError.
func (fe *FatalError) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("code", fe.Code)
	encoder.AddString("error", fe.Error())
	return nil
}
