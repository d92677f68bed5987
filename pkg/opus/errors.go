package opus

/*
#cgo pkg-config: opus

#include <opus.h>
*/
import "C"
import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument flags a caller-supplied parameter rejected before
	// any native call. Match with errors.Is.
	ErrInvalidArgument = errors.New("opus: invalid argument")
	// ErrClosed flags an operation on a session whose native state has
	// already been released.
	ErrClosed = errors.New("opus: use after close")
)

// Error is a negative libopus status code.
type Error int

var _ error = Error(0)

const (
	ErrBadArg         = Error(C.OPUS_BAD_ARG)
	ErrBufferTooSmall = Error(C.OPUS_BUFFER_TOO_SMALL)
	ErrInternalError  = Error(C.OPUS_INTERNAL_ERROR)
	ErrInvalidPacket  = Error(C.OPUS_INVALID_PACKET)
	ErrUnimplemented  = Error(C.OPUS_UNIMPLEMENTED)
	ErrInvalidState   = Error(C.OPUS_INVALID_STATE)
	ErrAllocFail      = Error(C.OPUS_ALLOC_FAIL)
)

// Code returns the raw native status code.
func (e Error) Code() int { return int(e) }

func (e Error) Error() string {
	switch e {
	case ErrBadArg:
		return "opus: one or more invalid/out of range arguments"
	case ErrBufferTooSmall:
		return "opus: not enough bytes allocated in the buffer"
	case ErrInternalError:
		return "opus: an internal error was detected"
	case ErrInvalidPacket:
		return "opus: the compressed data passed is corrupted"
	case ErrUnimplemented:
		return "opus: invalid/unsupported request number"
	case ErrInvalidState:
		return "opus: an encoder or decoder structure is invalid or already freed"
	case ErrAllocFail:
		return "opus: memory allocation has failed"
	default:
		return fmt.Sprintf("opus: unknown error code %d", int(e))
	}
}

// unwrap maps a native status to a typed error. Zero and positive values
// are payload lengths, never errors.
func unwrap(res C.int) error {
	if res < C.OPUS_OK {
		return Error(int(res))
	}
	return nil
}
