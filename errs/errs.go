// Package errs defines the sentinel errors shared by all wordpack packages.
//
// Errors come in three classes that callers usually branch on:
//
//   - ErrInvalidArgument: the call itself is malformed, nothing was processed
//   - ErrBufferTooSmall: a source or destination buffer cannot hold the result
//   - ErrCorruptStream: the compressed input cannot be decoded
//
// Finer grained sentinels are wrapped together with their class, so both
// errors.Is(err, errs.ErrInvalidArgument) and errors.Is(err, errs.ErrInvalidStrength)
// hold for an out-of-range strength.
package errs

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrBufferTooSmall  = errors.New("buffer too small")
	ErrCorruptStream   = errors.New("corrupt stream")
)

// Codec errors.
var (
	ErrInvalidDataLength  = errors.New("data length is not a multiple of 4")
	ErrInvalidStrength    = errors.New("compression strength out of range")
	ErrInvalidAddressing  = errors.New("unknown window addressing mode")
	ErrStrengthMismatch   = errors.New("stream compression strength does not match decoder")
	ErrAddressingMismatch = errors.New("stream addressing mode does not match decoder")
	ErrIncompleteToken    = errors.New("incomplete token, more input required")
	ErrInvalidOffset      = errors.New("offset out of range")
)

// Block and block set errors.
var (
	ErrInvalidHeaderSize   = errors.New("invalid header size")
	ErrInvalidMagicNumber  = errors.New("invalid magic number")
	ErrInvalidHeaderFlags  = errors.New("invalid header flags")
	ErrChecksumMismatch    = errors.New("checksum mismatch")
	ErrWordCountMismatch   = errors.New("decoded word count does not match header")
	ErrEncoderFinished     = errors.New("encoder already finished")
	ErrInvalidChannelName  = errors.New("invalid channel name")
	ErrHashCollision       = errors.New("channel ID hash collision")
	ErrChannelExists       = errors.New("channel already added")
	ErrChannelNotFound     = errors.New("channel not found")
	ErrTooManyWords        = errors.New("too many words in block")
	ErrTooManyChannels     = errors.New("too many channels in block set")
	ErrInvalidIndexEntry   = errors.New("invalid index entry")
	ErrInvalidPayloadSize  = errors.New("payload size does not match header")
	ErrUnsupportedEncoding = errors.New("unsupported encoding type")
)

// Wrap joins an error class with a detail sentinel.
func Wrap(class, detail error) error {
	return fmt.Errorf("%w: %w", class, detail)
}

// Wrapf joins an error class with a detail sentinel and a formatted context message.
func Wrapf(class, detail error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", class, detail, fmt.Sprintf(format, args...))
}

// Detailf annotates an error class with a formatted context message.
func Detailf(class error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", class, fmt.Sprintf(format, args...))
}
