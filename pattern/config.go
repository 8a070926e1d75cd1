package pattern

import (
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/internal/options"
	"github.com/arloliu/wordpack/internal/window"
)

const (
	// DefaultStrength is the compression strength used when none is configured.
	DefaultStrength uint8 = window.MaxStrength
	// MaxStrength is the largest accepted compression strength.
	MaxStrength uint8 = window.MaxStrength
	// WordSize is the width of a word in bytes.
	WordSize = window.WordSize
)

// EncoderConfig holds the settings shared by the one-shot and incremental encoders.
//
// A config is only built through options, and is validated while the options are
// applied, so an encoder never starts with an out-of-range strength.
type EncoderConfig struct {
	strength   uint8
	addressing format.AddressingMode
}

// EncoderOption represents a functional option for configuring an EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithStrength sets the compression strength (0..31).
//
// The history window holds strength+1 words. Higher strength finds more matches on
// data with longer-period patterns at a higher search cost.
func WithStrength(strength uint8) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		if strength > MaxStrength {
			return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidStrength, "%d > %d", strength, MaxStrength)
		}
		cfg.strength = strength

		return nil
	})
}

// WithAddressing sets the window addressing mode explicitly.
//
// Without this option the one-shot functions use format.AddressingCircular and
// the incremental Encoder uses format.AddressingLinear.
func WithAddressing(mode format.AddressingMode) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		if !mode.Valid() {
			return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidAddressing, "%d", mode)
		}
		cfg.addressing = mode

		return nil
	})
}

// Strength returns the configured compression strength.
func (c *EncoderConfig) Strength() uint8 {
	return c.strength
}

// Addressing returns the configured window addressing mode.
func (c *EncoderConfig) Addressing() format.AddressingMode {
	return c.addressing
}

func (c *EncoderConfig) header() streamHeader {
	return streamHeader{strength: c.strength, addressing: c.addressing}
}

func newEncoderConfig(addressing format.AddressingMode, opts []EncoderOption) (*EncoderConfig, error) {
	cfg := &EncoderConfig{
		strength:   DefaultStrength,
		addressing: addressing,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DecoderConfig holds optional expectations a decoder checks against the stream header.
type DecoderConfig struct {
	strength         uint8
	addressing       format.AddressingMode
	expectStrength   bool
	expectAddressing bool
}

// DecoderOption represents a functional option for configuring a DecoderConfig.
type DecoderOption = options.Option[*DecoderConfig]

// WithExpectedStrength makes the decoder reject streams written with another strength.
func WithExpectedStrength(strength uint8) DecoderOption {
	return options.New(func(cfg *DecoderConfig) error {
		if strength > MaxStrength {
			return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidStrength, "%d > %d", strength, MaxStrength)
		}
		cfg.strength = strength
		cfg.expectStrength = true

		return nil
	})
}

// WithExpectedAddressing makes the decoder reject streams written with another
// addressing mode.
func WithExpectedAddressing(mode format.AddressingMode) DecoderOption {
	return options.New(func(cfg *DecoderConfig) error {
		if !mode.Valid() {
			return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidAddressing, "%d", mode)
		}
		cfg.addressing = mode
		cfg.expectAddressing = true

		return nil
	})
}

func newDecoderConfig(opts []DecoderOption) (*DecoderConfig, error) {
	cfg := &DecoderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// check validates a parsed stream header against the configured expectations.
func (c *DecoderConfig) check(h streamHeader) error {
	if c.expectStrength && h.strength != c.strength {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrStrengthMismatch,
			"stream %d, decoder %d", h.strength, c.strength)
	}
	if c.expectAddressing && h.addressing != c.addressing {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrAddressingMismatch,
			"stream %s, decoder %s", h.addressing, c.addressing)
	}

	return nil
}
