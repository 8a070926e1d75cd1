package block

import (
	"time"

	"github.com/arloliu/wordpack/compress"
	"github.com/arloliu/wordpack/endian"
	"github.com/arloliu/wordpack/errs"
	"github.com/arloliu/wordpack/format"
	"github.com/arloliu/wordpack/internal/options"
	"github.com/arloliu/wordpack/pattern"
	"github.com/arloliu/wordpack/section"
)

// EncoderConfig holds block encoder configuration.
//
// It is built by NewEncoder from EncoderOption values and is immutable once the
// encoder exists.
type EncoderConfig struct {
	header   *section.BlockHeader
	strength uint8
	codec    compress.Codec
	engine   endian.EndianEngine
}

func newEncoderConfig(channelID uint64, startTime time.Time) *EncoderConfig {
	header := section.NewBlockHeader(channelID, startTime)

	return &EncoderConfig{
		header:   header,
		strength: pattern.DefaultStrength,
		engine:   header.Flag.GetEndianEngine(),
	}
}

// Header returns a copy of the header as configured, before any words are added.
func (c *EncoderConfig) Header() section.BlockHeader {
	return *c.header
}

// Strength returns the pattern codec strength.
func (c *EncoderConfig) Strength() uint8 {
	return c.strength
}

func (c *EncoderConfig) setEncoding(enc format.EncodingType) error {
	switch enc {
	case format.TypeRaw, format.TypePattern:
		c.header.Flag.SetEncoding(enc)
		return nil
	default:
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrUnsupportedEncoding, "%s (%d)", enc, uint8(enc))
	}
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetCompression(comp)
		return nil
	default:
		return errs.Detailf(errs.ErrInvalidArgument, "invalid block compression: %s (%d)", comp, uint8(comp))
	}
}

func (c *EncoderConfig) setStrength(strength uint8) error {
	if strength > pattern.MaxStrength {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidStrength, "%d > %d", strength, pattern.MaxStrength)
	}
	c.strength = strength

	return nil
}

func (c *EncoderConfig) setAddressing(mode format.AddressingMode) error {
	if !mode.Valid() {
		return errs.Wrapf(errs.ErrInvalidArgument, errs.ErrInvalidAddressing, "%d", mode)
	}
	c.header.Flag.SetAddressing(mode)

	return nil
}

// setEndianness sets the byte order of typed samples and header integers.
func (c *EncoderConfig) setEndianness(big bool) {
	if big {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}

	c.engine = c.header.Flag.GetEndianEngine()
}

// setCodec resolves the second-stage codec once the options are applied.
func (c *EncoderConfig) setCodec() error {
	codec, err := compress.CreateCodec(c.header.Flag.Compression(), "block")
	if err != nil {
		return err
	}
	c.codec = codec

	return nil
}

// EncoderOption represents a functional option for configuring the EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithEncoding sets the first-stage encoding. The default is format.TypePattern.
func WithEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setEncoding(enc)
	})
}

// WithCompression sets the second-stage compression. The default is
// format.CompressionNone.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}

// WithStrength sets the pattern codec strength (0..31). It has no effect on raw blocks.
func WithStrength(strength uint8) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setStrength(strength)
	})
}

// WithAddressing sets the pattern codec window addressing. The default is
// format.AddressingLinear, matching the incremental pattern encoder.
func WithAddressing(mode format.AddressingMode) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setAddressing(mode)
	})
}

// WithLittleEndian lays out typed samples and header integers little-endian.
// It is the default option.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianness(false)
	})
}

// WithBigEndian lays out typed samples and header integers big-endian.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setEndianness(true)
	})
}

// DecoderConfig holds block decoder settings.
type DecoderConfig struct {
	verifyChecksum bool
	channelID      uint64
	expectChannel  bool
}

// DecoderOption represents a functional option for configuring the DecoderConfig.
type DecoderOption = options.Option[*DecoderConfig]

// WithChecksumVerification turns checksum verification in Words on or off.
// Verification is on by default.
func WithChecksumVerification(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.verifyChecksum = enabled
	})
}

// WithExpectedChannel makes NewDecoder reject blocks of any other channel.
func WithExpectedChannel(channel string) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		id, err := channelID(channel)
		if err != nil {
			return err
		}
		c.channelID = id
		c.expectChannel = true

		return nil
	})
}

func newDecoderConfig(opts []DecoderOption) (*DecoderConfig, error) {
	cfg := &DecoderConfig{verifyChecksum: true}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
