package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	strength uint8
	label    string
	calls    []string
}

var errTooStrong = errors.New("too strong")

func withStrength(s uint8) Option[*sampleConfig] {
	return New(func(c *sampleConfig) error {
		if s > 31 {
			return errTooStrong
		}
		c.strength = s
		c.calls = append(c.calls, "strength")

		return nil
	})
}

func withLabel(label string) Option[*sampleConfig] {
	return NoError(func(c *sampleConfig) {
		c.label = label
		c.calls = append(c.calls, "label")
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &sampleConfig{}
	err := Apply(cfg, withLabel("a"), withStrength(4), withLabel("b"))
	require.NoError(t, err)
	require.Equal(t, uint8(4), cfg.strength)
	require.Equal(t, "b", cfg.label)
	require.Equal(t, []string{"label", "strength", "label"}, cfg.calls)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &sampleConfig{}
	err := Apply(cfg, withStrength(40), withLabel("never"))
	require.ErrorIs(t, err, errTooStrong)
	require.Empty(t, cfg.label)
	require.Empty(t, cfg.calls)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &sampleConfig{}
	require.NoError(t, Apply(cfg, nil, withLabel("x")))
	require.Equal(t, "x", cfg.label)

	require.NoError(t, Apply[*sampleConfig](cfg))
}

func TestJoin_OverridesWin(t *testing.T) {
	defaults := []Option[*sampleConfig]{withStrength(31), withLabel("default")}
	joined := Join(defaults, withStrength(3))

	require.Len(t, joined, 3)
	require.Len(t, defaults, 2)

	cfg := &sampleConfig{}
	require.NoError(t, Apply(cfg, joined...))
	require.Equal(t, uint8(3), cfg.strength)
	require.Equal(t, "default", cfg.label)
}
