package vcfld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := writeTemp(t, "vcfld.toml", []byte(`
max_distance = 500000
min_r2 = 0.2
skip_malformed = true
chromosome = "22"
`))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500000, cfg.MaxDistance)
	assert.Equal(t, 0.2, cfg.MinR2)
	assert.True(t, cfg.SkipMalformed)
	assert.Equal(t, "22", cfg.Chromosome)

	// Absent keys keep their defaults
	assert.Equal(t, DefaultProgressEvery, cfg.ProgressEvery)
	assert.False(t, cfg.Header)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	unknown := writeTemp(t, "unknown.toml", []byte("max_distanse = 5\n"))
	_, err := LoadConfig(unknown)
	assert.ErrorIs(t, err, ErrConfig)

	broken := writeTemp(t, "broken.toml", []byte("min_r2 = \n"))
	_, err = LoadConfig(broken)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.MaxDistance = -1
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)

	cfg = DefaultConfig()
	cfg.MinR2 = 1.5
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)

	cfg = DefaultConfig()
	cfg.ProgressEvery = -3
	assert.ErrorIs(t, cfg.Validate(), ErrConfig)
}
