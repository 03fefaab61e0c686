package vcfld

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config gathers the tunable parts of a run. Every field can be set from a
// TOML file using the key in its tag.
type Config struct {
	MaxDistance   int     `toml:"max_distance"`
	MinR2         float64 `toml:"min_r2"`
	SkipMalformed bool    `toml:"skip_malformed"`
	Chromosome    string  `toml:"chromosome"`
	Decompressor  string  `toml:"decompressor"`
	SitesDB       string  `toml:"sites_db"`
	Header        bool    `toml:"header"`
	ProgressEvery int     `toml:"progress_every"`
}

func DefaultConfig() Config {
	return Config{
		MaxDistance:   DefaultMaxDistance,
		MinR2:         DefaultMinR2,
		ProgressEvery: DefaultProgressEvery,
	}
}

// LoadConfig reads a TOML file over the defaults. Keys absent from the file
// keep their default values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%w: reading config %s: %v", ErrConfig, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w: config %s has unrecognized keys %v", ErrConfig, path, undecoded)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxDistance < 0 {
		return fmt.Errorf("%w: max_distance must not be negative (got %d)", ErrConfig, c.MaxDistance)
	}
	if c.MinR2 < 0 || c.MinR2 > 1 {
		return fmt.Errorf("%w: min_r2 must be within [0, 1] (got %g)", ErrConfig, c.MinR2)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress_every must not be negative (got %d)", ErrConfig, c.ProgressEvery)
	}

	return nil
}

func (c Config) OpenOptions() *OpenOptions {
	return &OpenOptions{
		Decompressor: c.Decompressor,
	}
}

func (c Config) ReaderOptions() *ReaderOptions {
	return &ReaderOptions{
		SkipMalformed: c.SkipMalformed,
		Chromosome:    c.Chromosome,
		ProgressEvery: c.ProgressEvery,
	}
}
