package vcfld

import (
	"fmt"
	"io"
	"log"

	"github.com/carbocation/pfx"
)

// Summary tallies one run.
type Summary struct {
	Variants   int // variants accepted by the reader
	Skipped    int // malformed lines skipped
	Tested     int // pairs within the window
	Degenerate int // pairs whose statistics are undefined
	Reported   int // pairs written
	MaxWindow  int // most variants held at once
}

func (s Summary) String() string {
	return fmt.Sprintf("%d variants (%d malformed lines skipped), %d pairs tested, %d undefined, %d reported; at most %d variants held at once",
		s.Variants, s.Skipped, s.Tested, s.Degenerate, s.Reported, s.MaxWindow)
}

// Scan computes LD for every pair of variants from src that lies within
// cfg.MaxDistance and writes those reaching cfg.MinR2 to pw. It does not
// flush pw.
func Scan(src VariantSource, pw *PairWriter, cfg Config) (*Summary, error) {
	calc := NewCalculator(cfg.MinR2)
	window := NewWindow(src, cfg.MaxDistance)

	err := window.Scan(func(anchor, partner *Variant) error {
		pair, ok, err := calc.Pair(anchor, partner)
		if err != nil {
			return fmt.Errorf("%s:%d and %s:%d: %w", anchor.Chromosome, anchor.Position, partner.Chromosome, partner.Position, err)
		}
		if !ok {
			return nil
		}

		return pw.Write(pair)
	})

	summary := &Summary{
		Tested:     calc.Tested,
		Degenerate: calc.Degenerate,
		Reported:   calc.Reported,
		MaxWindow:  window.MaxLive(),
	}

	return summary, err
}

// Run reads every variant from vcf and writes the LD report to out, recording
// sites to cfg.SitesDB if it is set.
func Run(vcf *VCF, out io.Writer, cfg Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reader := vcf.NewVariantReader(cfg.ReaderOptions())

	var src VariantSource = reader
	var sites *SitesIndex
	if cfg.SitesDB != "" {
		var err error
		sites, err = CreateSitesIndex(cfg.SitesDB, vcf.Path, vcf.NSamples())
		if err != nil {
			return nil, fmt.Errorf("%w: creating sites index %s: %v", ErrConfig, cfg.SitesDB, err)
		}
		src = NewSitesRecorder(reader, sites)
		log.Printf("Recording sites to %s using the %s driver\n", cfg.SitesDB, WhichSQLiteDriver())
	}

	pw := NewPairWriter(out)
	if cfg.Header {
		if err := pw.WriteHeader(); err != nil {
			return nil, err
		}
	}

	summary, err := Scan(src, pw, cfg)
	if summary != nil {
		summary.Variants = reader.VariantsSeen
		summary.Skipped = reader.Skipped
	}

	if ferr := pw.Flush(); err == nil {
		err = ferr
	}
	if sites != nil {
		if cerr := sites.Close(); err == nil && cerr != nil {
			err = pfx.Err(cerr)
		}
	}

	return summary, err
}
