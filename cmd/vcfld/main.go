// vcfld computes haplotype r², D and D' between nearby variants of a phased
// VCF and prints the pairs in strong LD.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/vcfld"
)

func main() {
	defaults := vcfld.DefaultConfig()

	var configPath string
	var flagged vcfld.Config
	flag.StringVar(&configPath, "config", "", "Optional TOML file with any of the keys max_distance, min_r2, skip_malformed, chromosome, decompressor, sites_db, header, progress_every. Flags override it.")
	flag.IntVar(&flagged.MaxDistance, "max-distance", defaults.MaxDistance, "Largest distance in base pairs between the two variants of a pair.")
	flag.Float64Var(&flagged.MinR2, "min-r2", defaults.MinR2, "Only report pairs with r^2 at least this large.")
	flag.BoolVar(&flagged.SkipMalformed, "skip-malformed", defaults.SkipMalformed, "Log and skip data lines whose genotypes are not phased A|B:... fields, rather than stopping.")
	flag.StringVar(&flagged.Chromosome, "chromosome", defaults.Chromosome, "If set, only computes LD within this chromosome.")
	flag.StringVar(&flagged.Decompressor, "decompressor", defaults.Decompressor, "External command to pipe the input through, e.g. 'gzip -dc'. If blank, gzip, bgzip, zstd, xz, bzip2, zlib and zip inputs are decoded natively.")
	flag.StringVar(&flagged.SitesDB, "sites-db", defaults.SitesDB, "If set, write a SQLite index of every variant read (with allele counts) to this path.")
	flag.BoolVar(&flagged.Header, "header", defaults.Header, "Print a header line before the pairs.")
	flag.IntVar(&flagged.ProgressEvery, "progress", defaults.ProgressEvery, "Log progress every this many variants. 0 disables.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] <file.vcf[.gz]|->\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := defaults
	if configPath != "" {
		var err error
		cfg, err = vcfld.LoadConfig(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}
	overrideWithFlags(&cfg, flagged)

	if err := run(flag.Arg(0), cfg); err != nil {
		log.Fatalln(err)
	}
}

// overrideWithFlags copies only the flags that were set on the command line,
// so that values from the config file survive otherwise.
func overrideWithFlags(cfg *vcfld.Config, flagged vcfld.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-distance":
			cfg.MaxDistance = flagged.MaxDistance
		case "min-r2":
			cfg.MinR2 = flagged.MinR2
		case "skip-malformed":
			cfg.SkipMalformed = flagged.SkipMalformed
		case "chromosome":
			cfg.Chromosome = flagged.Chromosome
		case "decompressor":
			cfg.Decompressor = flagged.Decompressor
		case "sites-db":
			cfg.SitesDB = flagged.SitesDB
		case "header":
			cfg.Header = flagged.Header
		case "progress":
			cfg.ProgressEvery = flagged.ProgressEvery
		}
	})
}

func run(path string, cfg vcfld.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	vcf, err := vcfld.Open(path, cfg.OpenOptions())
	if err != nil {
		return err
	}
	defer vcf.Close()

	log.Printf("Opened %s (compression: %s) with %d samples\n", path, vcf.Compression, vcf.NSamples())
	log.Printf("Reporting pairs within %d bp with r^2 >= %g\n", cfg.MaxDistance, cfg.MinR2)

	summary, err := vcfld.Run(vcf, os.Stdout, cfg)
	if err != nil {
		return err
	}

	log.Println("Completed:", summary)

	return vcf.Close()
}
