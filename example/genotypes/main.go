package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/carbocation/vcfld"
)

func main() {
	path := flag.String("vcf", "", "Phased VCF to print genotypes from ('-' for stdin)")
	nVariants := flag.Int("variants", 10, "Number of variants to print")
	nSamples := flag.Int("samples", 10, "Number of samples to print per variant")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No VCF given")
	}

	vcf, err := vcfld.Open(*path, nil)
	if err != nil {
		log.Fatalln(err)
	}
	defer vcf.Close()

	log.Printf("%s: %d samples, compression %s\n", vcf.Path, vcf.NSamples(), vcf.Compression)

	for i, sample := range vcf.Samples {
		if i >= *nSamples {
			break
		}
		fmt.Println(i, sample.SampleID)
	}

	vr := vcf.NewVariantReader(nil)
	for i := 0; i < *nVariants; i++ {
		v := vr.Read()
		if v == nil {
			break
		}

		ref, alt, missing := v.HaplotypeCounts()
		fmt.Printf("%s:%d ref=%d alt=%d missing=%d\n", v.Chromosome, v.Position, ref, alt, missing)
		for j := 0; j < v.NSamples() && j < *nSamples; j++ {
			a, b := v.Genotype(j)
			fmt.Printf("\t%s %c|%c\n", vcf.Samples[j].SampleID, a, b)
		}
	}

	if err := vr.Error(); err != nil {
		log.Println("Reader error:", err)
	}
}
