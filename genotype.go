package vcfld

import "github.com/bits-and-blooms/bitset"

const (
	// PhaseSeparator splits the two alleles of a phased genotype.
	PhaseSeparator = '|'

	// SubfieldDelimiter ends the GT subfield of a genotype column.
	SubfieldDelimiter = ':'

	// Unrecognized is what DecodeGenotype reports for a haplotype that is
	// neither '0' nor '1'.
	Unrecognized = '.'
)

// NewHaplotypeSet returns an empty bitset with one bit per haplotype (two per
// sample).
func NewHaplotypeSet(nSamples int) *bitset.BitSet {
	return bitset.New(uint(2 * nSamples))
}

// EncodeGenotype records the two phased alleles of one sample. Bit 2*sample
// holds the first allele, bit 2*sample+1 the second. Alleles other than '0'
// and '1' leave both sets untouched at that haplotype.
func EncodeGenotype(zero, one *bitset.BitSet, sample int, a, b byte) {
	setAllele(zero, one, uint(2*sample), a)
	setAllele(zero, one, uint(2*sample+1), b)
}

func setAllele(zero, one *bitset.BitSet, haplotype uint, allele byte) {
	switch allele {
	case '0':
		zero.Set(haplotype)
	case '1':
		one.Set(haplotype)
	}
}

// DecodeGenotype is the inverse of EncodeGenotype. Unobserved haplotypes are
// reported as Unrecognized.
func DecodeGenotype(zero, one *bitset.BitSet, sample int) (a, b byte) {
	return getAllele(zero, one, uint(2*sample)), getAllele(zero, one, uint(2*sample+1))
}

func getAllele(zero, one *bitset.BitSet, haplotype uint) byte {
	if zero.Test(haplotype) {
		return '0'
	} else if one.Test(haplotype) {
		return '1'
	}

	return Unrecognized
}

// CountSetBits is the population count across all words of v.
func CountSetBits(v *bitset.BitSet) int {
	return int(v.Count())
}
