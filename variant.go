package vcfld

import "github.com/bits-and-blooms/bitset"

// Variant is one phased, bi-allelic VCF record reduced to what the LD
// computation needs. Zero and One each have one bit per haplotype; a
// haplotype is set in at most one of them.
type Variant struct {
	Chromosome string
	Position   int
	Zero       *bitset.BitSet
	One        *bitset.BitSet

	// Line is the 1-based line of the record within its stream.
	Line int
}

// NSamples is the number of samples this variant was parsed with.
func (v *Variant) NSamples() int {
	return int(v.Zero.Len()) / 2
}

// Genotype returns the two alleles of sample i, each '0', '1' or
// Unrecognized.
func (v *Variant) Genotype(i int) (byte, byte) {
	return DecodeGenotype(v.Zero, v.One, i)
}

// HaplotypeCounts reports how many haplotypes carry the '0' allele, the '1'
// allele, or neither.
func (v *Variant) HaplotypeCounts() (ref, alt, missing int) {
	ref = CountSetBits(v.Zero)
	alt = CountSetBits(v.One)
	missing = 2*v.NSamples() - ref - alt

	return ref, alt, missing
}
