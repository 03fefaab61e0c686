package vcfld

import "testing"

func TestGenotypeRoundTrip(t *testing.T) {
	alleles := []byte{'0', '1', Unrecognized}

	// 40 samples is 80 haplotypes, which spans more than one word.
	const nSamples = 40
	zero := NewHaplotypeSet(nSamples)
	one := NewHaplotypeSet(nSamples)

	type gt struct{ a, b byte }
	want := make([]gt, nSamples)
	for i := 0; i < nSamples; i++ {
		want[i] = gt{alleles[i%3], alleles[(i/3)%3]}
		EncodeGenotype(zero, one, i, want[i].a, want[i].b)
	}

	for i := 0; i < nSamples; i++ {
		a, b := DecodeGenotype(zero, one, i)
		if a != want[i].a || b != want[i].b {
			t.Errorf("Sample %d: got %c|%c, expected %c|%c", i, a, b, want[i].a, want[i].b)
		}
	}

	if zero.IntersectionCardinality(one) != 0 {
		t.Errorf("Zero and one sets overlap")
	}
}

func TestEncodeGenotypeBitLayout(t *testing.T) {
	zero := NewHaplotypeSet(3)
	one := NewHaplotypeSet(3)

	EncodeGenotype(zero, one, 1, '1', '0')

	if !one.Test(2) {
		t.Errorf("Expected bit 2 to be set in the one set")
	}
	if !zero.Test(3) {
		t.Errorf("Expected bit 3 to be set in the zero set")
	}
	if got := CountSetBits(zero) + CountSetBits(one); got != 2 {
		t.Errorf("Got %d set bits, expected 2", got)
	}
}

func TestUnrecognizedAllelesLeaveBitsUnset(t *testing.T) {
	zero := NewHaplotypeSet(2)
	one := NewHaplotypeSet(2)

	EncodeGenotype(zero, one, 0, '.', '2')
	EncodeGenotype(zero, one, 1, 'N', '0')

	if got := CountSetBits(one); got != 0 {
		t.Errorf("Got %d bits in the one set, expected 0", got)
	}
	if got := CountSetBits(zero); got != 1 {
		t.Errorf("Got %d bits in the zero set, expected 1", got)
	}

	a, b := DecodeGenotype(zero, one, 0)
	if a != Unrecognized || b != Unrecognized {
		t.Errorf("Got %c|%c, expected %c|%c", a, b, Unrecognized, Unrecognized)
	}
}
