package vcfld

import (
	"errors"
	"strings"
	"testing"
)

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(vcfLine("1", 12345, "0|1", "1|0", ".|1"), 3)
	if err != nil {
		t.Fatal(err)
	}

	if v.Chromosome != "1" || v.Position != 12345 {
		t.Errorf("Got %s:%d, expected 1:12345", v.Chromosome, v.Position)
	}

	expected := []string{"0|1", "1|0", ".|1"}
	for i, want := range expected {
		a, b := v.Genotype(i)
		if got := string([]byte{a, '|', b}); got != want {
			t.Errorf("Sample %d: got %s, expected %s", i, got, want)
		}
	}

	ref, alt, missing := v.HaplotypeCounts()
	if ref != 2 || alt != 3 || missing != 1 {
		t.Errorf("Got ref=%d alt=%d missing=%d, expected 2, 3, 1", ref, alt, missing)
	}
}

func TestParseVariantMalformed(t *testing.T) {
	good := vcfLine("1", 100, "0|1", "1|1")

	cases := map[string]string{
		"unphased":         vcfLine("1", 100, "0/1", "1|1"),
		"no subfield":      strings.Replace(good, "1|1:0.5", "1|1", 1),
		"too few samples":  vcfLine("1", 100, "0|1"),
		"too many samples": vcfLine("1", 100, "0|1", "1|1", "0|0"),
		"position":         vcfLine("1", 0, "0|1", "1|1")[:2] + "abc" + vcfLine("1", 0, "0|1", "1|1")[3:],
		"negative":         vcfLine("1", -5, "0|1", "1|1"),
		"short field":      vcfLine("1", 100, "0|", "1|1"),
	}

	for name, line := range cases {
		_, err := ParseVariant(line, 2)
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("%s: got %v, expected a malformed record error", name, err)
		}

		var recErr *RecordError
		if errors.As(err, &recErr) && recErr.Text != line {
			t.Errorf("%s: error did not echo the offending line", name)
		}
	}
}

func readAll(t *testing.T, text string, opts *ReaderOptions) ([]*Variant, *VariantReader) {
	t.Helper()

	vcf, err := NewVCF(strings.NewReader(text), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { vcf.Close() })

	vr := vcf.NewVariantReader(opts)
	var out []*Variant
	for v := vr.Read(); v != nil; v = vr.Read() {
		out = append(out, v)
	}

	return out, vr
}

func TestVariantReader(t *testing.T) {
	text := vcfText(2,
		vcfLine("1", 100, "0|1", "1|1"),
		"",
		vcfLine("1", 200, "0|0", "1|0"),
		vcfLine("2", 50, "1|1", "0|0"),
	)

	variants, vr := readAll(t, text, nil)
	if err := vr.Error(); err != nil {
		t.Fatal(err)
	}

	if len(variants) != 3 {
		t.Fatalf("Got %d variants, expected 3", len(variants))
	}
	if vr.VariantsSeen != 3 {
		t.Errorf("Got VariantsSeen=%d, expected 3", vr.VariantsSeen)
	}

	// Two meta lines, the header, then data; the blank line still counts.
	if variants[2].Line != 7 {
		t.Errorf("Got line %d, expected 7", variants[2].Line)
	}
}

func TestVariantReaderStopsOnMalformed(t *testing.T) {
	text := vcfText(2,
		vcfLine("1", 100, "0|1", "1|1"),
		vcfLine("1", 150, "0/1", "1|1"),
		vcfLine("1", 200, "0|0", "1|0"),
	)

	variants, vr := readAll(t, text, nil)
	if len(variants) != 1 {
		t.Errorf("Got %d variants, expected 1", len(variants))
	}

	var recErr *RecordError
	if !errors.As(vr.Error(), &recErr) {
		t.Fatalf("Got %v, expected a *RecordError", vr.Error())
	}
	if recErr.Line != 5 {
		t.Errorf("Got line %d, expected 5", recErr.Line)
	}
	if !errors.Is(vr.Error(), ErrMalformedRecord) {
		t.Errorf("Got %v, expected ErrMalformedRecord", vr.Error())
	}
}

func TestVariantReaderSkipsMalformed(t *testing.T) {
	text := vcfText(2,
		vcfLine("1", 100, "0|1", "1|1"),
		vcfLine("1", 150, "0/1", "1|1"),
		vcfLine("1", 200, "0|0", "1|0"),
	)

	variants, vr := readAll(t, text, &ReaderOptions{SkipMalformed: true})
	if err := vr.Error(); err != nil {
		t.Fatal(err)
	}
	if len(variants) != 2 {
		t.Errorf("Got %d variants, expected 2", len(variants))
	}
	if vr.Skipped != 1 {
		t.Errorf("Got %d skipped, expected 1", vr.Skipped)
	}
}

func TestVariantReaderRejectsUnsorted(t *testing.T) {
	cases := map[string][]string{
		"descending": {
			vcfLine("1", 200, "0|1", "1|1"),
			vcfLine("1", 100, "0|0", "1|0"),
		},
		"duplicate": {
			vcfLine("1", 100, "0|1", "1|1"),
			vcfLine("1", 100, "0|0", "1|0"),
		},
		"chromosome returns": {
			vcfLine("1", 100, "0|1", "1|1"),
			vcfLine("2", 100, "0|0", "1|0"),
			vcfLine("1", 300, "0|0", "1|0"),
		},
	}

	for name, lines := range cases {
		// Skipping malformed lines must not hide ordering problems.
		_, vr := readAll(t, vcfText(2, lines...), &ReaderOptions{SkipMalformed: true})
		if !errors.Is(vr.Error(), ErrUnsorted) {
			t.Errorf("%s: got %v, expected ErrUnsorted", name, vr.Error())
		}
	}
}

func TestVariantReaderChromosomeFilter(t *testing.T) {
	text := vcfText(2,
		vcfLine("chr1", 100, "0|1", "1|1"),
		vcfLine("chr2", 100, "0|0", "1|0"),
		vcfLine("chr2", 200, "0|0", "1|0"),
		vcfLine("chr3", 100, "0|0", "1|0"),
	)

	variants, vr := readAll(t, text, &ReaderOptions{Chromosome: "2"})
	if err := vr.Error(); err != nil {
		t.Fatal(err)
	}
	if len(variants) != 2 {
		t.Fatalf("Got %d variants, expected 2", len(variants))
	}
	for _, v := range variants {
		if v.Chromosome != "chr2" {
			t.Errorf("Got chromosome %s, expected chr2", v.Chromosome)
		}
	}
}
