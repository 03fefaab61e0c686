package vcfld

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// vcfLine builds a data line from phased genotypes such as "0|1".
func vcfLine(chrom string, pos int, genotypes ...string) string {
	fields := []string{chrom, fmt.Sprint(pos), ".", "A", "G", ".", "PASS", ".", "GT:DS"}
	for _, gt := range genotypes {
		fields = append(fields, gt+":0.5")
	}

	return strings.Join(fields, "\t")
}

func headerLine(nSamples int) string {
	fields := []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}
	for i := 0; i < nSamples; i++ {
		fields = append(fields, fmt.Sprintf("S%d", i+1))
	}

	return strings.Join(fields, "\t")
}

func vcfText(nSamples int, lines ...string) string {
	all := append([]string{"##fileformat=VCFv4.2", "##source=test", headerLine(nSamples)}, lines...)
	return strings.Join(all, "\n") + "\n"
}

func mustVariant(t testing.TB, chrom string, pos int, genotypes ...string) *Variant {
	t.Helper()

	v, err := ParseVariant(vcfLine(chrom, pos, genotypes...), len(genotypes))
	if err != nil {
		t.Fatal(err)
	}

	return v
}

func writeTemp(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// sliceSource serves variants from memory.
type sliceSource struct {
	variants []*Variant
	next     int
	err      error
}

func (s *sliceSource) Read() *Variant {
	if s.next >= len(s.variants) {
		return nil
	}
	v := s.variants[s.next]
	s.next++

	return v
}

func (s *sliceSource) Error() error {
	if s.next >= len(s.variants) {
		return s.err
	}

	return nil
}
