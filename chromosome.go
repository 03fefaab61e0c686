package vcfld

import "strings"

// NormalizeChromosome maps the common spellings of a chromosome name onto
// one form, so that "chr1", "CHR1" and "1" compare equal, as do "chrM", "M"
// and "MT". It is used only to match user-supplied chromosome filters; pairs
// are always formed by exact chromosome name.
func NormalizeChromosome(chr string) string {
	if len(chr) > 3 && strings.EqualFold(chr[:3], "chr") {
		chr = chr[3:]
	}

	switch strings.ToUpper(chr) {
	case "M", "MT":
		return "MT"
	case "X", "23":
		return "X"
	case "Y", "24":
		return "Y"
	}

	return strings.ToUpper(chr)
}
