package vcfld

import (
	"fmt"
	"strings"
)

// FixedColumns is the number of metadata columns (CHROM through FORMAT) that
// precede the per-sample genotype columns.
const FixedColumns = 9

type Sample struct {
	SampleID string
}

// ParseSamples reads the sample names from a "#CHROM ..." column header line.
// Every field after the ninth is a sample, in column order.
func ParseSamples(header string) ([]Sample, error) {
	if !strings.HasPrefix(header, "#") || strings.HasPrefix(header, "##") {
		return nil, fmt.Errorf("%w: %q is not a column header line", ErrConfig, header)
	}

	fields := strings.Fields(header)
	if len(fields) < FixedColumns {
		return nil, fmt.Errorf("%w: header has %d fields; expected at least %d fixed columns", ErrConfig, len(fields), FixedColumns)
	}

	names := fields[FixedColumns:]
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: header names no samples", ErrConfig)
	}

	samples := make([]Sample, 0, len(names))
	for _, name := range names {
		samples = append(samples, Sample{SampleID: name})
	}

	return samples, nil
}
