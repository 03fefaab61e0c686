package vcfld

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Columns of a VCF data line that the parser looks at.
const (
	ColumnChromosome = 0
	ColumnPosition   = 1
)

// DefaultProgressEvery is how often, in variants, the reader logs progress.
const DefaultProgressEvery = 100000

// ReaderOptions controls how data lines are turned into variants.
type ReaderOptions struct {
	// SkipMalformed logs and skips data lines that cannot be parsed instead
	// of stopping. Ordering violations are never skipped.
	SkipMalformed bool

	// Chromosome, if set, discards variants on every other chromosome. Names
	// are compared after NormalizeChromosome. The discarded variants are
	// still checked for sort order.
	Chromosome string

	// ProgressEvery logs a progress line after this many accepted variants.
	// Zero disables progress logging.
	ProgressEvery int
}

// VariantSource yields variants in file order. Read returns nil when there
// are no more variants, either because the stream ended or because of an
// error, which Error then reports.
type VariantSource interface {
	Read() *Variant
	Error() error
}

type VariantReader struct {
	VariantsSeen int
	Skipped      int
	vcf          *VCF
	opts         ReaderOptions
	err          error

	wantChromosome string

	// Sort order bookkeeping
	lastChromosome string
	lastPosition   int
	havePrevious   bool
	finished       map[string]struct{}
}

func (v *VCF) NewVariantReader(opts *ReaderOptions) *VariantReader {
	vr := &VariantReader{
		vcf:      v,
		finished: make(map[string]struct{}),
	}
	if opts != nil {
		vr.opts = *opts
	}
	if vr.opts.Chromosome != "" {
		vr.wantChromosome = NormalizeChromosome(vr.opts.Chromosome)
	}

	return vr
}

func (vr *VariantReader) Error() error {
	return vr.err
}

func (vr *VariantReader) Read() *Variant {
	if vr.err != nil {
		return nil
	}

	for {
		line, err := vr.vcf.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			vr.err = pfx.Err(err)
			return nil
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		variant, err := ParseVariant(line, vr.vcf.NSamples())
		if err != nil {
			var recErr *RecordError
			if errors.As(err, &recErr) {
				recErr.Line = vr.vcf.Line()
			}
			if vr.opts.SkipMalformed {
				vr.Skipped++
				log.Printf("Skipping %v\n", err)
				continue
			}
			vr.err = err
			return nil
		}
		variant.Line = vr.vcf.Line()

		if err := vr.checkOrder(variant, line); err != nil {
			vr.err = err
			return nil
		}

		if vr.wantChromosome != "" && NormalizeChromosome(variant.Chromosome) != vr.wantChromosome {
			continue
		}

		vr.VariantsSeen++
		if vr.opts.ProgressEvery > 0 && vr.VariantsSeen%vr.opts.ProgressEvery == 0 {
			log.Printf("Processed %d variants. Last %s:%d\n", vr.VariantsSeen, variant.Chromosome, variant.Position)
		}

		return variant
	}
}

// checkOrder enforces strictly ascending positions within a chromosome and
// forbids returning to a chromosome once another has begun.
func (vr *VariantReader) checkOrder(v *Variant, line string) error {
	defer func() {
		vr.lastChromosome = v.Chromosome
		vr.lastPosition = v.Position
		vr.havePrevious = true
	}()

	if !vr.havePrevious {
		return nil
	}

	if v.Chromosome == vr.lastChromosome {
		if v.Position <= vr.lastPosition {
			return &RecordError{
				Line:   v.Line,
				Text:   line,
				Reason: fmt.Sprintf("position %d follows position %d on chromosome %s", v.Position, vr.lastPosition, v.Chromosome),
				Kind:   ErrUnsorted,
			}
		}
		return nil
	}

	vr.finished[vr.lastChromosome] = struct{}{}
	if _, seen := vr.finished[v.Chromosome]; seen {
		return &RecordError{
			Line:   v.Line,
			Text:   line,
			Reason: fmt.Sprintf("chromosome %s reappears after chromosome %s", v.Chromosome, vr.lastChromosome),
			Kind:   ErrUnsorted,
		}
	}

	return nil
}

// ParseVariant turns one VCF data line into a Variant. The line must have a
// chromosome, an integer position, seven further columns that are not
// inspected, and exactly nSamples genotype columns, each beginning with a
// phased genotype followed by a subfield delimiter (e.g. "0|1:...").
func ParseVariant(line string, nSamples int) (*Variant, error) {
	fields := strings.Fields(line)

	if len(fields) != FixedColumns+nSamples {
		return nil, malformed(line, "", fmt.Sprintf("found %d columns; expected %d fixed columns and %d samples", len(fields), FixedColumns, nSamples))
	}

	if strings.HasPrefix(fields[ColumnChromosome], "#") {
		return nil, malformed(line, fields[ColumnChromosome], "header line found among data lines")
	}

	pos, err := strconv.Atoi(fields[ColumnPosition])
	if err != nil || pos < 0 {
		return nil, malformed(line, fields[ColumnPosition], "position is not a non-negative integer")
	}

	v := &Variant{
		Chromosome: fields[ColumnChromosome],
		Position:   pos,
		Zero:       NewHaplotypeSet(nSamples),
		One:        NewHaplotypeSet(nSamples),
	}

	for i, gt := range fields[FixedColumns:] {
		if len(gt) < 4 || gt[1] != PhaseSeparator || gt[3] != SubfieldDelimiter {
			return nil, malformed(line, gt, fmt.Sprintf("genotype for sample %d is not of the form A|B:...", i))
		}
		EncodeGenotype(v.Zero, v.One, i, gt[0], gt[2])
	}

	return v, nil
}

func malformed(line, field, reason string) error {
	return &RecordError{
		Field:  field,
		Text:   line,
		Reason: reason,
		Kind:   ErrMalformedRecord,
	}
}
