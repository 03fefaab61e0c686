package vcfld

import (
	"bufio"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
)

// OutputHeader names the columns written by PairWriter.
const OutputHeader = "CHR\tPOS1\tPOS2\tN_CHR\tR^2\tD\tDprime"

// PairWriter writes one tab-delimited line per reported pair. Call Flush when
// done.
type PairWriter struct {
	w *bufio.Writer
}

func NewPairWriter(w io.Writer) *PairWriter {
	return &PairWriter{w: bufio.NewWriterSize(w, DefaultBufferSize)}
}

func (pw *PairWriter) WriteHeader() error {
	if _, err := fmt.Fprintln(pw.w, OutputHeader); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func (pw *PairWriter) Write(p Pair) error {
	_, err := fmt.Fprintf(pw.w, "%s\t%d\t%d\t%d\t%f\t%f\t%f\n", p.Chromosome, p.Position1, p.Position2, p.Total, p.R2, p.D, p.DPrime)
	if err != nil {
		return pfx.Err(err)
	}

	return nil
}

func (pw *PairWriter) Flush() error {
	if err := pw.w.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
