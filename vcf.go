package vcfld

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/carbocation/pfx"
)

// DefaultBufferSize is the initial size of the line reader's buffer. Lines
// longer than this are still read in full.
const DefaultBufferSize = 4096 * 8

// OpenOptions controls how an input stream is located and decoded.
type OpenOptions struct {
	// Decompressor, if set, is an external command (e.g. "gzip -dc") that
	// receives the raw stream on stdin and writes plain text to stdout. When
	// empty, compressed input is detected and decoded natively.
	Decompressor string

	// BufferSize defaults to DefaultBufferSize.
	BufferSize int
}

// VCF is an open, phased VCF stream positioned just after its column header.
type VCF struct {
	Path        string
	Samples     []Sample
	Compression Compression

	reader  *bufio.Reader
	line    int
	eof     bool
	closers []io.Closer
	cmd     *exec.Cmd
}

// Open opens the VCF at path ("-" for standard input, gs://bucket/object for
// Google Storage) and reads through its header. If successful, the returned
// VCF is ready for NewVariantReader.
func Open(path string, opts *OpenOptions) (*VCF, error) {
	return OpenContext(context.Background(), path, opts)
}

// OpenContext is Open with a context governing remote reads and any external
// decompressor process.
func OpenContext(ctx context.Context, path string, opts *OpenOptions) (*VCF, error) {
	raw, err := openRaw(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open %s: %v", ErrConfig, path, err)
	}

	return newVCF(ctx, path, raw, opts)
}

// NewVCF reads a VCF from r, which may be compressed, through its header.
// Closing the VCF closes r if it is an io.Closer.
func NewVCF(r io.Reader, opts *OpenOptions) (*VCF, error) {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}

	return newVCF(context.Background(), "stream", rc, opts)
}

func newVCF(ctx context.Context, path string, raw io.ReadCloser, opts *OpenOptions) (*VCF, error) {
	if opts == nil {
		opts = &OpenOptions{}
	}
	bufferSize := opts.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	v := &VCF{
		Path:    path,
		closers: []io.Closer{raw},
	}

	var decoded io.Reader
	var err error
	if opts.Decompressor != "" {
		decoded, err = v.startDecompressor(ctx, opts.Decompressor, raw)
		if err != nil {
			v.Close()
			return nil, fmt.Errorf("%w: could not start decompressor for %s: %v", ErrConfig, path, err)
		}
	} else {
		var closer io.Closer
		decoded, closer, v.Compression, err = MaybeDecompress(bufio.NewReaderSize(raw, bufferSize))
		if err != nil {
			v.Close()
			return nil, fmt.Errorf("%w: could not decode %s: %v", ErrConfig, path, err)
		}
		v.closers = append(v.closers, closer)
	}
	v.reader = bufio.NewReaderSize(decoded, bufferSize)

	if err := v.readHeader(); err != nil {
		v.Close()
		return nil, err
	}

	return v, nil
}

func (v *VCF) startDecompressor(ctx context.Context, command string, raw io.Reader) (io.Reader, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, fmt.Errorf("empty decompressor command")
	}

	v.cmd = exec.CommandContext(ctx, args[0], args[1:]...)
	v.cmd.Stdin = raw
	v.cmd.Stderr = os.Stderr
	stdout, err := v.cmd.StdoutPipe()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if err := v.cmd.Start(); err != nil {
		v.cmd = nil
		return nil, pfx.Err(err)
	}

	return stdout, nil
}

// readHeader skips "##" meta lines and parses the "#CHROM" line.
func (v *VCF) readHeader() error {
	for {
		line, err := v.readLine()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s ended before a #CHROM header line was found", ErrConfig, v.Path)
		} else if err != nil {
			return fmt.Errorf("%w: reading header of %s: %v", ErrConfig, v.Path, err)
		}

		switch {
		case strings.HasPrefix(line, "##"):
			continue
		case strings.HasPrefix(line, "#"):
			samples, err := ParseSamples(line)
			if err != nil {
				return err
			}
			v.Samples = samples
			return nil
		case strings.TrimSpace(line) == "":
			continue
		default:
			return fmt.Errorf("%w: %s has a data line (line %d) before its #CHROM header line", ErrConfig, v.Path, v.line)
		}
	}
}

// readLine returns the next line without its terminator. A final line without
// a newline is still returned; io.EOF follows it.
func (v *VCF) readLine() (string, error) {
	if v.eof {
		return "", io.EOF
	}

	line, err := v.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", pfx.Err(err)
		}
		v.eof = true
		if line == "" {
			return "", io.EOF
		}
	}
	v.line++

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, nil
}

// NSamples is the number of sample columns declared by the header.
func (v *VCF) NSamples() int {
	return len(v.Samples)
}

// Line is the number of lines consumed so far.
func (v *VCF) Line() int {
	return v.line
}

// Close releases the input and decoders, and waits for an external
// decompressor to exit. A decompressor that is still writing when Close is
// called is killed; its exit status is then not reported.
func (v *VCF) Close() error {
	var err error
	if v.cmd != nil {
		killed := false
		if !v.eof && v.cmd.Process != nil {
			_ = v.cmd.Process.Kill()
			killed = true
		}
		if werr := v.cmd.Wait(); werr != nil && !killed {
			err = fmt.Errorf("decompressor: %w", werr)
		}
		v.cmd = nil
	}

	for i := len(v.closers) - 1; i >= 0; i-- {
		if cerr := v.closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	v.closers = nil

	if err != nil {
		return pfx.Err(err)
	}
	return nil
}
