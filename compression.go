package vcfld

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"

	"github.com/carbocation/genomisc"
	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// Compression identifies how an input stream is encoded on disk.
type Compression uint32

const (
	CompressionDisabled Compression = iota
	CompressionGzip
	CompressionZStandard
	CompressionXZ
	CompressionBZip2
	CompressionZLIB
	CompressionZip
	CompressionUnixCompress
)

func (c Compression) String() string {
	switch c {
	case CompressionDisabled:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZStandard:
		return "zstd"
	case CompressionXZ:
		return "xz"
	case CompressionBZip2:
		return "bzip2"
	case CompressionZLIB:
		return "zlib"
	case CompressionZip:
		return "zip"
	case CompressionUnixCompress:
		return "compress"

	default:
		return "Illegal selection"
	}
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// DetectCompression peeks at the first bytes of r without consuming them and
// reports which decoder, if any, the stream needs.
func DetectCompression(r *bufio.Reader) (Compression, error) {
	head, err := r.Peek(6)
	if err != nil && !errors.Is(err, io.EOF) {
		return CompressionDisabled, pfx.Err(err)
	}
	if len(head) == 0 {
		return CompressionDisabled, nil
	}

	if bytes.HasPrefix(head, zstdMagic) {
		return CompressionZStandard, nil
	}
	if len(head) >= 2 && head[0] == 0x78 && (uint16(head[0])<<8|uint16(head[1]))%31 == 0 {
		return CompressionZLIB, nil
	}

	dt, err := genomisc.DetectDataType(bytes.NewReader(head))
	if err != nil {
		return CompressionDisabled, pfx.Err(err)
	}

	switch dt {
	case genomisc.DataTypeGzip:
		return CompressionGzip, nil
	case genomisc.DataTypeZip:
		return CompressionZip, nil
	case genomisc.DataTypeXZ:
		return CompressionXZ, nil
	case genomisc.DataTypeBZip2:
		return CompressionBZip2, nil
	case genomisc.DataTypeZ:
		return CompressionUnixCompress, nil
	}

	return CompressionDisabled, nil
}

// MaybeDecompress wraps r with the decoder its leading bytes call for. The
// returned closer releases decoder state only; it does not close r.
func MaybeDecompress(r *bufio.Reader) (io.Reader, io.Closer, Compression, error) {
	comp, err := DetectCompression(r)
	if err != nil {
		return nil, nil, comp, err
	}

	switch comp {
	case CompressionGzip:
		// Multistream is the default, which also covers bgzip blocks.
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, comp, pfx.Err(err)
		}
		return gz, gz, comp, nil
	case CompressionZStandard:
		rc, err := newZStandardReader(r)
		if err != nil {
			return nil, nil, comp, pfx.Err(err)
		}
		return rc, rc, comp, nil
	case CompressionXZ:
		xzr, err := xz.NewReader(r, 0)
		if err != nil {
			return nil, nil, comp, pfx.Err(err)
		}
		return xzr, nopCloser{}, comp, nil
	case CompressionBZip2:
		return bzip2.NewReader(r), nopCloser{}, comp, nil
	case CompressionZLIB:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, nil, comp, pfx.Err(err)
		}
		return zr, zr, comp, nil
	case CompressionZip:
		// Only the first member of the archive is read.
		zr := zipstream.NewReader(r)
		if _, err := zr.Next(); err != nil {
			return nil, nil, comp, pfx.Err(fmt.Errorf("opening first zip member: %w", err))
		}
		return zr, nopCloser{}, comp, nil
	case CompressionUnixCompress:
		return nil, nil, comp, fmt.Errorf("%w: LZW (.Z) input is not supported natively; set a decompressor", ErrConfig)
	}

	return r, nopCloser{}, CompressionDisabled, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
