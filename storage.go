package vcfld

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// StdinPath is the input path that selects standard input.
const StdinPath = "-"

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", pfx.Err(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path, nil
}

// openRaw opens the undecoded byte stream behind path: standard input for
// StdinPath, a Google Storage object for gs:// paths, and a local file
// otherwise.
func openRaw(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}

	if strings.HasPrefix(path, "gs://") {
		return openGoogleStorage(ctx, path)
	}

	local, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(local)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// gsObjectReader closes the client that produced the reader along with it.
type gsObjectReader struct {
	*storage.Reader
	client *storage.Client
}

func (g *gsObjectReader) Close() error {
	err := g.Reader.Close()
	if cerr := g.client.Close(); err == nil {
		err = cerr
	}

	return err
}

func openGoogleStorage(ctx context.Context, path string) (io.ReadCloser, error) {
	// Detect the bucket and the path to the actual file
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[1] == "" {
		return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}
	bucketName := pathParts[0]
	pathName := pathParts[1]

	// Open the bucket with default credentials
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return &gsObjectReader{Reader: rdr, client: client}, nil
}
