package record

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/pkg/errors"
)

// Marshal encodes ids one per line. No newline is added after the last line.
func Marshal(ids []core.TestID) []byte {
	var buf bytes.Buffer
	for i, id := range ids {
		if i > 0 {
			buf.WriteString(constants.RecordSeparator)
		}
		buf.WriteString(Encode(id))
	}
	return buf.Bytes()
}

// Unmarshal decodes a record read from r. Blank lines are skipped and a
// trailing carriage return is trimmed from every line.
func Unmarshal(r io.Reader) ([]core.TestID, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	ids := make([]core.TestID, 0)
	for _, line := range strings.Split(string(data), constants.RecordSeparator) {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		id, _ := Decode(line)
		ids = append(ids, id)
	}
	return ids, nil
}

// WriteFile truncates path and writes ids to it.
func WriteFile(path string, ids []core.TestID) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(errs.ErrRecordWrite, "open %s: %v", path, err)
	}
	if _, err := f.Write(Marshal(ids)); err != nil {
		f.Close()
		return errors.Wrapf(errs.ErrRecordWrite, "write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(errs.ErrRecordWrite, "close %s: %v", path, err)
	}
	return nil
}

// Load reads a whole record from source into a Spec.
func Load(ctx context.Context, source core.RecordSource) (*Spec, error) {
	rc, err := source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	ids, err := Unmarshal(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", source)
	}
	return NewSpec(ids), nil
}

// FileSource is a record stored on the local filesystem.
type FileSource struct {
	Path string
}

// Open opens the record file. A missing file yields errs.ErrReplaySourceNotFound.
func (f FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.ReplaySourceNotFound(f.Path, err)
		}
		return nil, err
	}
	return file, nil
}

func (f FileSource) String() string {
	return f.Path
}
