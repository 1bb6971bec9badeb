package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/ginjaninja78/weighing-report/internal/format"
	"github.com/ginjaninja78/weighing-report/internal/types"
)

// LoadFile reads records from a .json or .csv file.
func LoadFile(path string, f *format.Formatter) (records []types.Record, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		multierr.AppendInto(&err, file.Close())
	}()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		records, err = Decode(file, f)
	case ".csv":
		records, err = ReadCSV(file, CSVOptions{}, f)
	default:
		return nil, fmt.Errorf("unsupported record file type %q (want .json or .csv)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return records, nil
}

// FileLoader serves the records of one file. The file is re-read on every
// Load so that edits are picked up by a long-running server.
type FileLoader struct {
	Path      string
	Formatter *format.Formatter
}

// Load implements Loader.
func (l *FileLoader) Load(_ context.Context, _ Query) ([]types.Record, error) {
	return LoadFile(l.Path, l.Formatter)
}
