// Package export persists extraction results as the training-file set
// consumed downstream: a JSON example dump, a chat-format JSONL file and
// plain-text/JSON dumps of the transition frequency tables, optionally
// packed into a single zip archive. The extraction core never touches the
// filesystem; this package is the caller side of that boundary.
package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/foomo/transitions-mcp/extract"
	"github.com/foomo/transitions-mcp/service/vo"
)

const (
	FileExamplesJSON       = "fewshot_examples.json"
	FileExamplesJSONL      = "fewshot_examples.jsonl"
	FileRejected           = "fewshots_rejected.txt"
	FileTransitionsOnly    = "transitions_only.txt"
	FileTransitionsDupes   = "transitions_only_rejected.txt"
	FileFineTuningRejected = "fewshots-fineTuning_rejected.txt"
)

// Options selects which files to write. The zero value writes nothing;
// DefaultOptions selects everything.
type Options struct {
	ExamplesJSON       bool
	ExamplesJSONL      bool
	Rejected           bool
	TransitionsOnly    bool
	TransitionsDupes   bool
	FineTuningRejected bool
}

func DefaultOptions() Options {
	return Options{
		ExamplesJSON:       true,
		ExamplesJSONL:      true,
		Rejected:           true,
		TransitionsOnly:    true,
		TransitionsDupes:   true,
		FineTuningRejected: true,
	}
}

// Write dumps the selected files for result into dir, creating it if needed,
// and returns the names of the files written, in a fixed order.
func Write(dir string, result vo.ExtractionResult, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	add := func(name string, err error) error {
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, name)
		return nil
	}

	if opts.ExamplesJSON {
		if err := add(FileExamplesJSON, writeJSON(filepath.Join(dir, FileExamplesJSON), result.Examples)); err != nil {
			return nil, err
		}
	}
	if opts.ExamplesJSONL {
		if err := add(FileExamplesJSONL, writeJSONL(filepath.Join(dir, FileExamplesJSONL), extract.TrainingRecords(result.Examples))); err != nil {
			return nil, err
		}
	}
	if opts.Rejected {
		if err := add(FileRejected, writeJSON(filepath.Join(dir, FileRejected), result.OverflowTransitions)); err != nil {
			return nil, err
		}
	}
	if opts.TransitionsOnly {
		content := strings.Join(result.UniqueTransitions, "\n")
		if err := add(FileTransitionsOnly, os.WriteFile(filepath.Join(dir, FileTransitionsOnly), []byte(content), 0o644)); err != nil {
			return nil, err
		}
	}
	if opts.TransitionsDupes {
		if err := add(FileTransitionsDupes, writeJSON(filepath.Join(dir, FileTransitionsDupes), result.DuplicateTransitions)); err != nil {
			return nil, err
		}
	}
	if opts.FineTuningRejected {
		// Same table as FileRejected under the name the fine-tuning job expects.
		if err := add(FileFineTuningRejected, writeJSON(filepath.Join(dir, FileFineTuningRejected), result.OverflowTransitions)); err != nil {
			return nil, err
		}
	}

	return written, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeJSONL(path string, records []vo.TrainingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			_ = f.Close()
			return err
		}
	}
	return f.Close()
}

// Archive zips the contents of dir into a sibling "<dir>.zip" and returns
// the archive path.
func Archive(dir string) (string, error) {
	zipPath := filepath.Clean(dir) + ".zip"
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read output directory: %w", err)
	}

	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addToArchive(zw, dir, entry.Name()); err != nil {
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize archive: %w", err)
	}
	return zipPath, nil
}

func addToArchive(zw *zip.Writer, dir, name string) error {
	src, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer src.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", name, err)
	}
	return nil
}
