package converter

import (
	"bytes"
	"os/exec"

	"itree-extract/internal/errors"
	"itree-extract/internal/logging"

	"github.com/charmbracelet/log"
)

// Exec runs an external spreadsheet-to-text program (catdoc's xls2csv by
// default) once per file and parses its standard output
type Exec struct {
	Executable string
	logger     *log.Logger
}

// NewExec creates a converter that invokes executable
func NewExec(executable string, logger *log.Logger) *Exec {
	return &Exec{
		Executable: executable,
		logger:     logging.OrDiscard(logger),
	}
}

// EnsureAvailable checks that the executable resolves on PATH
func (e *Exec) EnsureAvailable() error {
	if _, err := exec.LookPath(e.Executable); err != nil {
		return errors.NewConverterNotFoundError(e.Executable, err)
	}
	return nil
}

// Convert runs the executable with path as its only argument. The child's
// stderr is discarded. A non-zero exit is not treated as an error: whatever
// reached stdout is parsed as the result.
func (e *Exec) Convert(path string) (*Table, error) {
	var stdout bytes.Buffer
	cmd := exec.Command(e.Executable, path)
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return nil, err
		}
		e.logger.Warn("converter exited with error", "file", path, "error", err)
	}

	return ParseTable(&stdout)
}
