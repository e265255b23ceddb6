package fet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sgh-fet-agent/pkg/errors"
)

// RunResult captures a successful solver invocation. It does not interpret
// the solver output; decoding happens separately.
type RunResult struct {
	InputFile string
	OutputDir string
	Stdout    string
	Stderr    string
	ExitCode  int
}

// InputStem is the input file's base name without extension, the prefix the
// solver uses for its output directories.
func (r *RunResult) InputStem() string {
	base := filepath.Base(r.InputFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SolverError carries solver diagnostics for a non-zero exit.
type SolverError struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("fet exited with status %d", e.ExitCode)
}

// Runner writes the input document to a uniquely named file and executes the
// FET binary against it. Concurrent runs share the work directory; the
// per-request random filename is what keeps them from colliding.
type Runner struct {
	binaryPath string
	workDir    string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewRunner wires a runner for the configured binary and work directory.
func NewRunner(binaryPath, workDir string, timeout time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		binaryPath: binaryPath,
		workDir:    workDir,
		timeout:    timeout,
		logger:     logger,
	}
}

// Run persists the document and invokes the solver, bounded by the configured
// timeout. Cancelling ctx terminates the spawned process.
func (r *Runner) Run(ctx context.Context, document []byte) (*RunResult, error) {
	inputFile, err := r.writeInputFile(document)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to write fet input file")
	}

	if _, err := os.Stat(r.binaryPath); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrBinaryNotFound.Code, appErrors.ErrBinaryNotFound.Status,
			fmt.Sprintf("fet binary not found at %s", r.binaryPath))
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.binaryPath,
		"--inputfile="+inputFile,
		"--outputdir="+r.workDir,
	)
	cmd.Dir = filepath.Dir(r.binaryPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		// A context failure kills the child, so the exit error it produces
		// must not be mistaken for a solver fault.
		if ctxErr := runCtx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				r.logger.Warn("fet run timed out",
					zap.String("input_file", inputFile),
					zap.Duration("timeout", r.timeout),
				)
				return nil, appErrors.Wrap(ctxErr, appErrors.ErrExecutionTimeout.Code, appErrors.ErrExecutionTimeout.Status,
					appErrors.ErrExecutionTimeout.Message)
			}
			r.logger.Warn("fet run canceled",
				zap.String("input_file", inputFile),
			)
			return nil, appErrors.Wrap(ctxErr, appErrors.ErrExecutionFailed.Code, appErrors.ErrExecutionFailed.Status,
				"fet execution canceled")
		}

		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			solverErr := &SolverError{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
			r.logger.Error("fet run failed",
				zap.String("input_file", inputFile),
				zap.Int("exit_code", solverErr.ExitCode),
				zap.String("stderr", solverErr.Stderr),
			)
			return nil, appErrors.Wrap(solverErr, appErrors.ErrSolverFailed.Code, appErrors.ErrSolverFailed.Status,
				appErrors.ErrSolverFailed.Message)
		}

		return nil, appErrors.Wrap(runErr, appErrors.ErrExecutionFailed.Code, appErrors.ErrExecutionFailed.Status,
			appErrors.ErrExecutionFailed.Message)
	}

	r.logger.Info("fet run completed",
		zap.String("input_file", inputFile),
		zap.Duration("elapsed", elapsed),
	)

	return &RunResult{
		InputFile: inputFile,
		OutputDir: r.workDir,
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
	}, nil
}

func (r *Runner) writeInputFile(document []byte) (string, error) {
	if err := os.MkdirAll(r.workDir, 0o755); err != nil {
		return "", fmt.Errorf("create fet workdir: %w", err)
	}
	name := fmt.Sprintf("fet-input-%s.fet", strings.ReplaceAll(uuid.NewString(), "-", ""))
	path := filepath.Join(r.workDir, name)
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return "", fmt.Errorf("write fet input: %w", err)
	}
	return path, nil
}
