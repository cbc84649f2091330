package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
)

// stderrTail bounds how much extractor stderr is kept for error messages.
const stderrTail = 4 << 10

var panicMarkers = []string{"panicked at", "panic:", "RUST_BACKTRACE"}

// CommandExtractor runs an external extractor binary per package. The bytecode
// directory is appended to the configured command and stdout must be the raw
// local JSON description.
type CommandExtractor struct {
	dataset *Dataset
	command []string
	timeout time.Duration
	logger  ports.Logger
}

// NewCommandExtractor creates a CommandExtractor.
func NewCommandExtractor(dataset *Dataset, command []string, timeout time.Duration, logger ports.Logger) *CommandExtractor {
	return &CommandExtractor{
		dataset: dataset,
		command: command,
		timeout: timeout,
		logger:  logger,
	}
}

// Extract implements ports.LocalExtractor.
func (e *CommandExtractor) Extract(ctx context.Context, id domain.PackageID) (*domain.RawLocalPackage, error) {
	if len(e.command) == 0 {
		return nil, domain.NewFault(domain.ErrExtractionDecode, "no extractor command configured")
	}
	art, err := e.dataset.Open(id)
	if err != nil {
		return nil, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := append(append([]string{}, e.command[1:]...), art.BytecodeDir())
	cmd := exec.CommandContext(ctx, e.command[0], args...) //nolint:gosec // operator provided command
	cmd.Dir = art.Dir
	cmd.WaitDelay = time.Second

	var stdout bytes.Buffer
	stderr := &tailBuffer{limit: stderrTail}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		return nil, e.classify(ctx, runErr, stderr.String())
	}
	if msg := stderr.String(); msg != "" {
		e.logger.Warn("extractor stderr for " + id.String() + ": " + lastLine(msg))
	}

	var raw domain.RawLocalPackage
	if err := json.Unmarshal(stdout.Bytes(), &raw); err != nil {
		return nil, domain.WrapFault(domain.ErrExtractionDecode, err, "extractor output")
	}
	if raw.OriginalID == "" {
		raw.OriginalID = art.OriginalID
	}
	if raw.Stats == nil {
		raw.Stats = art.stats()
	}
	raw.Stats.ElapsedMillis = elapsed.Milliseconds()
	return &raw, nil
}

func (e *CommandExtractor) classify(ctx context.Context, runErr error, stderr string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewFault(domain.ErrExtractionTimeout, "after %s", e.timeout)
	}
	for _, marker := range panicMarkers {
		if strings.Contains(stderr, marker) {
			return domain.NewFault(domain.ErrTranslationPanic, "%s", lastLine(stderr))
		}
	}
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return domain.WrapFault(domain.ErrExtractionDecode, runErr, "extractor exited with code %d: %s", exitCode, lastLine(stderr))
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// tailBuffer keeps only the last limit bytes written to it.
type tailBuffer struct {
	buf   []byte
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	return string(t.buf)
}
