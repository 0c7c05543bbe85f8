package python

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// RequiredPackages are the Python packages the benchmark fetcher imports.
var RequiredPackages = []string{
	"yfinance",
	"pandas",
}

// ErrNoInterpreter is returned when neither a venv nor a system Python is found.
var ErrNoInterpreter = errors.New("no usable Python interpreter found")

// Runner executes Python helper scripts from the project tree.
type Runner struct {
	pythonBin   string
	projectRoot string
}

// NewRunner creates a Runner, preferring a local .venv over the system
// python3 / python on PATH.
func NewRunner(projectRoot string) (*Runner, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	candidates := []string{
		filepath.Join(absRoot, ".venv", "bin", "python3"),
		filepath.Join(absRoot, ".venv", "bin", "python"),
	}
	for _, name := range []string{"python3", "python"} {
		if p, err := exec.LookPath(name); err == nil {
			candidates = append(candidates, p)
		}
	}

	for _, c := range candidates {
		if err := exec.Command(c, "--version").Run(); err == nil {
			return &Runner{pythonBin: c, projectRoot: absRoot}, nil
		}
	}
	return nil, fmt.Errorf("%w (checked .venv and PATH)", ErrNoInterpreter)
}

// Binary is the resolved interpreter path.
func (r *Runner) Binary() string {
	return r.pythonBin
}

// ExecStreaming runs a script with unbuffered stdout and streams it line by
// line. The lines channel closes when the process exits; the error channel
// carries at most one error and is then closed.
func (r *Runner) ExecStreaming(ctx context.Context, script string, args []string) (<-chan string, <-chan error) {
	lines := make(chan string, 64)
	errc := make(chan error, 1)

	cmdArgs := append([]string{"-u", r.resolveScript(script)}, args...)
	cmd := exec.CommandContext(ctx, r.pythonBin, cmdArgs...)
	cmd.Dir = r.projectRoot

	var stderr strings.Builder
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		close(lines)
		errc <- fmt.Errorf("creating stdout pipe: %w", err)
		close(errc)
		return lines, errc
	}
	if err := cmd.Start(); err != nil {
		close(lines)
		errc <- fmt.Errorf("starting script %s: %w", script, err)
		close(errc)
		return lines, errc
	}

	go func() {
		defer close(lines)
		defer close(errc)

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				_ = cmd.Wait()
				errc <- ctx.Err()
				return
			}
		}
		if err := scanner.Err(); err != nil {
			// Nothing drains stdout past this point; stop the script and reap it.
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			errc <- fmt.Errorf("reading stdout: %w", err)
			return
		}

		if err := cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				errc <- fmt.Errorf("script %s exited with code %d: %s",
					script, exitErr.ExitCode(), lastLine(stderr.String()))
			} else {
				errc <- fmt.Errorf("waiting for script %s: %w", script, err)
			}
		}
	}()

	return lines, errc
}

// GetVersion returns the interpreter version string, e.g. "Python 3.12.1".
func (r *Runner) GetVersion() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, r.pythonBin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("getting python version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CheckPackage reports whether pkg can be imported.
func (r *Runner) CheckPackage(pkg string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.pythonBin, "-c", "import "+importName(pkg))
	cmd.Dir = r.projectRoot
	return cmd.Run() == nil
}

// MissingPackages returns the required packages that cannot be imported.
func (r *Runner) MissingPackages() []string {
	var missing []string
	for _, pkg := range RequiredPackages {
		if !r.CheckPackage(pkg) {
			missing = append(missing, pkg)
		}
	}
	return missing
}

func (r *Runner) resolveScript(script string) string {
	if filepath.IsAbs(script) {
		return script
	}
	return filepath.Join(r.projectRoot, script)
}

// importName maps a pip name to its module name: pandas-ta -> pandas_ta.
func importName(pkg string) string {
	return strings.ReplaceAll(pkg, "-", "_")
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
