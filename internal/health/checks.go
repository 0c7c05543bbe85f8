package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Dallionking/alpha-decay/internal/config"
	"github.com/Dallionking/alpha-decay/internal/marketdata"
	"github.com/Dallionking/alpha-decay/internal/python"
)

func (c *Checker) registerChecks() {
	// System checks
	c.add("python3", "system", c.checkPython)
	c.add("python-packages", "system", c.checkPythonPackages)
	c.add("fetch-script", "system", c.checkFetchScript)

	// Project checks
	c.add("config-file", "project", c.checkConfigFile)
	c.add("config-valid", "project", c.checkConfigValid)
	c.add("log-file", "project", c.checkLogFile)

	// Data checks
	c.add("benchmark-source", "data", c.checkBenchmarkSource)

	// Runtime checks
	c.add("terminal", "runtime", c.checkTerminal)
}

// ---------------------------------------------------------------------------
// System checks
// ---------------------------------------------------------------------------

func (c *Checker) checkPython(ctx context.Context) CheckResult {
	r, err := c.findPython(c.opts.ProjectRoot)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "python not found; only CSV benchmarks will work"}
	}
	version, err := r.GetVersion()
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: err.Error()}
	}
	return versionResult(version)
}

// versionResult parses "Python 3.X.Y" and requires at least 3.9.
func versionResult(version string) CheckResult {
	parts := strings.Fields(version)
	if len(parts) < 2 {
		return CheckResult{Status: StatusWarn, Message: fmt.Sprintf("unexpected version string: %s", version)}
	}
	nums := strings.Split(parts[1], ".")
	if len(nums) < 2 {
		return CheckResult{Status: StatusWarn, Message: fmt.Sprintf("cannot parse version: %s", parts[1])}
	}
	major, errMaj := strconv.Atoi(nums[0])
	minor, errMin := strconv.Atoi(nums[1])
	if errMaj != nil || errMin != nil {
		return CheckResult{Status: StatusWarn, Message: fmt.Sprintf("cannot parse version numbers: %s", parts[1])}
	}
	if major < 3 || (major == 3 && minor < 9) {
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%s (requires >= 3.9)", parts[1])}
	}
	return CheckResult{Status: StatusPass, Message: parts[1]}
}

func (c *Checker) checkPythonPackages(ctx context.Context) CheckResult {
	r, err := c.findPython(c.opts.ProjectRoot)
	if err != nil {
		return CheckResult{Status: StatusWarn, Message: "skipped: no python interpreter"}
	}
	missing := r.MissingPackages()
	if len(missing) > 0 {
		return CheckResult{
			Status:  StatusWarn,
			Message: "missing: " + strings.Join(missing, ", ") + " (pip install " + strings.Join(missing, " ") + ")",
		}
	}
	return CheckResult{Status: StatusPass, Message: strings.Join(python.RequiredPackages, ", ")}
}

func (c *Checker) checkFetchScript(ctx context.Context) CheckResult {
	path := filepath.Join(c.opts.ProjectRoot, python.FetchScript)
	if _, err := os.Stat(path); err != nil {
		return CheckResult{Status: StatusWarn, Message: python.FetchScript + " not found"}
	}
	return CheckResult{Status: StatusPass, Message: python.FetchScript}
}

// ---------------------------------------------------------------------------
// Project checks
// ---------------------------------------------------------------------------

func (c *Checker) checkConfigFile(ctx context.Context) CheckResult {
	if c.opts.LoadErr != nil {
		return CheckResult{Status: StatusFail, Message: c.opts.LoadErr.Error()}
	}
	if c.opts.ConfigPath == "" {
		return CheckResult{Status: StatusWarn, Message: "no config file; using defaults (run `alpha-decay init`)"}
	}
	return CheckResult{Status: StatusPass, Message: c.opts.ConfigPath}
}

func (c *Checker) checkConfigValid(ctx context.Context) CheckResult {
	if c.opts.Config == nil {
		return CheckResult{Status: StatusFail, Message: "config not loaded"}
	}
	errs := config.Validate(c.opts.Config)
	if len(errs) == 0 {
		return CheckResult{Status: StatusPass, Message: "all fields valid"}
	}
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg += fmt.Sprintf(" (+%d more)", len(errs)-1)
	}
	return CheckResult{Status: StatusFail, Message: msg}
}

func (c *Checker) checkLogFile(ctx context.Context) CheckResult {
	if c.opts.Config == nil {
		return CheckResult{Status: StatusWarn, Message: "skipped: config not loaded"}
	}
	switch file := c.opts.Config.Log.File; file {
	case "", "stderr", "stdout":
		return CheckResult{Status: StatusPass, Message: "logging to stderr"}
	default:
		dir := filepath.Dir(file)
		tmp, err := os.CreateTemp(dir, ".alpha-decay-write-*")
		if err != nil {
			return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%s not writable", dir)}
		}
		tmp.Close()
		os.Remove(tmp.Name())
		return CheckResult{Status: StatusPass, Message: file}
	}
}

// ---------------------------------------------------------------------------
// Data checks
// ---------------------------------------------------------------------------

func (c *Checker) checkBenchmarkSource(ctx context.Context) CheckResult {
	if c.opts.Config == nil {
		return CheckResult{Status: StatusWarn, Message: "skipped: config not loaded"}
	}
	b := c.opts.Config.Benchmark
	if b.CSVPath == "" {
		if b.Source == config.SourceCSV {
			return CheckResult{Status: StatusFail, Message: "benchmark.source is csv but csvPath is empty"}
		}
		return CheckResult{Status: StatusPass, Message: "yfinance download"}
	}

	bars, err := marketdata.CSVSource{Path: b.CSVPath}.Closes(ctx, c.opts.Config.Simulation.Ticker, 0)
	if errors.Is(err, marketdata.ErrNoData) {
		return CheckResult{Status: StatusFail, Message: b.CSVPath + " has no usable closes"}
	}
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	if len(bars) < 2 {
		return CheckResult{Status: StatusWarn, Message: fmt.Sprintf("%s: only %d bar", b.CSVPath, len(bars))}
	}
	first, last := bars[0].Date.Format("2006-01-02"), bars[len(bars)-1].Date.Format("2006-01-02")
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d bars %s..%s", len(bars), first, last)}
}

// ---------------------------------------------------------------------------
// Runtime checks
// ---------------------------------------------------------------------------

func (c *Checker) checkTerminal(ctx context.Context) CheckResult {
	if !c.isTerminal() {
		return CheckResult{Status: StatusWarn, Message: "stdout is not a terminal; use `run --once` or `--json`"}
	}
	return CheckResult{Status: StatusPass, Message: "interactive"}
}
