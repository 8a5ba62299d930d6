// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain locates and runs external command-line tools that a
// backend shells out to, such as the tesseract binary.
package toolchain

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Tool is an external binary that can be probed and executed.
type Tool interface {
	// Name returns the binary name (e.g. "tesseract").
	Name() string

	// Available reports whether the binary exists on PATH and answers a
	// version probe.
	Available() bool

	// Run executes the binary with args, writing its standard output to
	// stdout. Standard error is captured into the returned error.
	Run(ctx context.Context, args []string, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunOutput(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunOutput(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// binary implements Tool for a named executable.
type binary struct {
	bin       string
	probeArgs []string // e.g. ["--version"]
	exec      executor
}

func (b *binary) Name() string { return b.bin }

func (b *binary) Available() bool {
	if _, err := b.exec.LookPath(b.bin); err != nil {
		return false
	}
	return b.exec.RunSilent(b.bin, b.probeArgs...) == nil
}

func (b *binary) Run(ctx context.Context, args []string, stdout io.Writer) error {
	var stderr strings.Builder
	if err := b.exec.RunOutput(ctx, b.bin, args, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s: %w: %s", b.bin, err, msg)
		}
		return fmt.Errorf("running %s: %w", b.bin, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// Detect returns the first of names that is available, probing each with
// "--version". Returns an error if none is.
func Detect(names ...string) (Tool, error) {
	return detect(defaultExec, names...)
}

func detect(exec executor, names ...string) (Tool, error) {
	for _, name := range names {
		b := &binary{bin: name, probeArgs: []string{"--version"}, exec: exec}
		if b.Available() {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no usable tool found: tried %s", strings.Join(names, ", "))
}
