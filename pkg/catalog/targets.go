package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"skilltui/internal/debug"
)

// DefaultTargetsFile is read from the working directory when no path is configured.
const DefaultTargetsFile = "repos.txt"

// TargetSource returns the repository identifiers offered for target-taking commands.
type TargetSource interface {
	Targets(ctx context.Context) ([]string, error)
}

// StaticTargets is a fixed target list.
type StaticTargets []string

// Targets returns a copy of the list.
func (s StaticTargets) Targets(context.Context) ([]string, error) {
	return append([]string{}, s...), nil
}

// FileTargets reads one identifier per line from Path.
type FileTargets struct {
	Path string
}

// Targets implements TargetSource. A missing file is an empty list.
func (f FileTargets) Targets(ctx context.Context) ([]string, error) {
	path := f.Path
	if path == "" {
		path = DefaultTargetsFile
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		debug.Info("catalog", "target file %s not found, no targets", path)
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open target file: %w", err)
	}
	defer func() { _ = file.Close() }()

	targets, err := ParseTargets(file)
	if err != nil {
		return nil, fmt.Errorf("read target file %s: %w", path, err)
	}
	debug.Info("catalog", "loaded %d targets from %s", len(targets), path)
	return targets, nil
}

// ParseTargets returns each trimmed non-blank line of r. Lines starting with
// '#' are comments.
func ParseTargets(r io.Reader) ([]string, error) {
	targets := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return targets, nil
}
