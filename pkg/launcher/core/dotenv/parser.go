// Package dotenv reads KEY=VALUE files and applies them to an environment.
//
// The format is deliberately small: one assignment per line, split on the first '='.
// Quoting, escapes, multiline values and inline comments are not interpreted.
package dotenv

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

const (
	moduleName = "dotenv"
	bom        = "\ufeff"
	maxLineLen = 1024 * 1024
)

// ParseResult is the outcome of parsing one env file.
type ParseResult struct {
	// Assignments in file order. Keys may repeat.
	Assignments []model.Assignment
	// Skipped counts non-blank, non-comment lines that were not assignments.
	Skipped int
}

// Parse reads assignments from r.
//
// Blank lines and lines whose first non-space character is '#' are ignored.
// Lines without '=' or with an empty key are skipped and counted.
// The key is trimmed; the value is kept verbatim apart from a trailing '\r'.
func Parse(r io.Reader) (*ParseResult, error) {
	result := &ParseResult{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, bom)
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			logger.Debugf("dotenv: line %d skipped: no '='", lineNo)
			result.Skipped++
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			logger.Debugf("dotenv: line %d skipped: empty key", lineNo)
			result.Skipped++
			continue
		}

		result.Assignments = append(result.Assignments, model.Assignment{Key: key, Value: value, Line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, exception.NewLaunchError(moduleName, exception.KindInternal, "failed to read env file", err)
	}
	return result, nil
}

// ParseFile parses the env file at path.
// A missing file yields a LaunchError of kind MissingEnvFile that also matches fs.ErrNotExist.
func ParseFile(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, exception.NewLaunchErrorf(moduleName, exception.KindMissingEnvFile, "env file %s not found", path, err)
		}
		return nil, exception.NewLaunchErrorf(moduleName, exception.KindInternal, "failed to open env file %s", path, err)
	}
	defer f.Close()

	result, err := Parse(f)
	if err != nil {
		return nil, err
	}
	logger.Debugf("dotenv: parsed %d assignment(s) from %s (%d skipped)", len(result.Assignments), path, result.Skipped)
	return result, nil
}
