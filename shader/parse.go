package shader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// markerToken introduces a section line, e.g. "#shader vertex".
const markerToken = "#shader"

var (
	ErrNoMarker     = errors.New("no #shader marker found")
	ErrUnknownStage = errors.New("unknown shader stage")
	ErrOrphanLine   = errors.New("source line before first #shader marker")
	ErrMissingStage = errors.New("shader stage missing")
)

// ParseError reports where in the input a parse failure happened.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseShaderFile reads path and splits it into vertex and fragment sources.
// A missing file yields an error wrapping fs.ErrNotExist.
func ParseShaderFile(path string) (ProgramSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return ProgramSource{}, fmt.Errorf("failed to open shader source: %w", err)
	}
	defer f.Close()

	src, err := ParseShader(f)
	if err != nil {
		return ProgramSource{}, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// ParseShader splits r into its stage sections. Every non-marker line is
// appended, with a trailing newline, to the section selected by the most
// recent marker. A stage may be reopened by a later marker; its lines are
// appended in file order.
func ParseShader(r io.Reader) (ProgramSource, error) {
	var sections [2]strings.Builder
	var seen [2]bool
	current := -1
	lineNo := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if stage, ok, err := parseMarker(line); ok {
			if err != nil {
				return ProgramSource{}, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			current = int(stage)
			seen[current] = true
			continue
		}

		if current < 0 {
			// blank lines ahead of the first marker carry nothing
			if strings.TrimSpace(line) == "" {
				continue
			}
			return ProgramSource{}, &ParseError{Line: lineNo, Text: line, Err: ErrOrphanLine}
		}
		sections[current].WriteString(line)
		sections[current].WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return ProgramSource{}, fmt.Errorf("failed to read shader source: %w", err)
	}

	if current < 0 {
		return ProgramSource{}, ErrNoMarker
	}
	for _, s := range []Stage{StageVertex, StageFragment} {
		if !seen[s] {
			return ProgramSource{}, fmt.Errorf("%w: %s", ErrMissingStage, s)
		}
	}

	return ProgramSource{
		Vertex:   sections[StageVertex].String(),
		Fragment: sections[StageFragment].String(),
	}, nil
}

// parseMarker reports whether line is a marker line and, if so, which stage
// it selects.
func parseMarker(line string) (Stage, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != markerToken {
		return 0, false, nil
	}
	if len(fields) < 2 {
		return 0, true, ErrUnknownStage
	}
	switch fields[1] {
	case "vertex":
		return StageVertex, true, nil
	case "fragment":
		return StageFragment, true, nil
	default:
		return 0, true, fmt.Errorf("%w %q", ErrUnknownStage, fields[1])
	}
}
