package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/fathomcode/fathom/pkg/models"
)

// ErrUnavailable marks an exact tool that cannot run here: binary not on
// PATH, or it produced nothing usable. Callers degrade to the heuristic
// tier on it.
var ErrUnavailable = errors.New("analysis tool unavailable")

// ExactResult is the output of a successful external tool run.
type ExactResult struct {
	Functions []models.FunctionUnit
	Method    string
}

// ExactTool wraps one external complexity analyzer. AttemptExact returns
// ErrUnavailable (possibly wrapped) when the tool is missing or its
// output carries no complexity data.
type ExactTool interface {
	Name() string
	AttemptExact(ctx context.Context, files []string) (*ExactResult, error)
}

// toolForLanguage picks the external adapter for a language, or nil when
// none applies.
func toolForLanguage(language string) ExactTool {
	switch language {
	case "Go":
		return gocycloTool{}
	case "JavaScript", "TypeScript", "TSX", "JSX":
		return eslintTool{}
	case "Java":
		return pmdTool{}
	case "C", "C++":
		return cppcheckTool{}
	case "Python":
		return radonTool{}
	}
	return nil
}

func lookPath(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found", ErrUnavailable, binary)
	}
	return path, nil
}

func runCommand(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// gocyclo: one line per function, "<complexity> <package> <func> <file>:<line>:<col>".
type gocycloTool struct{}

func (gocycloTool) Name() string { return "gocyclo" }

func (gocycloTool) AttemptExact(ctx context.Context, files []string) (*ExactResult, error) {
	bin, err := lookPath("gocyclo")
	if err != nil {
		return nil, err
	}
	out, _, err := runCommand(ctx, bin, files...)
	// gocyclo exits non-zero when used with -over; without it a failure
	// with empty output means the run itself broke.
	if len(out) == 0 {
		if err != nil {
			return nil, fmt.Errorf("%w: gocyclo: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: gocyclo produced no output", ErrUnavailable)
	}

	var fns []models.FunctionUnit
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 4 {
			continue
		}
		cx, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		file, lineNo := splitLocation(fields[3])
		fns = append(fns, models.FunctionUnit{
			File:       file,
			Name:       fields[2],
			StartLine:  lineNo,
			Complexity: cx,
		})
	}
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: gocyclo output unparseable", ErrUnavailable)
	}
	return &ExactResult{Functions: fns, Method: "gocyclo"}, nil
}

// splitLocation parses "path/file.go:12:1" into path and line.
func splitLocation(loc string) (string, int) {
	parts := strings.Split(loc, ":")
	if len(parts) < 2 {
		return loc, 0
	}
	line, _ := strconv.Atoi(parts[1])
	return parts[0], line
}

// eslint with the complexity rule forced to trigger on every function.
type eslintTool struct{}

func (eslintTool) Name() string { return "eslint" }

type eslintFile struct {
	FilePath string          `json:"filePath"`
	Messages []eslintMessage `json:"messages"`
}

type eslintMessage struct {
	RuleID  string `json:"ruleId"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}

var (
	eslintComplexityRe = regexp.MustCompile(`complexity of (\d+)`)
	eslintNameRe       = regexp.MustCompile(`'([^']+)'`)
)

func (eslintTool) AttemptExact(ctx context.Context, files []string) (*ExactResult, error) {
	bin, err := lookPath("eslint")
	if err != nil {
		return nil, err
	}
	args := []string{
		"--no-eslintrc",
		"--format", "json",
		"--rule", `{"complexity": ["error", {"max": 0}]}`,
	}
	args = append(args, files...)
	// eslint exits 1 when the rule fires; that is the expected path.
	out, _, _ := runCommand(ctx, bin, args...)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: eslint produced no output", ErrUnavailable)
	}

	var report []eslintFile
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("%w: eslint output: %v", ErrUnavailable, err)
	}
	var fns []models.FunctionUnit
	for _, file := range report {
		for _, msg := range file.Messages {
			if msg.RuleID != "complexity" {
				continue
			}
			m := eslintComplexityRe.FindStringSubmatch(msg.Message)
			if m == nil {
				continue
			}
			cx, _ := strconv.Atoi(m[1])
			name := "anonymous"
			if nm := eslintNameRe.FindStringSubmatch(msg.Message); nm != nil {
				name = nm[1]
			}
			fns = append(fns, models.FunctionUnit{
				File:       file.FilePath,
				Name:       name,
				StartLine:  msg.Line,
				Complexity: cx,
			})
		}
	}
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: eslint reported no complexity data", ErrUnavailable)
	}
	return &ExactResult{Functions: fns, Method: "ESLint"}, nil
}

// pmd with the CyclomaticComplexity design rule.
type pmdTool struct{}

func (pmdTool) Name() string { return "pmd" }

type pmdReport struct {
	Files []struct {
		Filename   string `json:"filename"`
		Violations []struct {
			BeginLine   int    `json:"beginline"`
			Description string `json:"description"`
			Rule        string `json:"rule"`
		} `json:"violations"`
	} `json:"files"`
}

var pmdComplexityRe = regexp.MustCompile(`cyclomatic complexity of (\d+)`)

func (pmdTool) AttemptExact(ctx context.Context, files []string) (*ExactResult, error) {
	bin, err := lookPath("pmd")
	if err != nil {
		return nil, err
	}
	args := []string{
		"check",
		"-R", "category/java/design.xml/CyclomaticComplexity",
		"-f", "json",
		"--file-list", "-",
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(strings.Join(files, "\n"))
	var outBuf bytes.Buffer
	cmd.Stdout = &outBuf
	// pmd exits 4 on violations; only empty output is a failure.
	_ = cmd.Run()
	if outBuf.Len() == 0 {
		return nil, fmt.Errorf("%w: pmd produced no output", ErrUnavailable)
	}

	var report pmdReport
	if err := json.Unmarshal(outBuf.Bytes(), &report); err != nil {
		return nil, fmt.Errorf("%w: pmd output: %v", ErrUnavailable, err)
	}
	var fns []models.FunctionUnit
	for _, file := range report.Files {
		for _, v := range file.Violations {
			m := pmdComplexityRe.FindStringSubmatch(v.Description)
			if m == nil {
				continue
			}
			cx, _ := strconv.Atoi(m[1])
			name := "anonymous"
			if nm := eslintNameRe.FindStringSubmatch(v.Description); nm != nil {
				name = nm[1]
			}
			fns = append(fns, models.FunctionUnit{
				File:       file.Filename,
				Name:       name,
				StartLine:  v.BeginLine,
				Complexity: cx,
			})
		}
	}
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: pmd reported no complexity data", ErrUnavailable)
	}
	return &ExactResult{Functions: fns, Method: "PMD"}, nil
}

// cppcheck emits XML diagnostics on stderr.
type cppcheckTool struct{}

func (cppcheckTool) Name() string { return "cppcheck" }

type cppcheckResults struct {
	Errors struct {
		Errors []struct {
			ID       string `xml:"id,attr"`
			Msg      string `xml:"msg,attr"`
			Location []struct {
				File string `xml:"file,attr"`
				Line int    `xml:"line,attr"`
			} `xml:"location"`
		} `xml:"error"`
	} `xml:"errors"`
}

var cppcheckComplexityRe = regexp.MustCompile(`(?i)cyclomatic complexity[^0-9]*(\d+)`)

func (cppcheckTool) AttemptExact(ctx context.Context, files []string) (*ExactResult, error) {
	bin, err := lookPath("cppcheck")
	if err != nil {
		return nil, err
	}
	args := []string{"--enable=all", "--xml", "--xml-version=2"}
	args = append(args, files...)
	_, stderr, err := runCommand(ctx, bin, args...)
	if len(stderr) == 0 {
		if err != nil {
			return nil, fmt.Errorf("%w: cppcheck: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: cppcheck produced no output", ErrUnavailable)
	}

	var results cppcheckResults
	if err := xml.Unmarshal(stderr, &results); err != nil {
		return nil, fmt.Errorf("%w: cppcheck output: %v", ErrUnavailable, err)
	}
	var fns []models.FunctionUnit
	for _, e := range results.Errors.Errors {
		m := cppcheckComplexityRe.FindStringSubmatch(e.Msg)
		if m == nil || len(e.Location) == 0 {
			continue
		}
		cx, _ := strconv.Atoi(m[1])
		name := "anonymous"
		if nm := eslintNameRe.FindStringSubmatch(e.Msg); nm != nil {
			name = nm[1]
		}
		fns = append(fns, models.FunctionUnit{
			File:       e.Location[0].File,
			Name:       name,
			StartLine:  e.Location[0].Line,
			Complexity: cx,
		})
	}
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: cppcheck reported no complexity data", ErrUnavailable)
	}
	return &ExactResult{Functions: fns, Method: "cppcheck"}, nil
}

// radon cc in JSON mode: map of file → blocks.
type radonTool struct{}

func (radonTool) Name() string { return "radon" }

type radonBlock struct {
	Name       string `json:"name"`
	LineNo     int    `json:"lineno"`
	EndLine    int    `json:"endline"`
	Complexity int    `json:"complexity"`
}

func (radonTool) AttemptExact(ctx context.Context, files []string) (*ExactResult, error) {
	bin, err := lookPath("radon")
	if err != nil {
		return nil, err
	}
	args := []string{"cc", "-j"}
	args = append(args, files...)
	out, _, err := runCommand(ctx, bin, args...)
	if err != nil || len(out) == 0 {
		return nil, fmt.Errorf("%w: radon: %v", ErrUnavailable, err)
	}

	var report map[string][]radonBlock
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("%w: radon output: %v", ErrUnavailable, err)
	}
	var fns []models.FunctionUnit
	for file, blocks := range report {
		for _, b := range blocks {
			lines := 0
			if b.EndLine >= b.LineNo {
				lines = b.EndLine - b.LineNo + 1
			}
			fns = append(fns, models.FunctionUnit{
				File:       file,
				Name:       b.Name,
				StartLine:  b.LineNo,
				Lines:      lines,
				Complexity: b.Complexity,
			})
		}
	}
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: radon reported no complexity data", ErrUnavailable)
	}
	return &ExactResult{Functions: fns, Method: "Radon"}, nil
}
