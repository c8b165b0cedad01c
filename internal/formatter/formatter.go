package formatter

import (
	"fmt"
	"go/format"
	"regexp"
	"sort"
	"strings"

	"github.com/mcncl/json2struct/internal/logger"
)

// Formatter tidies rendered code for targets that have a canonical formatter
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

var importRegex = regexp.MustCompile(`(?s)import\s*\((.+?)\)`)

// Supports reports whether code written with the given file extension is reformatted.
func (f *Formatter) Supports(ext string) bool {
	return strings.TrimPrefix(ext, ".") == "go"
}

// Format reformats code destined for a file with extension ext. Only Go is
// reformatted; every other target is returned unchanged.
func (f *Formatter) Format(code, ext string) (string, error) {
	if !f.Supports(ext) {
		logger.Debug("no formatter for target, leaving output as rendered", "extension", ext)
		return code, nil
	}

	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		return "", fmt.Errorf("failed to parse Go code: %w", err)
	}

	return f.formatImports(string(formatted)), nil
}

// formatImports organizes import statements with standard library imports first,
// followed by third-party imports with a blank line in between
func (f *Formatter) formatImports(code string) string {
	importMatches := importRegex.FindStringSubmatch(code)
	if len(importMatches) < 2 {
		// No import block found or it's a single-line import
		return code
	}

	importLines := strings.Split(strings.TrimSpace(importMatches[1]), "\n")

	stdLibImports := []string{}
	thirdPartyImports := []string{}

	for _, line := range importLines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		// Standard library imports don't have dots
		importPath := strings.Trim(line, `"`)
		if !strings.Contains(importPath, ".") {
			stdLibImports = append(stdLibImports, line)
		} else {
			thirdPartyImports = append(thirdPartyImports, line)
		}
	}

	sort.Strings(stdLibImports)
	sort.Strings(thirdPartyImports)

	var b strings.Builder
	b.WriteString("import (\n")
	for _, imp := range stdLibImports {
		b.WriteString("\t" + imp + "\n")
	}
	if len(stdLibImports) > 0 && len(thirdPartyImports) > 0 {
		b.WriteString("\n")
	}
	for _, imp := range thirdPartyImports {
		b.WriteString("\t" + imp + "\n")
	}
	b.WriteString(")")

	return strings.Replace(code, importMatches[0], b.String(), 1)
}
