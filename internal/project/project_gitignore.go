// project_gitignore.go manages the project's root .gitignore entry for the
// static build output.
//
// Separated from project.go to isolate gitignore manipulation logic. Built
// HTML is derived from the docs tree and the descriptor, so it is kept out
// of git. IgnoreOutput and UnignoreOutput maintain the entry when the build
// output directory changes.
//
// Design: We preserve existing gitignore content and formatting, only adding
// or removing the output entry. A header comment marks the sitenav section
// for clarity.

package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const outputHeader = "# sitenav build output"

// parseGitignore reads a gitignore file and returns its lines (trimmed).
// A missing file yields no lines.
func parseGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	// Trim whitespace from each line for consistent matching
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines, nil
}

// outputEntry returns the gitignore line for an output directory.
func outputEntry(out string) string {
	return "/" + strings.Trim(filepath.ToSlash(out), "/") + "/"
}

// IgnoreOutput adds the build output directory to root/.gitignore,
// creating the file when needed.
func IgnoreOutput(root, out string) error {
	gitignore := filepath.Join(root, ".gitignore")
	entry := outputEntry(out)

	lines, err := parseGitignore(gitignore)
	if err != nil {
		return err
	}

	// Already ignored? Check exact line match.
	if slices.Contains(lines, entry) {
		return nil
	}

	content, err := os.ReadFile(gitignore)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	s := string(content)
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	// Add header if not present
	if !slices.Contains(lines, outputHeader) {
		if s != "" {
			s += "\n"
		}
		s += outputHeader + "\n"
	}

	s += entry + "\n"
	return os.WriteFile(gitignore, []byte(s), 0644)
}

// UnignoreOutput removes the build output directory from root/.gitignore.
func UnignoreOutput(root, out string) error {
	gitignore := filepath.Join(root, ".gitignore")
	entry := outputEntry(out)

	content, err := os.ReadFile(gitignore)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	// Remove the output line, preserving other content
	lines := strings.Split(string(content), "\n")
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != entry {
			kept = append(kept, line)
		}
	}

	// Clean up: remove header if no entries remain after it
	result := strings.Join(kept, "\n")
	if idx := strings.Index(result, outputHeader); idx != -1 {
		rest := strings.TrimSpace(result[idx+len(outputHeader):])
		if rest == "" {
			result = strings.TrimRight(result[:idx], "\n")
			if result != "" {
				result += "\n"
			}
		}
	}

	return os.WriteFile(gitignore, []byte(result), 0644)
}

// IsOutputIgnored checks if the build output directory is in root/.gitignore.
func IsOutputIgnored(root, out string) (bool, error) {
	lines, err := parseGitignore(filepath.Join(root, ".gitignore"))
	if err != nil {
		return false, err
	}
	return slices.Contains(lines, outputEntry(out)), nil
}
