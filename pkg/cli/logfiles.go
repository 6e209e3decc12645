package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/logentry"
	"github.com/getmockd/logcapture/pkg/logfile"
)

// stdinName is the --logs value that reads standard input.
const stdinName = "-"

// resolveLogFiles expands patterns into file paths, keeping the order of the
// patterns and dropping duplicates.
func resolveLogFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if pattern == stdinName {
			if !seen[stdinName] {
				files = append(files, stdinName)
				seen[stdinName] = true
			}
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoLogFiles, pattern)
		}
		slices.Sort(matches)
		for _, m := range matches {
			if !seen[m] {
				files = append(files, m)
				seen[m] = true
			}
		}
	}
	return files, nil
}

// readEntries decodes every file in order and applies filter.
func readEntries(files []string, stdin io.Reader, filter *capture.Filter, log *slog.Logger) ([]logentry.Entry, error) {
	decoder := logfile.NewDecoder()

	var out []logentry.Entry
	for _, path := range files {
		var (
			entries []logentry.Entry
			err     error
		)
		if path == stdinName {
			entries, err = decoder.ReadAll(stdin)
			if err != nil {
				err = fmt.Errorf("stdin: %w", err)
			}
		} else {
			entries, err = decoder.ReadFile(path)
		}
		if err != nil {
			return nil, err
		}
		log.Debug("decoded log file", "path", path, "entries", len(entries))

		for _, e := range entries {
			if filter == nil || filter.Matches(e) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}
