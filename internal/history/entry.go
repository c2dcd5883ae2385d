package history

import (
	"strings"
	"time"
)

// Entry is a single command recorded in a shell history log.
// Timestamp is nil when the log carried no usable epoch for the command;
// such entries still count as usage events, they just have no recency weight.
type Entry struct {
	Command   string
	Timestamp *time.Time
}

// BaseCommand returns the first whitespace-delimited token of the command,
// or "" for an empty command.
func (e *Entry) BaseCommand() string {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// InvokesBinary reports whether the command appears to invoke the named
// binary. Matching is case-insensitive: the first token must equal the name,
// or any token (after stripping a leading "sudo") must equal the name or
// start with name + "/". Aliases and wrapper scripts produce false negatives
// that are accepted rather than corrected.
func (e *Entry) InvokesBinary(name string) bool {
	bin := strings.ToLower(name)
	if bin == "" {
		return false
	}

	words := strings.Fields(strings.ToLower(e.Command))
	if len(words) == 0 {
		return false
	}

	if words[0] == bin {
		return true
	}

	for _, w := range words {
		for strings.HasPrefix(w, "sudo") {
			w = strings.TrimPrefix(w, "sudo")
		}
		if w == bin || strings.HasPrefix(w, bin+"/") {
			return true
		}
	}

	return false
}
