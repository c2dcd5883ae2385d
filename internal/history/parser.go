// Package history parses shell history logs (zsh, bash, fish) into
// normalized timestamped command entries.
//
// All parsers follow the same degradation policy: a missing or unreadable
// file yields an empty sequence, and a malformed line or record is skipped
// without failing the rest of the parse. Epochs are seconds since the UNIX
// epoch and are converted to UTC; an unparsable epoch yields an entry with
// a nil timestamp.
package history

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxLineBytes bounds a single history line. Pasted here-docs and multiline
// commands can exceed bufio's default 64K token limit.
const maxLineBytes = 1024 * 1024

// zshExtendedRE matches the zsh extended_history header:
// ": <epoch>:<elapsed>;<command>".
var zshExtendedRE = regexp.MustCompile(`^: (\d+):(\d+);(.*)$`)

// ParseZsh parses a zsh extended-format history file. A header line starts a
// new entry; any following line that is not itself a header is a multiline
// continuation, joined by a newline.
func ParseZsh(path string) []Entry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var (
		entries []Entry
		command string
		ts      *time.Time
		started bool
	)

	flush := func() {
		cmd := strings.TrimSpace(command)
		if cmd != "" {
			entries = append(entries, Entry{Command: cmd, Timestamp: ts})
		}
	}

	sc := newScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if m := zshExtendedRE.FindStringSubmatch(line); m != nil {
			if started {
				flush()
			}
			started = true
			ts = epochTime(m[1])
			command = m[3]
			continue
		}
		if started {
			command += "\n" + line
		}
		// Lines before the first header do not belong to any entry; skip.
	}
	if started {
		flush()
	}

	return entries
}

// ParseBash parses a bash history file. Plain lines are commands; a comment
// line holding a bare integer (written when HISTTIMEFORMAT is set) carries
// the timestamp for exactly the next plain line and is then cleared.
func ParseBash(path string) []Entry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var (
		entries []Entry
		pending *time.Time
	)

	sc := newScanner(f)
	for sc.Scan() {
		line := sc.Text()

		if strings.HasPrefix(line, "#") {
			if ts := epochTime(strings.TrimSpace(line[1:])); ts != nil {
				pending = ts
				continue
			}
			// Not a timestamp marker; bash stores such lines as commands.
		}

		if line == "" {
			continue
		}

		entries = append(entries, Entry{Command: line, Timestamp: pending})
		pending = nil
	}

	return entries
}

// ParseFish parses a fish history file. Records are "- cmd:" lines paired
// with a following "when:" line; an entry is emitted only once both halves
// of the pair are seen, so an unpaired cmd at end-of-file is discarded.
func ParseFish(path string) []Entry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var (
		entries []Entry
		command string
		haveCmd bool
	)

	sc := newScanner(f)
	for sc.Scan() {
		trimmed := strings.TrimSpace(sc.Text())

		if after, ok := strings.CutPrefix(trimmed, "- cmd:"); ok {
			command = strings.TrimSpace(after)
			haveCmd = true
			continue
		}

		if after, ok := strings.CutPrefix(trimmed, "when:"); ok && haveCmd {
			entries = append(entries, Entry{
				Command:   command,
				Timestamp: epochTime(strings.TrimSpace(after)),
			})
			haveCmd = false
		}
	}

	return entries
}

func newScanner(f *os.File) *bufio.Scanner {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return sc
}

// epochTime converts a decimal epoch-seconds string to a UTC instant, or nil
// when the string does not parse as an int64.
func epochTime(s string) *time.Time {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(n, 0).UTC()
	return &t
}
