// Package format renders an assembled Transcript into one of three
// serialization formats: machine-readable JSON (round-trippable), plain
// text, and speaker-grouped Markdown.
//
// Every serializer is a pure function of the Transcript and preserves each
// segment's start, end, text, and speaker label exactly once: no drops,
// no duplication. Human formats render timestamps as zero-padded HH:MM:SS;
// JSON keeps full floating-point seconds. An empty transcript is valid
// input (silent audio) and yields a well-formed header-only document.
package format

import (
	"strings"

	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/transcript"
)

// Format identifies an output serialization format.
type Format string

const (
	// FormatJSON is the machine-readable round-trippable format.
	FormatJSON Format = "json"
	// FormatText is the chronological plain-text format.
	FormatText Format = "txt"
	// FormatMarkdown is the speaker-grouped Markdown format.
	FormatMarkdown Format = "md"
)

// Parse converts a user-supplied format name into a Format.
func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", errors.InvalidFormat(s)
	}
}

// Extension returns the file extension for a format, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// Serialize renders the transcript in the requested format. An unknown
// format is the only error; it is fatal for this call and surfaced to the
// caller.
func Serialize(tr *transcript.Transcript, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(tr)
	case FormatText:
		return Text(tr), nil
	case FormatMarkdown:
		return Markdown(tr), nil
	default:
		return nil, errors.InvalidFormat(string(f))
	}
}
