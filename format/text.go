package format

import (
	"fmt"
	"strings"

	"github.com/skillsenselab/scribe/transcript"
)

const separator = "=================================================="

// Text serializes the transcript as plain text: a header block, a blank
// line, then one chronological line per segment. The speaker prefix is
// omitted entirely when diarization did not run.
func Text(tr *transcript.Transcript) []byte {
	var b strings.Builder

	b.WriteString("Audio Transcription\n")
	fmt.Fprintf(&b, "Generated: %s\n", tr.Metadata.CreatedAt.Format(timeLayout))
	fmt.Fprintf(&b, "Language: %s\n", orUnknown(tr.Language))
	if tr.Diarized() {
		fmt.Fprintf(&b, "Speakers detected: %d\n", tr.Metadata.SpeakerCount)
	}
	b.WriteString("\n")

	for _, seg := range tr.Segments {
		if tr.Diarized() {
			fmt.Fprintf(&b, "[%s] %s: %s\n", Timestamp(seg.Start), seg.Speaker, seg.Text)
		} else {
			fmt.Fprintf(&b, "[%s] %s\n", Timestamp(seg.Start), seg.Text)
		}
	}

	b.WriteString("\n" + separator + "\n")
	b.WriteString("FULL TRANSCRIPTION:\n\n")
	b.WriteString(tr.FullText)
	b.WriteString("\n")

	return []byte(b.String())
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
