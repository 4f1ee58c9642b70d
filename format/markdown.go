package format

import (
	"fmt"
	"strings"

	"github.com/skillsenselab/scribe/transcript"
)

// Markdown serializes the transcript as a Markdown document grouped by
// speaker. Sections appear in order of each speaker's first chronological
// appearance, not alphabetically; within a section the speaker's segments
// stay chronological. Without diarization there is a single unlabeled
// section holding all segments.
func Markdown(tr *transcript.Transcript) []byte {
	var b strings.Builder

	b.WriteString("# Audio Transcription\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", tr.Metadata.CreatedAt.Format(timeLayout))
	fmt.Fprintf(&b, "**Language:** %s  \n", orUnknown(tr.Language))
	if tr.Diarized() {
		fmt.Fprintf(&b, "**Speakers:** %d  \n", tr.Metadata.SpeakerCount)
	}
	b.WriteString("\n---\n\n")

	b.WriteString("## Transcription with Timestamps\n\n")

	if tr.Diarized() {
		for _, speaker := range speakerOrder(tr) {
			fmt.Fprintf(&b, "### %s\n\n", speaker)
			for _, seg := range tr.Segments {
				if seg.Speaker != speaker {
					continue
				}
				fmt.Fprintf(&b, "**%s**: %s\n\n", Timestamp(seg.Start), seg.Text)
			}
		}
	} else {
		for _, seg := range tr.Segments {
			fmt.Fprintf(&b, "**%s**: %s\n\n", Timestamp(seg.Start), seg.Text)
		}
	}

	b.WriteString("---\n\n")
	b.WriteString("## Full Transcription\n\n")
	b.WriteString(tr.FullText)
	b.WriteString("\n")

	return []byte(b.String())
}

// speakerOrder returns every label appearing in the transcript in
// first-appearance order, the unknown sentinel included, so uncovered
// segments are not dropped.
func speakerOrder(tr *transcript.Transcript) []string {
	seen := make(map[string]bool, 4)
	var order []string
	for _, seg := range tr.Segments {
		if !seen[seg.Speaker] {
			seen[seg.Speaker] = true
			order = append(order, seg.Speaker)
		}
	}
	return order
}
