// Package gap derives speaker turns from transcription segment timings
// alone: a pause longer than the threshold flips the speaker. It is a
// heuristic fallback for when no diarization sidecar is reachable and an
// exact-count two-party recording (e.g. an interview) is being processed.
package gap

import (
	"fmt"

	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/transcription"
)

// MethodName identifies gap-based results in transcript metadata.
const MethodName = "gap"

// DefaultThreshold is the pause length, in seconds, that flips the speaker.
const DefaultThreshold = 1.5

// Diarizer alternates between two speaker labels on silence gaps.
type Diarizer struct {
	// Threshold is the minimum pause, in seconds, treated as a speaker
	// change. Zero means DefaultThreshold.
	Threshold float64
}

// Diarize builds speaker turns from the gaps between transcription
// segments. Unlike sidecar backends it needs no audio access, so it cannot
// fail; an empty segment list yields an empty result.
func (d Diarizer) Diarize(segments []transcription.Segment) *diarization.Result {
	threshold := d.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	result := &diarization.Result{Method: MethodName}
	if len(segments) == 0 {
		return result
	}

	speaker := 0
	turns := make([]diarization.Turn, 0, len(segments))
	for i, seg := range segments {
		if i > 0 && seg.Start-segments[i-1].End > threshold {
			speaker = 1 - speaker
		}
		turns = append(turns, diarization.Turn{
			Speaker: speakerLabel(speaker),
			Start:   seg.Start,
			End:     seg.End,
		})
	}

	seen := make(map[string]bool, 2)
	for _, t := range turns {
		seen[t.Speaker] = true
	}

	result.Turns = turns
	result.NumSpeakers = len(seen)
	return result
}

func speakerLabel(i int) string {
	return fmt.Sprintf("SPEAKER_%02d", i)
}
