package transcript

import "time"

// DiarizationStatus records whether speaker attribution was requested and
// whether it succeeded. It distinguishes "not requested" from "requested
// but unavailable" for downstream consumers.
type DiarizationStatus string

const (
	// DiarizationNone means diarization was not requested.
	DiarizationNone DiarizationStatus = "none"
	// DiarizationApplied means speaker labels were assigned from
	// diarization output.
	DiarizationApplied DiarizationStatus = "applied"
	// DiarizationUnavailable means diarization was requested but the
	// backend failed or returned nothing; every speaker is unknown.
	DiarizationUnavailable DiarizationStatus = "unavailable"
)

// Metadata summarizes an assembled transcript.
type Metadata struct {
	// CreatedAt is the assembly timestamp.
	CreatedAt time.Time `json:"created_at"`
	// SpeakerCount is the number of distinct non-unknown speaker labels.
	SpeakerCount int `json:"speaker_count"`
	// Diarization records whether speaker attribution was applied.
	Diarization DiarizationStatus `json:"diarization"`
	// Method names the diarization backend that produced the labels,
	// empty when diarization did not run.
	Method string `json:"method,omitempty"`
	// Duration is the total transcript duration in seconds.
	Duration float64 `json:"duration"`
}

// Transcript is the root aggregate produced by the assembler. It owns its
// segments exclusively and is treated as immutable after assembly.
type Transcript struct {
	// ID uniquely identifies one assembly run.
	ID string `json:"id"`
	// Language is the detected or requested audio language.
	Language string `json:"language"`
	// FullText is the concatenation of segment texts.
	FullText string `json:"full_text"`
	// Segments are ordered chronologically with sequential IDs from 0.
	Segments []Segment `json:"segments"`
	// Metadata summarizes the assembly.
	Metadata Metadata `json:"metadata"`
}

// Diarized reports whether speaker labels were applied.
func (t *Transcript) Diarized() bool {
	return t.Metadata.Diarization == DiarizationApplied
}

// Speakers returns the distinct non-unknown speaker labels in order of
// first chronological appearance.
func (t *Transcript) Speakers() []string {
	seen := make(map[string]bool, 4)
	var out []string
	for _, seg := range t.Segments {
		if seg.Speaker == UnknownSpeaker || seg.Speaker == "" {
			continue
		}
		if !seen[seg.Speaker] {
			seen[seg.Speaker] = true
			out = append(out, seg.Speaker)
		}
	}
	return out
}

// Duration returns the latest segment end time in seconds.
func (t *Transcript) Duration() float64 {
	var max float64
	for _, seg := range t.Segments {
		if seg.End > max {
			max = seg.End
		}
	}
	return max
}
