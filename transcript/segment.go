package transcript

// UnknownSpeaker is the sentinel assigned when no diarization turn overlaps
// a unit. It is never rendered as a fabricated speaker label.
const UnknownSpeaker = "unknown"

// NoProbability marks a word whose confidence is unknown.
const NoProbability = -1.0

// Word is a single transcribed word with its own timestamps. Words are
// owned exclusively by their parent segment.
type Word struct {
	Interval
	// Text is the word text.
	Text string `json:"text"`
	// Probability is the word confidence in [0, 1], or NoProbability
	// when the backend did not report one.
	Probability float64 `json:"probability"`
	// Speaker is the word-level speaker label, when word alignment ran.
	Speaker string `json:"speaker,omitempty"`
}

// HasProbability reports whether the word carries a known confidence.
func (w Word) HasProbability() bool { return w.Probability >= 0 }

// Segment is a contiguous unit of transcribed speech.
type Segment struct {
	Interval
	// ID is the sequence index, unique and assigned in chronological
	// order starting at 0.
	ID int `json:"id"`
	// Text is the full segment text.
	Text string `json:"text"`
	// Words holds word-level timestamps; empty when the backend did not
	// produce them.
	Words []Word `json:"words,omitempty"`
	// Speaker is assigned by the alignment engine, UnknownSpeaker until then.
	Speaker string `json:"speaker"`
}

// ClampWords pulls stray word intervals back inside the segment bounds.
// Words within Tolerance of the bounds are left untouched; words beyond it
// are clamped, never dropped. Returns the number of corrected words.
func (s *Segment) ClampWords() int {
	corrected := 0
	for i := range s.Words {
		w := &s.Words[i]
		changed := false
		if w.Start < s.Start-Tolerance {
			w.Start = s.Start
			changed = true
		}
		if w.End > s.End+Tolerance {
			w.End = s.End
			changed = true
		}
		if w.End < w.Start {
			w.End = w.Start
			changed = true
		}
		if changed {
			corrected++
		}
	}
	return corrected
}

// Turn is one speaker-labeled interval produced by diarization. Turns for
// the same speaker may be non-contiguous; turns across speakers should not
// overlap, though the alignment engine tolerates it when they do.
type Turn struct {
	Interval
	// Speaker is the diarization speaker label, e.g. "SPEAKER_00".
	Speaker string `json:"speaker"`
}
