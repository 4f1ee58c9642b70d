// Package align assigns speaker labels to transcription segments by
// overlapping them with diarization turns.
//
// Each segment receives the label of the speaker whose turns overlap it the
// longest, overlap duration summed across that speaker's non-contiguous
// turns. Ties resolve deterministically: the speaker whose earliest
// contributing turn starts first wins, then the lexicographically smaller
// label. A segment with no overlapping turn at all keeps
// transcript.UnknownSpeaker; coverage gaps are never papered over with the
// nearest speaker.
//
// Both lists are processed sorted by start time so a full run is
// O(n log n + m log m) plus the overlapping pairs, rather than pairwise.
package align

import (
	"sort"

	"github.com/skillsenselab/scribe/transcript"
)

type options struct {
	words bool
}

// Option configures an Assign call.
type Option func(*options)

// WithWords enables word-level speaker assignment for segments that carry
// word timestamps.
func WithWords() Option {
	return func(o *options) { o.words = true }
}

// Assign populates the Speaker field of every segment from the given
// diarization turns. The segments must be in chronological order; the turns
// may arrive in any order and are sorted into a scratch copy, so the
// caller's slice is never reordered. Overlapping turns, an upstream
// invariant violation, are tolerated: both score for their speakers.
//
// Assign mutates only speaker fields; it never creates or drops segments.
func Assign(segments []transcript.Segment, turns []transcript.Turn, opts ...Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(turns) == 0 {
		for i := range segments {
			segments[i].Speaker = transcript.UnknownSpeaker
		}
		return
	}

	sorted := make([]transcript.Turn, len(turns))
	copy(sorted, turns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	lo := 0
	for i := range segments {
		seg := &segments[i]

		// Turns fully before this segment can never overlap a later
		// segment either, since segments are chronological.
		for lo < len(sorted) && sorted[lo].End <= seg.Start {
			lo++
		}

		seg.Speaker = winner(seg.Interval, sorted, lo)

		if o.words {
			for wi := range seg.Words {
				seg.Words[wi].Speaker = winner(seg.Words[wi].Interval, sorted, lo)
			}
		}
	}
}

// score accumulates one speaker's claim on an interval.
type score struct {
	speaker  string
	total    float64
	earliest float64
}

// winner returns the speaker label with the greatest total overlap against
// the unit interval, scanning turns from index lo while they can still
// intersect it. Returns transcript.UnknownSpeaker on zero coverage.
func winner(unit transcript.Interval, turns []transcript.Turn, lo int) string {
	var scores []score
	index := make(map[string]int, 4)

	for j := lo; j < len(turns) && turns[j].Start < unit.End; j++ {
		ov := unit.Overlap(turns[j].Interval)
		if ov <= 0 {
			continue
		}
		k, ok := index[turns[j].Speaker]
		if !ok {
			index[turns[j].Speaker] = len(scores)
			scores = append(scores, score{
				speaker:  turns[j].Speaker,
				total:    ov,
				earliest: turns[j].Start,
			})
			continue
		}
		scores[k].total += ov
		if turns[j].Start < scores[k].earliest {
			scores[k].earliest = turns[j].Start
		}
	}

	if len(scores) == 0 {
		return transcript.UnknownSpeaker
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if better(s, best) {
			best = s
		}
	}
	return best.speaker
}

// better reports whether a beats b: more overlap wins; on equal overlap the
// earlier contributing turn start wins; on equal start the lexicographically
// smaller label wins. This rule is the tie-break contract relied on by
// callers for reproducible output.
func better(a, b score) bool {
	if a.total != b.total {
		return a.total > b.total
	}
	if a.earliest != b.earliest {
		return a.earliest < b.earliest
	}
	return a.speaker < b.speaker
}
