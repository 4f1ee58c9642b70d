// Package transcript defines the timed segment model shared by the
// alignment, assembly, and serialization stages: intervals, words,
// transcription segments, diarization turns, and the Transcript aggregate.
//
// The types carry no pipeline logic. Invariants they encode:
//
//   - Interval: Start <= End, both non-negative (violations are clamped,
//     never rejected; upstream is untrusted ML output).
//   - Segment IDs are unique and strictly increasing with start time.
//   - Word intervals lie within their parent segment, within Tolerance.
//   - A segment without diarization coverage carries UnknownSpeaker,
//     never a guessed label.
package transcript
