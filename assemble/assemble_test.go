package assemble

import (
	"context"
	"testing"

	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/transcript"
	"github.com/skillsenselab/scribe/transcription"
)

// --- test helpers ---

func rawSeg(start, end float64, text string) transcription.Segment {
	return transcription.Segment{Start: start, End: end, Text: text}
}

func diarized(turns ...diarization.Turn) *diarization.Result {
	speakers := make(map[string]bool)
	for _, t := range turns {
		speakers[t.Speaker] = true
	}
	return &diarization.Result{Turns: turns, NumSpeakers: len(speakers), Method: "pyannote"}
}

// --- ordering and ids ---

func TestAssemble_MonotonicReordering(t *testing.T) {
	result := transcription.Result{
		Segments: []transcription.Segment{
			rawSeg(10, 12, "third"),
			rawSeg(0, 2, "first"),
			rawSeg(5, 7, "second"),
		},
	}

	tr := New().Assemble(context.Background(), result, nil, false)

	if len(tr.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(tr.Segments))
	}
	wantText := []string{"first", "second", "third"}
	for i, seg := range tr.Segments {
		if seg.ID != i {
			t.Errorf("segment %d: expected fresh id %d, got %d", i, i, seg.ID)
		}
		if seg.Text != wantText[i] {
			t.Errorf("segment %d: expected %q, got %q", i, wantText[i], seg.Text)
		}
		if i > 0 && seg.Start < tr.Segments[i-1].Start {
			t.Errorf("segment %d out of order", i)
		}
	}
}

func TestAssemble_EqualStartsKeepInputOrder(t *testing.T) {
	result := transcription.Result{
		Segments: []transcription.Segment{
			rawSeg(5, 6, "later"),
			rawSeg(0, 1, "a"),
			rawSeg(0, 1, "b"),
		},
	}

	tr := New().Assemble(context.Background(), result, nil, false)

	if tr.Segments[0].Text != "a" || tr.Segments[1].Text != "b" {
		t.Errorf("equal start times must keep input order, got %q then %q",
			tr.Segments[0].Text, tr.Segments[1].Text)
	}
}

// --- clamping ---

func TestAssemble_ClampsMalformedIntervals(t *testing.T) {
	result := transcription.Result{
		Segments: []transcription.Segment{
			rawSeg(-1, 2, "negative start"),
			rawSeg(5, 3, "negative duration"),
		},
	}

	tr := New().Assemble(context.Background(), result, nil, false)

	if tr.Segments[0].Start != 0 {
		t.Errorf("expected start clamped to 0, got %v", tr.Segments[0].Start)
	}
	if tr.Segments[1].End != tr.Segments[1].Start {
		t.Errorf("expected end raised to start, got [%v, %v]",
			tr.Segments[1].Start, tr.Segments[1].End)
	}
}

func TestAssemble_ClampsStrayWords(t *testing.T) {
	prob := 0.8
	result := transcription.Result{
		Segments: []transcription.Segment{
			{
				Start: 1, End: 5, Text: "hello world",
				Words: []transcription.Word{
					{Start: 0.2, End: 2, Text: "hello", Probability: &prob},
					{Start: 2, End: 7, Text: "world"},
				},
			},
		},
	}

	tr := New().Assemble(context.Background(), result, nil, false)

	words := tr.Segments[0].Words
	if words[0].Start != 1 {
		t.Errorf("expected word clamped into segment, got start %v", words[0].Start)
	}
	if words[1].End != 5 {
		t.Errorf("expected word clamped into segment, got end %v", words[1].End)
	}
	if words[0].Probability != 0.8 {
		t.Errorf("probability lost: %v", words[0].Probability)
	}
	if words[1].Probability != transcript.NoProbability {
		t.Errorf("missing probability should map to sentinel, got %v", words[1].Probability)
	}
}

// --- diarization status ---

func TestAssemble_NotRequested(t *testing.T) {
	result := transcription.Result{Segments: []transcription.Segment{rawSeg(0, 2, "hi")}}

	tr := New().Assemble(context.Background(), result, nil, false)

	if tr.Metadata.Diarization != transcript.DiarizationNone {
		t.Errorf("expected none, got %s", tr.Metadata.Diarization)
	}
	if tr.Segments[0].Speaker != transcript.UnknownSpeaker {
		t.Errorf("expected unknown sentinel, got %s", tr.Segments[0].Speaker)
	}
	if tr.Metadata.SpeakerCount != 0 {
		t.Errorf("expected 0 speakers, got %d", tr.Metadata.SpeakerCount)
	}
}

func TestAssemble_RequestedButUnavailable(t *testing.T) {
	result := transcription.Result{Segments: []transcription.Segment{rawSeg(0, 2, "hi")}}

	tr := New().Assemble(context.Background(), result, nil, true)

	if tr.Metadata.Diarization != transcript.DiarizationUnavailable {
		t.Errorf("expected unavailable, got %s", tr.Metadata.Diarization)
	}
	if tr.Segments[0].Speaker != transcript.UnknownSpeaker {
		t.Errorf("speakers must stay unknown, got %s", tr.Segments[0].Speaker)
	}
}

func TestAssemble_RequestedEmptyResult(t *testing.T) {
	result := transcription.Result{Segments: []transcription.Segment{rawSeg(0, 2, "hi")}}

	tr := New().Assemble(context.Background(), result, &diarization.Result{Method: "pyannote"}, true)

	if tr.Metadata.Diarization != transcript.DiarizationUnavailable {
		t.Errorf("empty turn list must read as unavailable, got %s", tr.Metadata.Diarization)
	}
}

func TestAssemble_Applied(t *testing.T) {
	result := transcription.Result{
		Language: "en",
		Segments: []transcription.Segment{
			rawSeg(0, 5, "hello"),
			rawSeg(5, 10, "there"),
		},
	}
	dr := diarized(
		diarization.Turn{Speaker: "SPEAKER_00", Start: 0, End: 4},
		diarization.Turn{Speaker: "SPEAKER_01", Start: 4, End: 10},
	)

	tr := New().Assemble(context.Background(), result, dr, true)

	if tr.Metadata.Diarization != transcript.DiarizationApplied {
		t.Fatalf("expected applied, got %s", tr.Metadata.Diarization)
	}
	if tr.Metadata.Method != "pyannote" {
		t.Errorf("expected method pyannote, got %q", tr.Metadata.Method)
	}
	if tr.Segments[0].Speaker != "SPEAKER_00" || tr.Segments[1].Speaker != "SPEAKER_01" {
		t.Errorf("unexpected speakers: %s, %s", tr.Segments[0].Speaker, tr.Segments[1].Speaker)
	}
	if tr.Metadata.SpeakerCount != 2 {
		t.Errorf("expected 2 speakers, got %d", tr.Metadata.SpeakerCount)
	}
}

// --- aggregates ---

func TestAssemble_Empty(t *testing.T) {
	tr := New().Assemble(context.Background(), transcription.Result{}, nil, false)

	if len(tr.Segments) != 0 {
		t.Fatalf("expected 0 segments, got %d", len(tr.Segments))
	}
	if tr.FullText != "" {
		t.Errorf("expected empty full text, got %q", tr.FullText)
	}
	if tr.Metadata.SpeakerCount != 0 {
		t.Errorf("expected 0 speakers, got %d", tr.Metadata.SpeakerCount)
	}
	if tr.Metadata.Duration != 0 {
		t.Errorf("expected 0 duration, got %v", tr.Metadata.Duration)
	}
}

func TestAssemble_FullTextFallback(t *testing.T) {
	result := transcription.Result{
		Segments: []transcription.Segment{rawSeg(0, 1, "hello"), rawSeg(1, 2, "world")},
	}

	tr := New().Assemble(context.Background(), result, nil, false)

	if tr.FullText != "hello world" {
		t.Errorf("expected joined text, got %q", tr.FullText)
	}
}

func TestAssemble_Metadata(t *testing.T) {
	result := transcription.Result{
		Language: "de",
		Text:     "hallo",
		Segments: []transcription.Segment{rawSeg(0, 3.5, "hallo")},
	}

	tr := New().Assemble(context.Background(), result, nil, false)

	if tr.ID == "" {
		t.Error("expected a transcript id")
	}
	if tr.Language != "de" {
		t.Errorf("expected language de, got %q", tr.Language)
	}
	if tr.Metadata.Duration != 3.5 {
		t.Errorf("expected duration 3.5, got %v", tr.Metadata.Duration)
	}
	if tr.Metadata.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
}
