package format

import (
	"encoding/json"
	"time"

	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/transcript"
)

// Document is the JSON wire shape: a metadata header plus the transcription
// body. It round-trips: Deserialize(JSON(tr)) reconstructs tr's segments,
// timestamps, text, and speaker labels exactly.
type Document struct {
	Metadata      DocumentMetadata `json:"metadata"`
	Transcription Transcription    `json:"transcription"`
}

// DocumentMetadata describes the assembly run.
type DocumentMetadata struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	Language          string    `json:"language"`
	HasSpeakers       bool      `json:"has_speakers"`
	TotalSegments     int       `json:"total_segments"`
	SpeakerCount      int       `json:"speaker_count"`
	Diarization       string    `json:"diarization"`
	DiarizationMethod string    `json:"diarization_method,omitempty"`
	Duration          float64   `json:"duration"`
}

// Transcription is the transcript body.
type Transcription struct {
	Text     string       `json:"text"`
	Language string       `json:"language"`
	Segments []SegmentDoc `json:"segments"`
}

// SegmentDoc is one serialized segment.
type SegmentDoc struct {
	ID      int       `json:"id"`
	Start   float64   `json:"start"`
	End     float64   `json:"end"`
	Text    string    `json:"text"`
	Speaker string    `json:"speaker"`
	Words   []WordDoc `json:"words,omitempty"`
}

// WordDoc is one serialized word.
type WordDoc struct {
	Start       float64  `json:"start"`
	End         float64  `json:"end"`
	Text        string   `json:"text"`
	Probability *float64 `json:"probability,omitempty"`
	Speaker     string   `json:"speaker,omitempty"`
}

// JSON serializes the transcript as an indented JSON document.
func JSON(tr *transcript.Transcript) ([]byte, error) {
	doc := Document{
		Metadata: DocumentMetadata{
			ID:                tr.ID,
			CreatedAt:         tr.Metadata.CreatedAt,
			Language:          tr.Language,
			HasSpeakers:       tr.Diarized(),
			TotalSegments:     len(tr.Segments),
			SpeakerCount:      tr.Metadata.SpeakerCount,
			Diarization:       string(tr.Metadata.Diarization),
			DiarizationMethod: tr.Metadata.Method,
			Duration:          tr.Metadata.Duration,
		},
		Transcription: Transcription{
			Text:     tr.FullText,
			Language: tr.Language,
			Segments: make([]SegmentDoc, len(tr.Segments)),
		},
	}

	for i, seg := range tr.Segments {
		sd := SegmentDoc{
			ID:      seg.ID,
			Start:   seg.Start,
			End:     seg.End,
			Text:    seg.Text,
			Speaker: seg.Speaker,
		}
		if len(seg.Words) > 0 {
			sd.Words = make([]WordDoc, len(seg.Words))
			for j, w := range seg.Words {
				wd := WordDoc{
					Start:   w.Start,
					End:     w.End,
					Text:    w.Text,
					Speaker: w.Speaker,
				}
				if w.HasProbability() {
					p := w.Probability
					wd.Probability = &p
				}
				sd.Words[j] = wd
			}
		}
		doc.Transcription.Segments[i] = sd
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Internal(err)
	}
	return append(out, '\n'), nil
}

// Deserialize reconstructs a Transcript from a JSON document produced by
// JSON.
func Deserialize(data []byte) (*transcript.Transcript, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.InvalidInput("document", "not a valid transcript document").WithCause(err)
	}

	tr := &transcript.Transcript{
		ID:       doc.Metadata.ID,
		Language: doc.Transcription.Language,
		FullText: doc.Transcription.Text,
		Segments: make([]transcript.Segment, len(doc.Transcription.Segments)),
		Metadata: transcript.Metadata{
			CreatedAt:    doc.Metadata.CreatedAt,
			SpeakerCount: doc.Metadata.SpeakerCount,
			Diarization:  transcript.DiarizationStatus(doc.Metadata.Diarization),
			Method:       doc.Metadata.DiarizationMethod,
			Duration:     doc.Metadata.Duration,
		},
	}

	for i, sd := range doc.Transcription.Segments {
		speaker := sd.Speaker
		if speaker == "" {
			speaker = transcript.UnknownSpeaker
		}
		seg := transcript.Segment{
			Interval: transcript.Interval{Start: sd.Start, End: sd.End},
			ID:       sd.ID,
			Text:     sd.Text,
			Speaker:  speaker,
		}
		if len(sd.Words) > 0 {
			seg.Words = make([]transcript.Word, len(sd.Words))
			for j, wd := range sd.Words {
				prob := transcript.NoProbability
				if wd.Probability != nil {
					prob = *wd.Probability
				}
				seg.Words[j] = transcript.Word{
					Interval:    transcript.Interval{Start: wd.Start, End: wd.End},
					Text:        wd.Text,
					Probability: prob,
					Speaker:     wd.Speaker,
				}
			}
		}
		tr.Segments[i] = seg
	}

	return tr, nil
}
