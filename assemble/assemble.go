// Package assemble merges transcription output and optional diarization
// output into one validated, immutable Transcript.
//
// The assembler never rejects upstream data: malformed intervals are
// clamped and logged, out-of-order segments are re-sorted with fresh IDs,
// and a failed or empty diarization result degrades to an unattributed
// transcript whose metadata records that diarization was attempted.
package assemble

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/scribe/align"
	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/transcript"
	"github.com/skillsenselab/scribe/transcription"
)

const instrumentationName = "github.com/skillsenselab/scribe/assemble"

// Assembler builds Transcripts from raw capability output.
type Assembler struct {
	log        *logger.Logger
	tracer     trace.Tracer
	alignWords bool

	transcriptsTotal metric.Int64Counter
	segmentsTotal    metric.Int64Counter
	clampsTotal      metric.Int64Counter
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger used for correction warnings.
func WithLogger(log *logger.Logger) Option {
	return func(a *Assembler) { a.log = log }
}

// WithWordAlignment enables word-level speaker assignment when word
// timestamps are present.
func WithWordAlignment() Option {
	return func(a *Assembler) { a.alignWords = true }
}

// New creates an Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		log:    logger.WithComponent("assemble"),
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(a)
	}

	meter := otel.Meter(instrumentationName)
	a.transcriptsTotal, _ = meter.Int64Counter("scribe.transcripts.assembled",
		metric.WithDescription("Transcripts assembled"))
	a.segmentsTotal, _ = meter.Int64Counter("scribe.segments.processed",
		metric.WithDescription("Segments processed during assembly"))
	a.clampsTotal, _ = meter.Int64Counter("scribe.intervals.clamped",
		metric.WithDescription("Malformed intervals corrected by clamping"))

	return a
}

// Assemble builds one Transcript from a transcription result and an
// optional diarization result. diarizationRequested distinguishes "no
// diarization requested" from "requested but unavailable"; in the latter
// case every speaker is the unknown sentinel and the metadata says so.
//
// Assembly never fails: untrusted ML output is corrected, not rejected.
func (a *Assembler) Assemble(ctx context.Context, tr transcription.Result, dr *diarization.Result, diarizationRequested bool) *transcript.Transcript {
	ctx, span := a.tracer.Start(ctx, "assemble.Assemble")
	defer span.End()

	segments, clamped := a.convertSegments(tr.Segments)

	if !sort.SliceIsSorted(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	}) {
		a.log.Warn("out-of-order segments from transcription backend; reordering",
			logger.Fields(logger.FieldSegments, len(segments)))
		// Stable sort keeps input order for equal start times.
		sort.SliceStable(segments, func(i, j int) bool {
			return segments[i].Start < segments[j].Start
		})
	}
	for i := range segments {
		segments[i].ID = i
	}

	status := transcript.DiarizationNone
	method := ""
	if diarizationRequested {
		switch {
		case dr == nil || len(dr.Turns) == 0:
			status = transcript.DiarizationUnavailable
			if dr != nil {
				method = dr.Method
			}
			a.log.Warn("diarization requested but unavailable; all speakers unknown",
				logger.Fields(logger.FieldBackend, method))
		default:
			status = transcript.DiarizationApplied
			method = dr.Method
			turns := a.convertTurns(dr.Turns)
			opts := []align.Option{}
			if a.alignWords {
				opts = append(opts, align.WithWords())
			}
			align.Assign(segments, turns, opts...)
		}
	}

	out := &transcript.Transcript{
		ID:       uuid.NewString(),
		Language: tr.Language,
		FullText: fullText(tr, segments),
		Segments: segments,
	}
	out.Metadata = transcript.Metadata{
		CreatedAt:    time.Now().UTC(),
		SpeakerCount: len(out.Speakers()),
		Diarization:  status,
		Method:       method,
		Duration:     out.Duration(),
	}

	span.SetAttributes(
		attribute.Int("scribe.segments", len(segments)),
		attribute.Int("scribe.speakers", out.Metadata.SpeakerCount),
		attribute.String("scribe.diarization", string(status)),
	)
	a.transcriptsTotal.Add(ctx, 1)
	a.segmentsTotal.Add(ctx, int64(len(segments)))
	a.clampsTotal.Add(ctx, int64(clamped))

	a.log.Info("transcript assembled", logger.Fields(
		logger.FieldSegments, len(segments),
		logger.FieldSpeakers, out.Metadata.SpeakerCount,
		"diarization", string(status),
	))

	return out
}

// convertSegments maps raw transcription segments into the model, clamping
// malformed intervals and stray words. Returns the segments and the number
// of corrections applied.
func (a *Assembler) convertSegments(raw []transcription.Segment) ([]transcript.Segment, int) {
	segments := make([]transcript.Segment, 0, len(raw))
	clamped := 0

	for _, rs := range raw {
		iv, changed := transcript.Interval{Start: rs.Start, End: rs.End}.Clamp()
		if changed {
			clamped++
			a.log.Warn("clamped malformed segment interval",
				logger.Fields("start", rs.Start, "end", rs.End))
		}

		seg := transcript.Segment{
			Interval: iv,
			Text:     rs.Text,
			Speaker:  transcript.UnknownSpeaker,
		}

		if len(rs.Words) > 0 {
			seg.Words = make([]transcript.Word, len(rs.Words))
			for j, rw := range rs.Words {
				prob := transcript.NoProbability
				if rw.Probability != nil {
					prob = *rw.Probability
				}
				wiv, wchanged := transcript.Interval{Start: rw.Start, End: rw.End}.Clamp()
				if wchanged {
					clamped++
				}
				seg.Words[j] = transcript.Word{
					Interval:    wiv,
					Text:        rw.Text,
					Probability: prob,
				}
			}
			if n := seg.ClampWords(); n > 0 {
				clamped += n
				a.log.Warn("clamped words outside parent segment",
					logger.Fields("segment_start", seg.Start, "words", n))
			}
		}

		segments = append(segments, seg)
	}

	return segments, clamped
}

// convertTurns maps raw diarization turns into the model, clamping
// malformed intervals.
func (a *Assembler) convertTurns(raw []diarization.Turn) []transcript.Turn {
	turns := make([]transcript.Turn, 0, len(raw))
	for _, rt := range raw {
		iv, changed := transcript.Interval{Start: rt.Start, End: rt.End}.Clamp()
		if changed {
			a.log.Warn("clamped malformed diarization turn",
				logger.Fields("start", rt.Start, "end", rt.End, "speaker", rt.Speaker))
		}
		turns = append(turns, transcript.Turn{Interval: iv, Speaker: rt.Speaker})
	}
	return turns
}

// fullText prefers the backend's own full text and falls back to joining
// segment texts.
func fullText(tr transcription.Result, segments []transcript.Segment) string {
	if tr.Text != "" {
		return tr.Text
	}
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, " ")
}
