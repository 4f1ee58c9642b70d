package transcription

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the expected language of the audio (e.g. "en");
	// empty requests auto-detection.
	Language string `json:"language,omitempty"`
	// Model is the transcription model size to use (e.g. "base").
	Model string `json:"model,omitempty"`
	// WordTimestamps requests word-level timestamps when the backend
	// supports them.
	WordTimestamps bool `json:"word_timestamps,omitempty"`
}

// Result holds the outcome of a transcription call.
type Result struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
	// LanguageProbability is the backend's confidence in the detected
	// language, when reported.
	LanguageProbability float64 `json:"language_probability,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
	// Words holds word-level timestamps, when requested and available.
	Words []Word `json:"words,omitempty"`
}

// Word is one word with its own timestamps.
type Word struct {
	// Start is the word start time in seconds.
	Start float64 `json:"start"`
	// End is the word end time in seconds.
	End float64 `json:"end"`
	// Text is the word text.
	Text string `json:"text"`
	// Probability is the word confidence in [0, 1]; nil when the
	// backend did not report one.
	Probability *float64 `json:"probability,omitempty"`
}
