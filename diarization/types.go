package diarization

// Request holds parameters for a diarization call.
type Request struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// Result holds the outcome of a diarization call.
type Result struct {
	// Turns contains speaker-attributed time intervals. Turns for the
	// same speaker may be non-contiguous; turns across speakers should
	// not overlap each other.
	Turns []Turn `json:"turns"`
	// NumSpeakers is the number of distinct speakers detected.
	NumSpeakers int `json:"num_speakers"`
	// Method names the backend that produced this result.
	Method string `json:"method,omitempty"`
}

// Turn represents one speaker-attributed time interval.
type Turn struct {
	// Speaker is the identified speaker label, e.g. "SPEAKER_00".
	Speaker string `json:"speaker"`
	// Start is the turn start time in seconds.
	Start float64 `json:"start"`
	// End is the turn end time in seconds.
	End float64 `json:"end"`
}
