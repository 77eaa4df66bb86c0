package transcription

// Options holds the decode parameters for a transcription call.
type Options struct {
	// Language is the expected language of the audio (e.g. "en"). Empty
	// means auto-detect.
	Language string `json:"language,omitempty"`
	// Prompt is the initial prompt fed to the decoder.
	Prompt string `json:"prompt,omitempty"`
	// Temperature is the sampling temperature, 0 for greedy decoding.
	Temperature float64 `json:"temperature"`
	// ResponseFormat is the desired output rendering ("json", "text",
	// "verbose_json"). Only the response layer interprets it.
	ResponseFormat string `json:"response_format,omitempty"`
}

// Result holds the output of a transcription call.
type Result struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments,omitempty"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
	// Duration is the audio duration in seconds, if known.
	Duration float64 `json:"duration,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
}
