package whispercpp

import "testing"

func TestWeightsPath(t *testing.T) {
	cfg := Config{Model: "medium", CacheDir: "/opt/ai/models/speech/whisper"}
	want := "/opt/ai/models/speech/whisper/ggml-medium.bin"
	if got := cfg.WeightsPath(); got != want {
		t.Errorf("WeightsPath() = %q, want %q", got, want)
	}
}
