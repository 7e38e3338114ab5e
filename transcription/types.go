package transcription

import "path/filepath"

// Request holds parameters for a transcription call. Zero-valued fields fall
// back to the provider's Options.
type Request struct {
	// AudioPath is a local file path or, for batch backends, a remote URI.
	AudioPath string `json:"audio_path"`
	// Language is a BCP-47 language code (e.g. "en-US").
	Language string `json:"language,omitempty"`
	// SampleRateHertz is the sample rate of the audio.
	SampleRateHertz int32 `json:"sample_rate_hertz,omitempty"`
	// EnablePunctuation asks the backend to insert punctuation.
	EnablePunctuation *bool `json:"enable_punctuation,omitempty"`
	// SpeakerLabels is the maximum number of speakers to label; 0 or 1 disables it.
	SpeakerLabels int `json:"speaker_labels,omitempty"`
}

// Resolve returns a copy of r with empty fields filled from opts.
func (r Request) Resolve(opts Options) Request {
	if r.Language == "" {
		r.Language = opts.LanguageCode
	}
	if r.SampleRateHertz == 0 {
		r.SampleRateHertz = opts.SampleRate
	}
	if r.EnablePunctuation == nil {
		p := opts.EnablePunctuation
		r.EnablePunctuation = &p
	}
	if r.SpeakerLabels == 0 {
		r.SpeakerLabels = opts.SpeakerLabels
	}
	return r
}

// Punctuation reports the resolved punctuation flag.
func (r Request) Punctuation() bool {
	return r.EnablePunctuation != nil && *r.EnablePunctuation
}

// FileName returns the base name of AudioPath.
func (r Request) FileName() string {
	return filepath.Base(r.AudioPath)
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains per-result or per-speaker transcript pieces, if any.
	Segments []Segment `json:"segments,omitempty"`
	// Language is the detected or requested language.
	Language string `json:"language,omitempty"`
	// Job is set by batch backends that only start a job.
	Job *Job `json:"job,omitempty"`
}

// Segment represents one portion of a transcript.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
	// Speaker is the identified speaker label, if available.
	Speaker string `json:"speaker,omitempty"`
	// Confidence is the backend's confidence for this segment.
	Confidence float32 `json:"confidence,omitempty"`
}

// Job describes a started batch transcription job.
type Job struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	MediaURI string `json:"media_uri,omitempty"`
}
