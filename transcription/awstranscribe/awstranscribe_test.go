package awstranscribe

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"

	"github.com/kbukum/scribe/storage/s3"
	"github.com/kbukum/scribe/transcription"
)

type fakeAPI struct {
	in  *transcribe.StartTranscriptionJobInput
	err error
}

func (f *fakeAPI) StartTranscriptionJob(_ context.Context, in *transcribe.StartTranscriptionJobInput, _ ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &transcribe.StartTranscriptionJobOutput{
		TranscriptionJob: &types.TranscriptionJob{
			TranscriptionJobName:   in.TranscriptionJobName,
			TranscriptionJobStatus: types.TranscriptionJobStatusInProgress,
		},
	}, nil
}

type memStorage struct {
	objects map[string]string
	err     error
}

func (m *memStorage) Upload(_ context.Context, path string, r io.Reader) error {
	if m.err != nil {
		return m.err
	}
	b, _ := io.ReadAll(r)
	if m.objects == nil {
		m.objects = map[string]string{}
	}
	m.objects[path] = string(b)
	return nil
}
func (m *memStorage) Delete(context.Context, string) error         { return nil }
func (m *memStorage) Exists(context.Context, string) (bool, error) { return false, nil }
func (m *memStorage) URL(_ context.Context, path string) (string, error) {
	return "s3://media/" + path, nil
}

func newTestProvider(api API, stage *memStorage) *Provider {
	p := New(api, stage, Config{Config: s3.Config{Bucket: "media"}}, transcription.DefaultOptions())
	p.newID = func() string { return "0001" }
	return p
}

func TestTranscribe_RemoteURI(t *testing.T) {
	api := &fakeAPI{}
	stage := &memStorage{}
	p := newTestProvider(api, stage)

	resp, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "s3://in/talk.wav"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Job == nil || resp.Job.Name != "scribe-0001" || resp.Job.Status != "IN_PROGRESS" {
		t.Fatalf("unexpected job %+v", resp.Job)
	}
	if len(stage.objects) != 0 {
		t.Error("remote URI must not be staged")
	}

	in := api.in
	if aws.ToString(in.Media.MediaFileUri) != "s3://in/talk.wav" {
		t.Errorf("media uri = %s", aws.ToString(in.Media.MediaFileUri))
	}
	if in.MediaFormat != types.MediaFormatWav {
		t.Errorf("media format = %s", in.MediaFormat)
	}
	if in.LanguageCode != types.LanguageCodeEnUs {
		t.Errorf("language = %s", in.LanguageCode)
	}
	if aws.ToString(in.OutputBucketName) != "media" {
		t.Errorf("output bucket = %s", aws.ToString(in.OutputBucketName))
	}
	if in.Settings == nil || !aws.ToBool(in.Settings.ShowSpeakerLabels) || aws.ToInt32(in.Settings.MaxSpeakerLabels) != 3 {
		t.Errorf("unexpected speaker settings %+v", in.Settings)
	}
}

func TestTranscribe_StagesLocalFile(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "1700000000-memo.webm")
	if err := os.WriteFile(local, []byte("webm-bytes"), 0o600); err != nil {
		t.Fatal(err)
	}
	api := &fakeAPI{}
	stage := &memStorage{}
	p := newTestProvider(api, stage)

	resp, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: local, SpeakerLabels: 1})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if stage.objects["recordings/1700000000-memo.webm"] != "webm-bytes" {
		t.Errorf("file not staged: %v", stage.objects)
	}
	if resp.Job.MediaURI != "s3://media/recordings/1700000000-memo.webm" {
		t.Errorf("media uri = %s", resp.Job.MediaURI)
	}
	if api.in.MediaFormat != types.MediaFormatWebm {
		t.Errorf("media format = %s", api.in.MediaFormat)
	}
	if api.in.Settings != nil {
		t.Error("speaker labels must be off for a single speaker")
	}
}

func TestTranscribe_StartJobFails(t *testing.T) {
	p := newTestProvider(&fakeAPI{err: errors.New("AccessDeniedException")}, &memStorage{})
	_, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "s3://in/a.mp3"})
	if !errors.Is(err, transcription.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestTranscribe_StagingFails(t *testing.T) {
	local := filepath.Join(t.TempDir(), "a.mp3")
	if err := os.WriteFile(local, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	api := &fakeAPI{}
	p := newTestProvider(api, &memStorage{err: errors.New("NoSuchBucket")})

	_, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: local})
	if !errors.Is(err, transcription.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if api.in != nil {
		t.Error("job must not start when staging fails")
	}
}

func TestTranscribe_MissingLocalFile(t *testing.T) {
	p := newTestProvider(&fakeAPI{}, &memStorage{})
	if _, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/nope/a.mp3"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMediaFormat(t *testing.T) {
	tests := map[string]string{
		"a.wav":                     "wav",
		"A.MP3":                     "mp3",
		"https://x/y/talk.flac?v=1": "flac",
		"noext":                     "mp3",
		"clip.xyz":                  "mp3",
	}
	for in, want := range tests {
		if got := mediaFormat(in, "mp3"); got != want {
			t.Errorf("mediaFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfig(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.JobPrefix != DefaultJobPrefix || cfg.MediaFormat != DefaultMediaFormat || cfg.Region != s3.DefaultRegion {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing bucket to fail")
	}
	cfg.Bucket = "media"
	cfg.MediaFormat = "aiff"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unsupported format to fail")
	}
}

func TestIsAvailable(t *testing.T) {
	p := newTestProvider(&fakeAPI{}, &memStorage{})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected provider to be available")
	}
	if p.Name() != ProviderName {
		t.Errorf("name = %q", p.Name())
	}
}
