package cue

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChimeShape(t *testing.T) {
	c := Chime(250)
	if c.SampleRate != SampleRate || c.Channels != ChannelCount {
		t.Fatalf("expected output format, got %d Hz x %d", c.SampleRate, c.Channels)
	}
	if got, want := c.Duration(), 250*time.Millisecond; got < want-time.Millisecond || got > want+time.Millisecond {
		t.Fatalf("expected ~250ms, got %v", got)
	}
	if c.Sample(0, 0) != 0 {
		t.Fatalf("expected silent first sample from the attack ramp, got %d", c.Sample(0, 0))
	}
	if c.Peak() < 8000 {
		t.Fatalf("expected audible chime, peak %d", c.Peak())
	}

	head := &Clip{SampleRate: c.SampleRate, Channels: c.Channels, PCM: c.PCM[:len(c.PCM)/4]}
	tail := &Clip{SampleRate: c.SampleRate, Channels: c.Channels, PCM: c.PCM[3*len(c.PCM)/4:]}
	if tail.Peak() >= head.Peak() {
		t.Fatalf("expected decay, head peak %d tail peak %d", head.Peak(), tail.Peak())
	}
}

func TestWAVRoundTripThroughLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	src := Chime(100)
	if err := WriteWAV(f, src); err != nil {
		t.Fatalf("WriteWAV returned error: %v", err)
	}
	f.Close()

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Title != "landing" {
		t.Fatalf("expected title from file name, got %q", got.Title)
	}
	if got.Frames() != src.Frames() {
		t.Fatalf("expected %d frames, got %d", src.Frames(), got.Frames())
	}
	for _, i := range []int{0, 100, 2000, src.Frames() - 1} {
		if got.Sample(i, 1) != src.Sample(i, 1) {
			t.Fatalf("frame %d: expected %d, got %d", i, src.Sample(i, 1), got.Sample(i, 1))
		}
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.aiff")
	if err := os.WriteFile(path, []byte("FORM"), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestConvertMonoToStereoAndRate(t *testing.T) {
	mono := &Clip{SampleRate: 22050, Channels: 1, PCM: make([]byte, 100*bytesPerSamp)}
	for i := 0; i < 100; i++ {
		putSample(mono.PCM, i, float64(i*100))
	}
	out := mono.Convert(44100, 2)
	if out.Channels != 2 || out.SampleRate != 44100 {
		t.Fatalf("expected 44100 Hz stereo, got %d x %d", out.SampleRate, out.Channels)
	}
	if out.Frames() != 200 {
		t.Fatalf("expected doubled frame count, got %d", out.Frames())
	}
	if out.Sample(0, 0) != 0 || out.Sample(out.Frames()-1, 1) != 9900 {
		t.Fatalf("expected endpoints preserved, got %d and %d", out.Sample(0, 0), out.Sample(out.Frames()-1, 1))
	}
	if out.Sample(50, 0) != out.Sample(50, 1) {
		t.Fatal("expected mono duplicated across channels")
	}
	if same := mono.Convert(22050, 1); same != mono {
		t.Fatal("expected no copy when the format already matches")
	}
}

func TestTo16(t *testing.T) {
	cases := []struct {
		in, depth int
		want      int16
	}{
		{1 << 23, 24, 32767},
		{-(1 << 23), 24, -32768},
		{100, 16, 100},
		{-64, 8, -16384},
	}
	for _, tc := range cases {
		if got := to16(tc.in, tc.depth); got != tc.want {
			t.Fatalf("to16(%d, %d): expected %d, got %d", tc.in, tc.depth, tc.want, got)
		}
	}
}

func TestIsSupportedExt(t *testing.T) {
	for _, ext := range []string{".mp3", ".WAV", ".flac", ".ogg"} {
		if !IsSupportedExt(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	for _, ext := range []string{".aac", ".m4a", ""} {
		if IsSupportedExt(ext) {
			t.Fatalf("expected %q to be rejected", ext)
		}
	}
}
