package cue

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Chime partials: a fifth over the root with a quiet octave on top.
var chimePartials = []struct {
	hz   float64
	gain float64
}{
	{880, 0.5},
	{1318.5, 0.3},
	{1760, 0.15},
}

// Chime synthesizes a decaying bell of durationMs at the output format.
func Chime(durationMs float64) *Clip {
	frames := int(float64(SampleRate) * durationMs / 1000)
	if frames < 0 {
		frames = 0
	}
	pcm := make([]byte, frames*ChannelCount*bytesPerSamp)
	attack := float64(SampleRate) * 0.005
	decay := float64(frames) / 5
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		v := 0.0
		for _, p := range chimePartials {
			v += p.gain * math.Sin(2*math.Pi*p.hz*t)
		}
		env := math.Exp(-float64(i) / decay)
		if fi := float64(i); fi < attack {
			env *= fi / attack
		}
		s := v * env * 0.8 * math.MaxInt16
		for ch := 0; ch < ChannelCount; ch++ {
			putSample(pcm, i*ChannelCount+ch, s)
		}
	}
	return &Clip{Title: "chime", SampleRate: SampleRate, Channels: ChannelCount, PCM: pcm}
}

// WriteWAV encodes clip as a 16-bit PCM WAV file.
func WriteWAV(w io.WriteSeeker, clip *Clip) error {
	enc := wav.NewEncoder(w, clip.SampleRate, 16, clip.Channels, 1)
	data := make([]int, clip.Frames()*clip.Channels)
	for i := range data {
		data[i] = int(clip.Sample(i/clip.Channels, i%clip.Channels))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: clip.Channels, SampleRate: clip.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing WAV: %w", err)
	}
	return nil
}
