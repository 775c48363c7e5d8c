// Package cue provides the landing sound: a synthesized chime or a short
// audio file, decoded to PCM and played through oto.
package cue

import (
	"encoding/binary"
	"math"
	"time"
)

// Output format of every clip handed to the player.
const (
	SampleRate   = 44100
	ChannelCount = 2
	bytesPerSamp = 2
)

// Clip is interleaved signed 16-bit little-endian PCM.
type Clip struct {
	Title      string
	SampleRate int
	Channels   int
	PCM        []byte
}

// Frames is the number of sample frames.
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.PCM) / (c.Channels * bytesPerSamp)
}

// Duration is the playback length.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(c.Frames()) / float64(c.SampleRate) * float64(time.Second))
}

// Sample returns frame i of channel ch.
func (c *Clip) Sample(i, ch int) int16 {
	off := (i*c.Channels + ch) * bytesPerSamp
	return int16(binary.LittleEndian.Uint16(c.PCM[off:]))
}

// Peak returns the largest absolute sample.
func (c *Clip) Peak() int {
	peak := 0
	for off := 0; off+1 < len(c.PCM); off += bytesPerSamp {
		s := int(int16(binary.LittleEndian.Uint16(c.PCM[off:])))
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// Convert returns the clip at rate and channels, using linear interpolation
// for the rate and averaging or duplicating for the channel count.
func (c *Clip) Convert(rate, channels int) *Clip {
	if c.SampleRate == rate && c.Channels == channels {
		return c
	}
	in := c.Frames()
	out := in
	if c.SampleRate != rate && c.SampleRate > 0 {
		out = int(math.Round(float64(in) * float64(rate) / float64(c.SampleRate)))
	}
	pcm := make([]byte, out*channels*bytesPerSamp)
	ratio := 1.0
	if out > 1 && in > 1 {
		ratio = float64(in-1) / float64(out-1)
	}
	for i := 0; i < out; i++ {
		pos := float64(i) * ratio
		i0 := int(pos)
		i1 := min(i0+1, in-1)
		frac := pos - float64(i0)
		for ch := 0; ch < channels; ch++ {
			v := (1-frac)*c.mixed(i0, ch, channels) + frac*c.mixed(i1, ch, channels)
			putSample(pcm, i*channels+ch, v)
		}
	}
	return &Clip{Title: c.Title, SampleRate: rate, Channels: channels, PCM: pcm}
}

// mixed reads frame i for output channel ch of an outChannels layout.
func (c *Clip) mixed(i, ch, outChannels int) float64 {
	if outChannels < c.Channels && outChannels == 1 {
		sum := 0.0
		for k := 0; k < c.Channels; k++ {
			sum += float64(c.Sample(i, k))
		}
		return sum / float64(c.Channels)
	}
	return float64(c.Sample(i, ch%c.Channels))
}

func putSample(pcm []byte, idx int, v float64) {
	if v > math.MaxInt16 {
		v = math.MaxInt16
	} else if v < math.MinInt16 {
		v = math.MinInt16
	}
	binary.LittleEndian.PutUint16(pcm[idx*bytesPerSamp:], uint16(int16(math.Round(v))))
}
