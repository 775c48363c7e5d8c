package cue

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// ErrUnsupported is returned for file extensions no decoder handles.
var ErrUnsupported = errors.New("unsupported cue format")

// Load decodes the file at path into a clip at the output format. The format
// is picked by extension.
func Load(path string) (*Clip, error) {
	if !supported(path) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupported, filepath.Ext(path), SupportedExtsList())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var clip *Clip
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		clip, err = decodeMP3(f)
	case ".wav":
		clip, err = decodeWAV(f)
	case ".flac":
		clip, err = decodeFLAC(f)
	case ".ogg":
		clip, err = decodeOGG(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	clip.Title = Title(path)
	return clip.Convert(SampleRate, ChannelCount), nil
}

// Title reads the ID3v2 title of path, falling back to the file name.
func Title(path string) string {
	if tag, err := id3v2.Open(path, id3v2.Options{Parse: true}); err == nil {
		defer tag.Close()
		if title := strings.TrimSpace(tag.Title()); title != "" {
			return title
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// go-mp3 always yields 16-bit stereo.
func decodeMP3(r io.Reader) (*Clip, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	return &Clip{SampleRate: dec.SampleRate(), Channels: 2, PCM: pcm}, nil
}

func decodeWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}
	depth := int(dec.BitDepth)
	pcm := make([]byte, len(buf.Data)*bytesPerSamp)
	for i, s := range buf.Data {
		if depth == 8 {
			// 8-bit WAV data is unsigned.
			s -= 128
		}
		binary.LittleEndian.PutUint16(pcm[i*bytesPerSamp:], uint16(to16(s, depth)))
	}
	return &Clip{SampleRate: int(dec.SampleRate), Channels: int(dec.NumChans), PCM: pcm}, nil
}

func decodeFLAC(r io.Reader) (*Clip, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	depth := int(stream.Info.BitsPerSample)
	var pcm []byte
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		n := len(frame.Subframes[0].Samples)
		chunk := make([]byte, n*channels*bytesPerSamp)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				s := to16(int(frame.Subframes[ch].Samples[i]), depth)
				binary.LittleEndian.PutUint16(chunk[(i*channels+ch)*bytesPerSamp:], uint16(s))
			}
		}
		pcm = append(pcm, chunk...)
	}
	return &Clip{SampleRate: int(stream.Info.SampleRate), Channels: channels, PCM: pcm}, nil
}

func decodeOGG(r io.Reader) (*Clip, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, err
	}
	pcm := make([]byte, len(samples)*bytesPerSamp)
	for i, s := range samples {
		putSample(pcm, i, float64(s)*32767)
	}
	return &Clip{SampleRate: format.SampleRate, Channels: format.Channels, PCM: pcm}, nil
}

// to16 rescales a signed sample of depth bits to 16 bits.
func to16(s, depth int) int16 {
	switch {
	case depth > 16:
		s >>= depth - 16
	case depth < 16 && depth > 0:
		s <<= 16 - depth
	}
	if s > 32767 {
		s = 32767
	} else if s < -32768 {
		s = -32768
	}
	return int16(s)
}
