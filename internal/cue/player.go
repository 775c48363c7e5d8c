package cue

import (
	"bytes"
	"errors"
	"sync"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

// maxVoices bounds how many overlapping cues can sound at once.
const maxVoices = 4

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: ChannelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return otoCtx, otoInitErr
}

// Player plays one clip on demand, overlapping up to a few voices. It is
// driven from the UI loop.
type Player struct {
	ctx    *oto.Context
	clip   *Clip
	volume float64
	voices []*oto.Player
	log    *zap.Logger
}

// NewPlayer opens the audio device for clip.
func NewPlayer(clip *Clip, logger *zap.Logger) (*Player, error) {
	if clip == nil {
		return nil, errors.New("cue: nil clip")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, err := initOto()
	if err != nil {
		return nil, err
	}
	clip = clip.Convert(SampleRate, ChannelCount)
	logger.Named("cue").Info("cue ready",
		zap.String("title", clip.Title),
		zap.Duration("length", clip.Duration()),
	)
	return &Player{ctx: ctx, clip: clip, volume: 0.6, log: logger.Named("cue")}, nil
}

// Title names the loaded clip.
func (p *Player) Title() string { return p.clip.Title }

// Play starts the clip. Finished voices are reclaimed first; when every voice
// is busy the cue is dropped.
func (p *Player) Play() {
	live := p.voices[:0]
	for _, v := range p.voices {
		if v.IsPlaying() {
			live = append(live, v)
			continue
		}
		_ = v.Close()
	}
	p.voices = live
	if len(p.voices) >= maxVoices {
		p.log.Debug("cue dropped", zap.Int("voices", len(p.voices)))
		return
	}
	v := p.ctx.NewPlayer(bytes.NewReader(p.clip.PCM))
	v.SetVolume(p.volume)
	v.Play()
	p.voices = append(p.voices, v)
}

// Close stops every voice.
func (p *Player) Close() error {
	var errs []error
	for _, v := range p.voices {
		if err := v.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.voices = nil
	return errors.Join(errs...)
}
