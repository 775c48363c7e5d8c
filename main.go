package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/shadows/internal/config"
	"github.com/olivier-w/shadows/internal/cue"
	"github.com/olivier-w/shadows/internal/deck"
	"github.com/olivier-w/shadows/internal/logging"
	"github.com/olivier-w/shadows/internal/stage"
	"github.com/olivier-w/shadows/internal/ui"
	"go.uber.org/zap"
)

// chimeMs is the length of the synthesized landing cue.
const chimeMs = 450

func main() {
	configPath := flag.String("config", "", "tuning file (YAML)")
	sceneName := flag.String("scene", "", "open a scene directly: cards or flame")
	exportCue := flag.String("export-cue", "", "write the synthesized landing cue to a WAV file and exit")
	flag.Parse()

	tuning, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *exportCue != "" {
		if err := writeCue(*exportCue); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, err := logging.New(tuning.LogFile, tuning.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	seed := tuning.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", zap.Int64("seed", seed), zap.String("config", *configPath))
	rng := rand.New(rand.NewSource(seed))

	var sounder ui.Sounder
	if tuning.Sound {
		p, err := openCue(tuning.CuePath, logger)
		if err != nil {
			logger.Warn("landing cue disabled", zap.Error(err))
		} else {
			defer p.Close()
			sounder = p
		}
	}

	m := newStartupModel(buildScenes(tuning, rng, logger, sounder))
	if *sceneName != "" {
		m, _, err = m.openScene(*sceneName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildScenes returns the menu rows. Each pick builds a fresh scene.
func buildScenes(t config.Tuning, rng *rand.Rand, logger *zap.Logger, sounder ui.Sounder) []sceneEntry {
	frame := time.Duration(t.FrameMs * float64(time.Millisecond))
	return []sceneEntry{
		{
			name: "cards",
			hint: fmt.Sprintf("%d cards over %d stacks", t.Cards, t.Stacks),
			open: func() (tea.Model, error) {
				return ui.NewCards(stage.New(t.StageOptions(), rng, logger), frame, sounder), nil
			},
		},
		{
			name: "flame",
			hint: "phoenix emitter",
			open: func() (tea.Model, error) {
				f := stage.NewFlame(t.FlameConfig(), deck.Viewport{}, rng, logger)
				return ui.NewFlame(f, frame), nil
			},
		},
	}
}

func openCue(path string, logger *zap.Logger) (*cue.Player, error) {
	clip := cue.Chime(chimeMs)
	if path != "" {
		loaded, err := cue.Load(path)
		if err != nil {
			return nil, err
		}
		clip = loaded
	}
	return cue.NewPlayer(clip, logger)
}

func writeCue(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cue.WriteWAV(f, cue.Chime(chimeMs)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
