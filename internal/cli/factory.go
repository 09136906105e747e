package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/pkg/adventure"
	"github.com/aretw0/parley/pkg/domain"
	"github.com/aretw0/parley/pkg/dsl"
	"github.com/aretw0/parley/pkg/session"
	"github.com/aretw0/parley/pkg/story"
)

// CavernTitle is the title of the built-in adventure.
const CavernTitle = "The Cavern"

// entryNames are tried, in order, when a story path is a directory.
var entryNames = []string{"story.yaml", "story.yml", "main.yaml", "main.yml"}

// resolveStory turns a directory into the story file it holds.
// Besides entryNames, a file named after the directory is accepted.
func resolveStory(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}

	candidates := append([]string(nil), entryNames...)
	base := filepath.Base(filepath.Clean(path))
	candidates = append(candidates, base+".yaml", base+".yml")
	for _, name := range candidates {
		p := filepath.Join(path, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no story file in %s (tried %v)", path, candidates)
}

// loadDocument reads the story at path, resolving directories.
func loadDocument(path string) (*story.Document, error) {
	if path == "" {
		return nil, errors.New("a story file is required")
	}
	file, err := resolveStory(path)
	if err != nil {
		return nil, err
	}
	return story.Load(file)
}

// loaded is a ready dialogue plus what to print once it ends.
type loaded struct {
	play    *session.Play
	summary func() string
}

// createPlay builds the dialogue selected by opts with standard CLI conventions.
func createPlay(opts RunOptions, logger *slog.Logger, hooks ...session.HookFunc) (*loaded, error) {
	if opts.StoryPath == "" {
		return createCavern(opts, logger, hooks)
	}

	doc, err := loadDocument(opts.StoryPath)
	if err != nil {
		return nil, err
	}
	s, err := doc.Compile(dsl.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", opts.StoryPath, err)
	}

	start := s.StartID()
	if opts.Start != "" {
		start = opts.Start
	}
	r, err := s.Dialogue().Runner(s.Values(), start, runnerOptions(logger, s.Label, hooks)...)
	if err != nil {
		return nil, err
	}
	return &loaded{
		play: &session.Play{Title: s.Title, Runner: r, Label: s.Label, Values: s.Snapshot},
	}, nil
}

func createCavern(opts RunOptions, logger *slog.Logger, hooks []session.HookFunc) (*loaded, error) {
	start := adventure.Intro
	if opts.Start != "" {
		var err error
		if start, err = adventure.ParseScene(opts.Start); err != nil {
			return nil, err
		}
	}

	p := adventure.NewDefaultPlayer()
	d, err := adventure.Cavern(p, dsl.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("build cavern: %w", err)
	}
	r, err := d.Runner(p.Values(), start, runnerOptions(logger, d.Label, hooks)...)
	if err != nil {
		return nil, err
	}
	return &loaded{
		play:    &session.Play{Title: CavernTitle, Runner: r, Label: d.Label, Values: p.Snapshot},
		summary: p.Summary,
	}, nil
}

func runnerOptions(logger *slog.Logger, label func(domain.NodeID) string, hooks []session.HookFunc) []parley.Option {
	return []parley.Option{
		parley.WithLogger(logger),
		parley.WithLifecycleHooks(session.BindHooks(label, hooks...)),
	}
}
