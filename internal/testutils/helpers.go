package testutils

import (
	"testing"

	"github.com/aretw0/parley/pkg/session"
	"github.com/aretw0/parley/pkg/story"
	"github.com/stretchr/testify/require"
)

// CrossroadsYAML is a four node story. The right path needs a lantern, which
// can be bought once at the crossroads for 60 of the 100 gold.
const CrossroadsYAML = `
title: The Crossroads
start: a1
values:
  gold: 100
  lantern: false
nodes:
  - id: a1
    text: Welcome, traveler.
    choices:
      - text: Continue
        to: a2
  - id: a2
    text: You arrive at the crossroads.
    choices:
      - text: Take the left path.
        to: b1
      - text: Take the right path.
        to: c1
        when: { flags: [lantern] }
      - text: Buy a lantern.
        to: a2
        when: { min: { gold: 60 }, not_flags: [lantern] }
        do: { add: { gold: -60 }, set: { lantern: true } }
  - id: b1
    text: You encounter a peaceful village.
    choices:
      - text: Rest.
  - id: c1
    text: You walk into a dark forest.
    choices:
      - text: Keep walking.
`

// Crossroads parses CrossroadsYAML, failing the test immediately on error.
func Crossroads(t *testing.T) *story.Document {
	t.Helper()
	doc, err := story.Parse([]byte(CrossroadsYAML))
	require.NoError(t, err, "Failed to parse crossroads story")
	return doc
}

// CrossroadsPlay starts a fresh session of the crossroads story.
func CrossroadsPlay(t *testing.T, hooks ...session.HookFunc) *session.Play {
	t.Helper()
	play, err := session.FromDocument(Crossroads(t), hooks...)()
	require.NoError(t, err, "Failed to start crossroads session")
	return play
}
