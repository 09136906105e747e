/*
Package dsl provides a staged builder for authoring dialogues in Go.

Nodes are named with any comparable type (strings, enums) and may refer to
targets that are defined later. Each node is accumulated on a NodeBuilder and
explicitly finalized with Done; Build then validates the whole graph and
reports every authoring mistake at once, using node names instead of internal
ids.

Example usage:

	b := dsl.New[string, string, string]()

	b.Linear("gate", "A gate blocks the road.", "yard", "Push it open")

	b.Node("yard", "The yard is quiet.").
		Choice("gate", "Go back").
		End("Sit down and rest", dsl.Then(rest)).
		Done()

	dialogue, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	runner, err := dialogue.Runner(values.New(), "gate")
*/
package dsl
