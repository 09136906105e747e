/*
Package parley is a branching dialogue engine.

A dialogue is a closed graph of nodes. Each node carries display content and
one or more choices; a choice leads to another node or ends the dialogue, may
be guarded by a Condition and may run an Action against a shared value
registry. The Runner is the cursor that walks the graph in response to the
choices a caller selects.

# Concept

Authoring and traversal are separate. Authoring code (the pkg/dsl builder, or
the YAML loader in pkg/story) registers node names in a pkg/ids registry, builds
the nodes and hands them to graph.Build, which rejects duplicate ids and
dangling targets up front. A Runner is then bound to the finished graph, a
values.Registry and a start node.

	graph ──▶ Runner ◀── values.Registry
	            │
	   Current / AvailableChoices / Choose / Reset

# Usage

	b := dsl.New[string, string, string]()
	b.Linear("a1", "Welcome.", "a2", "Continue")
	b.Node("a2", "Pick a side.").
		Choice("b1", "Left").
		Choice("c1", "Right").
		Done()
	b.Terminal("b1", "You went left.", "Finish")
	b.Terminal("c1", "You went right.", "Finish")

	runner, err := b.BuildRunner(values.New(), "a1")
	if err != nil {
		log.Fatal(err)
	}

	for !runner.IsCompleted() {
		node, _ := runner.Current()
		fmt.Println(node.Content())
		choices := runner.AvailableChoices()
		if _, err := runner.Choose(choices[0]); err != nil {
			log.Fatal(err)
		}
	}

A Runner is not safe for concurrent use. Independent runners may share a Graph
freely; a shared values.Registry is internally synchronized.
*/
package parley
