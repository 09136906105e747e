/*
Package story loads dialogues authored as YAML.

	title: The Crossroads
	start: a1
	values:
	  gold: 100
	  lantern: false
	nodes:
	  - id: a1
	    text: Welcome, traveler.
	    choices:
	      - text: Buy a lantern
	        to: a2
	        when: { min: { gold: 10 }, not_flags: [lantern] }
	        do: { add: { gold: -10 }, set: { lantern: true } }
	      - text: Leave

A choice without `to` ends the story. Values are ints or bools; `min` and
`add` refer to ints, `flags`, `not_flags` and `set` refer to bools.
*/
package story
