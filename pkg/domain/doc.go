/*
Package domain contains the value objects of the Parley dialogue engine.

It defines the entities that make up an authored dialogue graph and the contracts
for the logic attached to them. Everything here is immutable after construction
and free of I/O.

# Key Entities

  - NodeID: compact internal identifier assigned by the id registry.
  - Target: where a Choice leads; either another node or the end of the dialogue.
  - Choice: a selectable option, optionally gated by a Condition and carrying an Action.
  - Node: a step of the dialogue with content and a non-empty, ordered list of choices.
  - Condition / Action: predicates and effects evaluated against a values.Registry.
  - LifecycleHooks: observability callbacks fired by the runner.
*/
package domain
