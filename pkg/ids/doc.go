// Package ids translates caller-facing node identifiers into dense internal ids.
//
// Any comparable type works as an external id: strings, enums, structs of
// comparable fields. Internal ids start at 0, follow registration order and are
// never reused. Registration is safe for concurrent authoring code.
package ids
