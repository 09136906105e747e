// Package cli implements the commands of the parley binary.
package cli
