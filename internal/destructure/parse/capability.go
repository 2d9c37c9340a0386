package parse

import "strings"

// Capability is a generated capability requested by a derive directive.
type Capability uint8

const (
	// Destructure emits the companion type with IntoDestruct and Freeze.
	Destructure Capability = 1 << iota

	// Mutation emits Reconstruct, TryReconstruct, the pointer view, and
	// Substitute. Requires Destructure.
	Mutation

	// Ref emits the read-only pointer view with AsDestruct. Requires
	// Destructure.
	Ref
)

func (c Capability) String() string {
	switch c {
	case Destructure:
		return "Destructure"
	case Mutation:
		return "Mutation"
	case Ref:
		return "Ref"
	}
	return "Unknown"
}

// CapSet is a set of requested capabilities.
type CapSet uint8

func (s CapSet) Has(c Capability) bool { return s&CapSet(c) != 0 }

func (s CapSet) Add(c Capability) CapSet { return s | CapSet(c) }

func (s CapSet) String() string {
	var names []string
	for _, c := range []Capability{Destructure, Mutation, Ref} {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, ",")
}

// parseCapability resolves a capability name from a derive directive.
func parseCapability(name string) (Capability, bool) {
	switch name {
	case "Destructure":
		return Destructure, true
	case "Mutation":
		return Mutation, true
	case "Ref":
		return Ref, true
	}
	return 0, false
}
