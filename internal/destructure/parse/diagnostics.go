package parse

import "errors"

// Sentinel diagnostics. Every generation-time error wraps one of these so
// callers can classify failures with errors.Is. They are always reported
// through codefmt.Errorf, which attaches the annotation site.
var (
	// ErrUnsupportedShape is reported when a derive directive is attached to
	// anything but a struct type with named fields.
	ErrUnsupportedShape = errors.New("unsupported shape")

	// ErrMissingDestructure is reported when Mutation or Ref is requested
	// without Destructure. Both are expressed in terms of the companion
	// shape, so they cannot stand alone.
	ErrMissingDestructure = errors.New("missing Destructure capability")

	// ErrNamingCollision is reported when two fields export to the same
	// companion field name, or when a derived type name is already taken in
	// the package scope.
	ErrNamingCollision = errors.New("naming collision")

	// ErrUnknownCapability is reported for a capability name the derive
	// directive does not recognize.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrUnknownDirective is reported for a destructure directive other than
	// derive.
	ErrUnknownDirective = errors.New("unknown directive")
)
