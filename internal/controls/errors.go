package controls

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidControl marks structural defects in a control descriptor
	// itself (missing name or provider).
	ErrInvalidControl = errors.New("invalid control")

	// ErrInvalidActivity marks descriptors that are structurally complete but
	// whose module path is empty or does not resolve.
	ErrInvalidActivity = errors.New("invalid activity")
)
