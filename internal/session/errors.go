package session

import "errors"

// Precondition failures. Operations returning one of these leave the
// session untouched; hosts surface them as a prompt, not a crash.
var (
	ErrEmpty           = errors.New("session has no chapters")
	ErrNoCursor        = errors.New("no cursor position staged; click inside the chapter text first")
	ErrNoSplitMarker   = errors.New("selected chapter has no split marker")
	ErrLastChapter     = errors.New("cannot combine the last chapter with a following one")
	ErrIndexOutOfRange = errors.New("chapter index out of range")
	ErrNothingToUndo   = errors.New("nothing to undo")
)

var preconditions = []error{
	ErrEmpty,
	ErrNoCursor,
	ErrNoSplitMarker,
	ErrLastChapter,
	ErrIndexOutOfRange,
	ErrNothingToUndo,
}

// IsPrecondition reports whether err is one of the precondition failures
// above, possibly wrapped.
func IsPrecondition(err error) bool {
	for _, p := range preconditions {
		if errors.Is(err, p) {
			return true
		}
	}
	return false
}
