package core

import "errors"

// ErrInvalidParameter reports a synthesis or processing parameter outside its
// documented range. Callers branch on it with errors.Is; the wrapping error
// names the violated constraint.
var ErrInvalidParameter = errors.New("invalid parameter")
