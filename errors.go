package fresco

import "errors"

// ErrNotAuthenticated is returned by operations that need a signed-in user when there is none.
var ErrNotAuthenticated = errors.New("User not authenticated")
