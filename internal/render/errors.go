package render

import "github.com/pkg/errors"

// ErrQuit is returned from Game.Update to end the loop normally.
var ErrQuit = errors.New("quit requested")
