package server

import "errors"

var ErrStartupHook = errors.New("server: startup hook failed")
