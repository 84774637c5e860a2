package router

import "net/http"

// Middleware decorates an http.Handler with cross-cutting behavior.
type Middleware func(next http.Handler) http.Handler

// Chain wraps h with the given middlewares so that the first one listed
// becomes the outermost handler.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
