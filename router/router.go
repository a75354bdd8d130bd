package router

import "net/http"

// Router is the minimal routing surface the application depends on.
// Implementations register method-aware routes and serve HTTP.
type Router interface {
	http.Handler

	// Handle registers a handler for the given HTTP method and path.
	Handle(method, path string, handler http.Handler)
}
