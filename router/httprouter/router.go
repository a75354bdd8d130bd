package httprouter

import (
	"net/http"

	jshttprouter "github.com/julienschmidt/httprouter"

	"github.com/joblane/backend/router"
)

// Router implements router.Router on top of julienschmidt/httprouter.
type Router struct {
	rt *jshttprouter.Router
}

func New() router.Router {
	return &Router{rt: jshttprouter.New()}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

func (r *Router) Handle(method, path string, handler http.Handler) {
	r.rt.Handler(method, path, handler)
}
