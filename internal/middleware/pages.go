package middleware

import "net/http"

// ErrorPages renders the dedicated 403/404/500 pages. Implemented by the
// render package; middleware takes the interface to avoid depending on
// template internals.
type ErrorPages interface {
	ErrorPage(w http.ResponseWriter, status int)
}
