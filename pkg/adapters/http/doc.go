/*
Package http serves dialogue sessions over a JSON API routed with chi.

	GET    /health
	GET    /graph
	GET    /metrics
	GET    /sessions
	POST   /sessions
	GET    /sessions/{id}
	DELETE /sessions/{id}
	GET    /sessions/{id}/graph
	POST   /sessions/{id}/choices/{index}
	POST   /sessions/{id}/reset

Unknown sessions answer 404, foreign or out of range choices 400, and choices
whose condition fails or that come after the end 409.
*/
package http
