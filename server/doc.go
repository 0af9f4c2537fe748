// Package server hosts gin routes on an http.Server with the standard
// middleware stack (recovery, request ID, CORS, body size limit, request
// logging) and the /health and /version endpoints.
package server
