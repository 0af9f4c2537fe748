// Package middleware holds the gin middleware installed by server.ApplyMiddleware.
package middleware
