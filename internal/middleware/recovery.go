// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer turns a handler panic into a JSON 500 and an error log line
// carrying the request id. http.ErrAbortHandler is re-raised so the server
// can abort the connection as usual.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			reportPanic(w, r, rec, debug.Stack())
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}

func reportPanic(w http.ResponseWriter, r *http.Request, rec any, stack []byte) {
	// RequestID may sit inside Recoverer; its header is set either way.
	id := RequestIDFrom(r.Context())
	if id == "" {
		id = w.Header().Get(RequestIDHeader)
	}
	slog.Error("panic recovered",
		"panic", rec,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", id,
		"stack", string(stack),
	)
}
