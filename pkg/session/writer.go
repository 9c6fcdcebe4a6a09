package session

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// responseWriter runs hooks once, right before the response headers are
// written. A hook may abort the response; the wrapped handler's output is
// then discarded.
type responseWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	written     bool
	aborted     bool
	beforeWrite []func()
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

// OnBeforeWrite registers a hook to run before the first write.
// Hooks are called in registration order.
func (w *responseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.beforeWrite = append(w.beforeWrite, fn)
}

// fire runs the pending hooks unless the response was already started.
// Hooks left after an abort are skipped.
func (w *responseWriter) fire() {
	w.mu.Lock()
	if w.written {
		w.mu.Unlock()
		return
	}
	w.written = true
	hooks := w.beforeWrite
	w.beforeWrite = nil
	w.mu.Unlock()

	for _, fn := range hooks {
		if w.isAborted() {
			return
		}
		fn()
	}
}

func (w *responseWriter) abort() {
	w.mu.Lock()
	w.aborted = true
	w.mu.Unlock()
}

func (w *responseWriter) isAborted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.aborted
}

// WriteHeader sends an HTTP response header with the provided status code.
func (w *responseWriter) WriteHeader(code int) {
	w.fire()
	if w.isAborted() {
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write writes the data to the connection as part of an HTTP reply.
func (w *responseWriter) Write(b []byte) (int, error) {
	w.fire()
	if w.isAborted() {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// Written returns true if the response has been started.
func (w *responseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements the http.Flusher interface.
func (w *responseWriter) Flush() {
	w.fire()
	if w.isAborted() {
		return
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements the http.Hijacker interface.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Push implements the http.Pusher interface.
func (w *responseWriter) Push(target string, opts *http.PushOptions) error {
	if pusher, ok := w.ResponseWriter.(http.Pusher); ok {
		return pusher.Push(target, opts)
	}
	return http.ErrNotSupported
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
