package middleware

import (
	"bytes"
	"context"
	"maps"
	"net/http"
	"time"

	"github.com/jsamuelsen11/libsql-todos/internal/adapters/http/dto"
)

// Timeout bounds each request by d. The deadline travels in the request
// context, so store queries started by the handler are canceled with it.
//
// The handler writes into a deferred response that reaches the client only
// if the handler returns in time. Otherwise the client gets a 504 problem
// and the late output is discarded. A handler panic is re-raised on the
// serving goroutine for Recovery.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			resp := &deferredResponse{header: make(http.Header)}
			returned := make(chan any, 1)

			go func() {
				defer func() { returned <- recover() }()
				next.ServeHTTP(resp, r.WithContext(ctx))
			}()

			select {
			case v := <-returned:
				if v != nil {
					panic(v)
				}
				resp.copyTo(w)
			case <-ctx.Done():
				// resp is never read again; the handler may keep writing to it.
				dto.WriteStatus(w, r, http.StatusGatewayTimeout, "request deadline exceeded")
			}
		})
	}
}

// deferredResponse holds a handler's output until Timeout decides whether to
// release it. It is owned by the handler goroutine until that goroutine
// returns.
type deferredResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (d *deferredResponse) Header() http.Header {
	return d.header
}

func (d *deferredResponse) WriteHeader(code int) {
	if d.status == 0 {
		d.status = code
	}
}

func (d *deferredResponse) Write(b []byte) (int, error) {
	if d.status == 0 {
		d.status = http.StatusOK
	}
	return d.body.Write(b)
}

func (d *deferredResponse) copyTo(w http.ResponseWriter) {
	maps.Copy(w.Header(), d.header)
	if d.status != 0 {
		w.WriteHeader(d.status)
	}
	_, _ = d.body.WriteTo(w)
}
