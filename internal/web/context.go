package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/ISS/internal/core"
)

// WithRequestMetadata adds IP and User-Agent to context so ingest logs and
// snapshots can record who uploaded a file.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	return core.WithClient(ctx, core.Client{
		IP:        clientIP(r), // RemoteAddr already rewritten by TrustedRealIP
		UserAgent: r.Header.Get("User-Agent"),
	})
}
