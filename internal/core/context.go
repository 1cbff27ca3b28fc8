package core

import "context"

// Client identifies who sent a request. The web layer fills it in; the CLI
// leaves it empty.
type Client struct {
	IP        string
	UserAgent string
}

type clientKey struct{}

// WithClient attaches c to ctx so ingests can record the uploader.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// ClientFrom returns the Client stored in ctx, or the zero Client.
func ClientFrom(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey{}).(Client)
	return c
}
