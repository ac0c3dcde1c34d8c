package client

import "context"

type ctxKey int

const (
	accessTokenKey ctxKey = iota
	requestIDKey
)

// WithAccessToken returns a context whose calls carry token as the bearer
// credential.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey, token)
}

// AccessToken returns the bearer credential attached to ctx.
func AccessToken(ctx context.Context) string {
	s, _ := ctx.Value(accessTokenKey).(string)
	return s
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}
