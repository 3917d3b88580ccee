package stationauth

import "context"

type clientContextKey struct{}

// WithClientContext attaches a caller identifier (device label, tab ID,
// remote address) to ctx. The engine records it on every security event so
// log entries can be traced back to the submitting client.
func WithClientContext(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientContextKey{}, client)
}

func clientContextFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	client, _ := ctx.Value(clientContextKey{}).(string)
	return client
}
