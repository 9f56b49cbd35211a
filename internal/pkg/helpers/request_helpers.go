package helpers

import "context"

type clientIPKey struct{}

// WithClientIP stores the caller's IP on the context so audit entries
// written in the service layer can record where a change came from.
func WithClientIP(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIPFromContext returns the caller's IP, or nil when none was recorded.
func ClientIPFromContext(ctx context.Context) *string {
	ip, ok := ctx.Value(clientIPKey{}).(string)
	if !ok || ip == "" {
		return nil
	}
	return &ip
}
