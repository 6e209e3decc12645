package capture

import (
	"context"
	"maps"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	bufferKey     contextKey = "capture-buffer"
	propertiesKey contextKey = "capture-properties"
)

// NewContext returns a context carrying buf.
func NewContext(ctx context.Context, buf *Buffer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, bufferKey, buf)
}

// FromContext returns the buffer carried by ctx, or ErrNoCapture.
func FromContext(ctx context.Context) (*Buffer, error) {
	if ctx == nil {
		return nil, ErrNoCapture
	}
	buf, ok := ctx.Value(bufferKey).(*Buffer)
	if !ok || buf == nil {
		return nil, ErrNoCapture
	}
	return buf, nil
}

// WithProperties returns a context whose properties are the parent's merged
// with props. Sources copy these onto every entry logged with the context.
func WithProperties(ctx context.Context, props map[string]string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	merged := make(map[string]string)
	maps.Copy(merged, PropertiesFromContext(ctx))
	maps.Copy(merged, props)
	return context.WithValue(ctx, propertiesKey, merged)
}

// WithProperty is WithProperties for a single key.
func WithProperty(ctx context.Context, key, value string) context.Context {
	return WithProperties(ctx, map[string]string{key: value})
}

// PropertiesFromContext returns the properties attached to ctx. The returned
// map must not be modified.
func PropertiesFromContext(ctx context.Context) map[string]string {
	if ctx == nil {
		return nil
	}
	props, _ := ctx.Value(propertiesKey).(map[string]string)
	return props
}
