package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOTLPHeaders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"empty", "", nil},
		{"single", "Authorization=Basic%20abc", map[string]string{"Authorization": "Basic abc"}},
		{"several", "a=1, b=2", map[string]string{"a": "1", "b": "2"}},
		{"value with equals", "token=a=b", map[string]string{"token": "a=b"}},
		{"skips malformed", "broken,a=1", map[string]string{"a": "1"}},
		{"keeps undecodable", "a=%zz", map[string]string{"a": "%zz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOTLPHeaders(tt.raw))
		})
	}
}

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()

	p, err := Setup(ctx, Config{})

	require.NoError(t, err)
	require.NotNil(t, p.Tracer)
	require.NotNil(t, p.Meter)
	require.NotNil(t, p.Logger)
	assert.NoError(t, p.Shutdown(ctx))
}

func TestNewResource_ServiceName(t *testing.T) {
	res, err := newResource(context.Background(), Config{ServiceVersion: "1.2.3"})
	require.NoError(t, err)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, DefaultServiceName, attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
}
