package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/catalog/internal/application/auth"
	"github.com/rezkam/catalog/internal/config"
)

func TestNewCleanup_ShutsDownAuthenticatorBeforeClosing(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey("test"), "marker")
	var callOrder []string

	authenticator := &fakeAuthenticator{calls: &callOrder}
	store := &fakeCloser{name: "store", calls: &callOrder}
	content := &fakeCloser{name: "content", calls: &callOrder}

	newCleanup(ctx, authenticator, store, nil, content)()

	require.Equal(t, []string{"authShutdown", "store", "content"}, callOrder)
	require.Equal(t, "marker", authenticator.receivedCtx.Value(ctxKey("test")))
}

type ctxKey string

type fakeAuthenticator struct {
	calls       *[]string
	receivedCtx context.Context
}

func (f *fakeAuthenticator) Shutdown(ctx context.Context) error {
	f.receivedCtx = ctx
	*f.calls = append(*f.calls, "authShutdown")
	return nil
}

type fakeCloser struct {
	name  string
	calls *[]string
}

func (c *fakeCloser) Close() error {
	*c.calls = append(*c.calls, c.name)
	return nil
}

func TestServerConfig_TLSOnlyWhenEnabled(t *testing.T) {
	c := config.HTTPConfig{Port: "9000", TLSCertFile: "cert.pem", TLSKeyFile: "key.pem", RateLimit: 5, RateBurst: 10}

	sc := serverConfig(c)
	assert.Equal(t, "9000", sc.Port)
	assert.Equal(t, 5.0, sc.RateLimit)
	assert.Empty(t, sc.TLSCertFile)

	c.TLSEnabled = true
	sc = serverConfig(c)
	assert.Equal(t, "cert.pem", sc.TLSCertFile)
	assert.Equal(t, "key.pem", sc.TLSKeyFile)
}

func TestAuthTimeout(t *testing.T) {
	assert.Equal(t, auth.DefaultOperationTimeout, authTimeout(0))
	assert.Equal(t, time.Second, authTimeout(time.Second))
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://user:xxxxxx@db/catalog", maskPassword("postgres://user:secret@db/catalog"))
	assert.Equal(t, "catalog.db", maskPassword("catalog.db"))
}
