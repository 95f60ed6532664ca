package entrypoint

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServe_GracefulShutdown(t *testing.T) {
	addr := freeAddr(t)
	srv := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	shutdownCalled := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, srv, time.Second, zap.NewNop(), func(context.Context) { close(shutdownCalled) })
	}()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	<-shutdownCalled
}

func TestServe_ListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv := &http.Server{Addr: l.Addr().String()}
	err = Serve(context.Background(), srv, time.Second, zap.NewNop(), nil)
	assert.Error(t, err, "address already in use")
}

func TestCSRFSecretFrom(t *testing.T) {
	secret, err := csrfSecretFrom("00ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, secret)

	secret, err = csrfSecretFrom("not-hex")
	require.NoError(t, err)
	assert.Equal(t, []byte("not-hex"), secret)

	secret, err = csrfSecretFrom("")
	require.NoError(t, err)
	assert.Len(t, secret, 32)
}
