package app

import (
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/behummble/link-alive/internal/config"
)

func freePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func TestApp_StartStop(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            freePort(t),
			ShutdownTimeout: time.Second,
		},
		Checker: config.CheckerConfig{Timeout: time.Second},
	}

	application, err := NewApp(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, application.Start(nil))

	address := "http://127.0.0.1:" + strconv.Itoa(cfg.Server.Port) + "/links"
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(address)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	require.NoError(t, application.Stop(nil))

	select {
	case err := <-application.Done():
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestApp_PortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            listener.Addr().(*net.TCPAddr).Port,
			ShutdownTimeout: time.Second,
		},
	}
	application, err := NewApp(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, application.Start(nil))

	select {
	case err := <-application.Done():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected listen error")
	}
}
