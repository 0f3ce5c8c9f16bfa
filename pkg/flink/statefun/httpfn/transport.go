package httpfn

import (
	"context"
	"math"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

// sharedTransport is the pooled client every HttpFunction of one
// provider sends through. It is created once and never reconfigured.
type sharedTransport struct {
	config TransportConfig
	dialer *net.Dialer
	client *http.Client

	// nil when the number of calls in flight is unbounded.
	slots *semaphore.Weighted
}

func newSharedTransport(config TransportConfig) *sharedTransport {
	dialer := &net.Dialer{
		Timeout:   config.ConnectTimeout(),
		KeepAlive: 30 * time.Second,
	}

	maxIdlePerHost := config.MaxIdleConnsPerHost
	if maxIdlePerHost == 0 {
		maxIdlePerHost = math.MaxInt
	}

	writeTimeout := config.WriteTimeout()
	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, address string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, address)
			if err != nil {
				return nil, err
			}
			return &writeDeadlineConn{Conn: conn, timeout: writeTimeout}, nil
		},
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          0,
		MaxIdleConnsPerHost:   maxIdlePerHost,
		MaxConnsPerHost:       0,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   config.ConnectTimeout(),
		ResponseHeaderTimeout: config.ReadTimeout(),
		ExpectContinueTimeout: time.Second,
	}

	shared := &sharedTransport{
		config: config,
		dialer: dialer,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.CallTimeout(),
		},
	}

	if config.MaxConns > 0 {
		shared.slots = semaphore.NewWeighted(int64(config.MaxConns))
	}

	return shared
}

// acquire reserves a slot for one call. The returned func releases it.
func (shared *sharedTransport) acquire(ctx context.Context) (func(), error) {
	if shared.slots == nil {
		return func() {}, nil
	}

	if err := shared.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	return func() { shared.slots.Release(1) }, nil
}

func (shared *sharedTransport) close() {
	shared.client.CloseIdleConnections()
}

// writeDeadlineConn bounds every write to the underlying connection.
// net/http has no write timeout of its own for outgoing requests.
type writeDeadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (conn *writeDeadlineConn) Write(b []byte) (int, error) {
	if err := conn.Conn.SetWriteDeadline(time.Now().Add(conn.timeout)); err != nil {
		return 0, err
	}
	return conn.Conn.Write(b)
}
