package channel

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is the raw bidirectional socket the channel reads frames from.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// WSDialer opens gorilla websocket connections.
type WSDialer struct {
	Header    http.Header
	ReadLimit int64
	Timeout   time.Duration
}

func (d WSDialer) Dial(ctx context.Context, url string) (Conn, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: d.Timeout,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
	conn, _, err := dialer.DialContext(ctx, url, d.Header)
	if err != nil {
		return nil, err
	}
	if d.ReadLimit > 0 {
		conn.SetReadLimit(d.ReadLimit)
	}
	return conn, nil
}
