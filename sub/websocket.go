package sub

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket streams messages from a websocket endpoint into the
// program. The connection is kept alive for the life of the
// subscription: on any read or dial failure it reconnects with
// exponential backoff and keeps going until the subscription is
// stopped.
type WebSocket[M any] struct {
	// Name is the subscription ID.
	Name string
	// URL is the ws:// or wss:// endpoint.
	URL string
	// Header is sent with the handshake. May be nil.
	Header http.Header
	// Decode maps a received frame to a message. Returning false
	// drops the frame.
	Decode func(data []byte) (M, bool)
	// Logger receives connection telemetry; nop when nil.
	Logger *zap.Logger
}

func (w *WebSocket[M]) ID() string { return w.Name }

func (w *WebSocket[M]) Run(ctx context.Context, send func(M)) {
	log := w.Logger
	if log == nil {
		log = zap.NewNop()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 30 * time.Second
	// Retry for as long as the subscription lives.
	bo.MaxElapsedTime = 0

	for {
		start := time.Now()
		err := w.session(ctx, send, log)
		if ctx.Err() != nil {
			return
		}
		if time.Since(start) > bo.MaxInterval {
			// The connection held for a while; treat the failure as
			// fresh rather than part of the previous flap.
			bo.Reset()
		}
		wait := bo.NextBackOff()
		log.Warn("websocket disconnected",
			zap.String("url", w.URL),
			zap.Duration("retry_in", wait),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// session runs one connection until it fails or ctx is canceled.
func (w *WebSocket[M]) session(ctx context.Context, send func(M), log *zap.Logger) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, w.URL, w.Header)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Debug("websocket connected", zap.String("url", w.URL))

	// ReadMessage has no context form; closing the connection is how
	// cancellation interrupts it.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if msg, ok := w.Decode(data); ok {
			send(msg)
		}
	}
}
