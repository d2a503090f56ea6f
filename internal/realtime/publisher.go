// Package realtime publishes directives to per-device topics on the
// realtime relay. Each publish is one short-lived websocket connection:
// dial, join the topic, broadcast, close. Delivery is a low-latency hint;
// the persisted configuration remains the source of truth and the device
// reconciles on reconnect.
package realtime

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	subprotocol    = "phoenix"
	eventJoin      = "phx_join"
	eventBroadcast = "broadcast"
)

// frame is one message in the relay's framing dialect.
type frame struct {
	Topic   string      `json:"topic"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
	Ref     string      `json:"ref"`
}

// Publisher opens one connection per publish against the relay endpoint.
type Publisher struct {
	relayURL string
	apiKey   string
	vsn      string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewPublisher creates a publisher for the given relay websocket endpoint.
// timeout bounds the dial handshake and each frame write.
func NewPublisher(relayURL, apiKey, vsn string, timeout time.Duration, logger *zap.Logger) *Publisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{relayURL: relayURL, apiKey: apiKey, vsn: vsn, timeout: timeout, logger: logger}
}

// Topic returns the per-device topic name.
func Topic(deviceID string) string {
	return "realtime:device:" + deviceID
}

// Publish joins the device's topic and broadcasts the envelope, then closes
// the connection. No acknowledgment is awaited and no retry is attempted;
// failures are reported to the caller to decide how loudly to complain.
func (p *Publisher) Publish(ctx context.Context, deviceID string, envelope interface{}) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("relay dial: %w", err)
	}
	defer conn.Close()

	topic := Topic(deviceID)
	ref := 0
	send := func(event string, payload interface{}) error {
		ref++
		if err := conn.SetWriteDeadline(time.Now().Add(p.timeout)); err != nil {
			return err
		}
		return conn.WriteJSON(frame{
			Topic:   topic,
			Event:   event,
			Payload: payload,
			Ref:     strconv.Itoa(ref),
		})
	}

	if err := send(eventJoin, map[string]interface{}{}); err != nil {
		return fmt.Errorf("relay join %s: %w", topic, err)
	}
	if err := send(eventBroadcast, envelope); err != nil {
		return fmt.Errorf("relay broadcast %s: %w", topic, err)
	}

	p.logger.Debug("published to relay", zap.String("topic", topic))
	return nil
}

func (p *Publisher) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(p.relayURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("apikey", p.apiKey)
	q.Set("vsn", p.vsn)
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{
		HandshakeTimeout: p.timeout,
		Subprotocols:     []string{subprotocol},
	}
	conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	return conn, nil
}
