package nina

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"gitlab.com/tinyland/lab/nina-pulse/pkg/graph"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next message from the peer.
	pongWait = 60 * time.Second

	// Send pings to the peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from the peer.
	maxMessageSize = 512 * 1024
)

// SocketURL derives the event socket address from the API root:
// "http://host:1888/v2/api/" becomes "ws://host:1888/v2/socket".
func SocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("nina: parse url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("nina: url %q has no host", baseURL)
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{Scheme: scheme, Host: u.Host, Path: "/v2/socket"}).String(), nil
}

// socketEvent is the subset of a socket message the client reads.
type socketEvent struct {
	Response struct {
		Event           string `json:"Event"`
		ImageStatistics *struct {
			HFR   *float64 `json:"HFR"`
			Stars int      `json:"Stars"`
		} `json:"ImageStatistics"`
	} `json:"Response"`
}

// parseImageSave extracts the HFR sample from an IMAGE-SAVE message.
func parseImageSave(msg []byte) (graph.HFRSample, bool) {
	var ev socketEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		return graph.HFRSample{}, false
	}
	if !strings.EqualFold(ev.Response.Event, "IMAGE-SAVE") {
		return graph.HFRSample{}, false
	}
	st := ev.Response.ImageStatistics
	if st == nil || st.HFR == nil {
		return graph.HFRSample{}, false
	}
	return graph.HFRSample{HFR: *st.HFR, Stars: st.Stars}, true
}

// Listen keeps a socket connection open until ctx is done, pushing every
// IMAGE-SAVE sample into the ring. Dropped connections are redialled after
// the reconnect delay. It always returns ctx.Err().
func (c *Client) Listen(ctx context.Context) error {
	wsURL, err := SocketURL(c.base.String())
	if err != nil {
		return err
	}
	for {
		err := c.listenOnce(ctx, wsURL)
		c.listening.Store(false)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("nina socket disconnected", "instance", c.name, "url", wsURL, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.reconnect):
		}
	}
}

func (c *Client) listenOnce(ctx context.Context, wsURL string) error {
	dialer := websocket.Dialer{HandshakeTimeout: c.dialTimeout}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("nina: dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	// Events missed while disconnected are only in the REST history.
	c.seeded.Store(false)
	c.listening.Store(true)
	c.logger.Info("nina socket connected", "instance", c.name, "url", wsURL)

	done := make(chan struct{})
	defer close(done)
	go c.pingLoop(ctx, conn, done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		}
		if s, ok := parseImageSave(msg); ok {
			c.ring.Push(s)
			c.logger.Debug("image saved", "instance", c.name, "hfr", s.HFR, "stars", s.Stars)
		}
	}
}

// pingLoop keeps the read deadline moving on a quiet socket and closes the
// connection when ctx is done so the blocked read returns.
func (c *Client) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			_ = conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
