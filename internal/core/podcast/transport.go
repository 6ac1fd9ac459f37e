package podcast

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultEndpoint is the podcast TTS service the client dials unless
// overridden via configuration.
const DefaultEndpoint = "wss://openspeech.bytedance.com/api/v3/sami/podcasttts"

const (
	resourceID = "volc.service_type.10050"
	appKey     = "aGjiRDfUWi"
)

// Transport is one exclusive bidirectional socket carrying marshaled frames.
// The session owns it for its whole lifetime; contexts bound every blocking
// operation.
type Transport interface {
	Send(ctx context.Context, data []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}

// DialFunc opens a fresh transport authenticated with the given settings.
type DialFunc func(ctx context.Context, endpoint string, s Settings) (Transport, error)

// DialWebSocket opens the websocket transport. Credentials ride in the
// connection headers, outside the frame format; the connect id is fresh per
// attempt.
func DialWebSocket(ctx context.Context, endpoint string, s Settings) (Transport, error) {
	headers := http.Header{}
	headers.Set("X-Api-App-Id", s.AppID)
	headers.Set("X-Api-App-Key", appKey)
	headers.Set("X-Api-Access-Key", s.AccessKey)
	headers.Set("X-Api-Resource-Id", resourceID)
	headers.Set("X-Api-Connect-Id", uuid.NewString())

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, headers)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	conn.SetReadLimit(32 << 20)
	return &wsTransport{conn: conn}, nil
}

type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) Send(ctx context.Context, data []byte) error {
	t.conn.SetWriteDeadline(deadlineOf(ctx))
	return t.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (t *wsTransport) Receive(ctx context.Context) ([]byte, error) {
	t.conn.SetReadDeadline(deadlineOf(ctx))
	_, data, err := t.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (t *wsTransport) Close() error {
	t.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return t.conn.Close()
}

func deadlineOf(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	return time.Time{}
}
