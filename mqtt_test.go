package viomi

import (
	"encoding/json"
	"testing"
	"time"
)

func pendingTransport() *MQTTTransport {
	return &MQTTTransport{
		requestTopic:  "viomi/vacuum/request",
		responseTopic: "viomi/vacuum/response",
		timeout:       time.Second,
		pending:       make(map[int]chan Response),
	}
}

func TestDispatchRoutesByRequestID(t *testing.T) {
	transport := pendingTransport()
	ch := make(chan Response, 1)
	transport.pending[7] = ch

	payload, _ := json.Marshal(Response{ID: 7, Result: []any{"ok"}})
	transport.dispatch(payload)

	select {
	case resp := <-ch:
		if resp.ID != 7 {
			t.Fatalf("ID = %d", resp.ID)
		}
	default:
		t.Fatal("matching reply was not delivered")
	}
}

func TestDispatchDropsUnmatchedAndGarbage(t *testing.T) {
	transport := pendingTransport()
	ch := make(chan Response, 1)
	transport.pending[7] = ch

	payload, _ := json.Marshal(Response{ID: 8, Result: "stray"})
	transport.dispatch(payload)
	transport.dispatch([]byte("{not json"))

	select {
	case resp := <-ch:
		t.Fatalf("unexpected delivery: %+v", resp)
	default:
	}
}

func TestDispatchDoesNotBlockOnFullChannel(t *testing.T) {
	transport := pendingTransport()
	ch := make(chan Response, 1)
	ch <- Response{ID: 7}
	transport.pending[7] = ch

	payload, _ := json.Marshal(Response{ID: 7})
	done := make(chan struct{})
	go func() {
		transport.dispatch(payload)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked on a full channel")
	}
}

func TestNewMQTTTransportValidatesConfig(t *testing.T) {
	if _, err := NewMQTTTransport(MQTTConfig{TopicPrefix: "viomi/vacuum"}); err == nil {
		t.Fatal("missing broker url should fail")
	}
	if _, err := NewMQTTTransport(MQTTConfig{BrokerURL: "tcp://localhost:1883"}); err == nil {
		t.Fatal("missing topic prefix should fail")
	}
}
