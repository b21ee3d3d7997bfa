package viomi

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig configures the MQTT-bridged transport.
type MQTTConfig struct {
	// BrokerURL is the broker address, e.g. tcp://192.168.1.10:1883
	// or ssl://broker:8883.
	BrokerURL string
	Username  string
	Password  string
	// TopicPrefix identifies the device on the bridge; requests go to
	// <prefix>/request and replies arrive on <prefix>/response.
	TopicPrefix string
	// Timeout bounds one request/reply round trip.
	Timeout time.Duration
	// Retries bounds resend attempts after a timed-out round trip.
	Retries int
}

// MQTTTransport carries device RPCs over an MQTT request/reply topic
// pair, the shape exposed by miio-to-MQTT bridge gateways. It owns
// the retry and timeout policy the session relies on: each call is
// resent up to Retries times, each attempt bounded by Timeout.
type MQTTTransport struct {
	client        mqtt.Client
	requestTopic  string
	responseTopic string
	timeout       time.Duration
	retries       int

	mu      sync.Mutex
	pending map[int]chan Response
}

// NewMQTTTransport connects to the broker and subscribes to the
// device's reply topic.
func NewMQTTTransport(cfg MQTTConfig) (*MQTTTransport, error) {
	if cfg.BrokerURL == "" {
		return nil, fmt.Errorf("mqtt transport: broker url is required")
	}
	if cfg.TopicPrefix == "" {
		return nil, fmt.Errorf("mqtt transport: topic prefix is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retries <= 0 {
		cfg.Retries = defaultRetries
	}

	t := &MQTTTransport{
		requestTopic:  cfg.TopicPrefix + "/request",
		responseTopic: cfg.TopicPrefix + "/response",
		timeout:       cfg.Timeout,
		retries:       cfg.Retries,
		pending:       make(map[int]chan Response),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetClientID(randomClientID())
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = func(client mqtt.Client) {
		client.Subscribe(t.responseTopic, 0, func(_ mqtt.Client, msg mqtt.Message) {
			t.dispatch(msg.Payload())
		})
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	t.client = client
	return t, nil
}

// Send publishes the request and waits for the matching reply.
func (t *MQTTTransport) Send(ctx context.Context, req Request) (any, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	ch := make(chan Response, 1)
	t.mu.Lock()
	t.pending[req.ID] = ch
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		delete(t.pending, req.ID)
		t.mu.Unlock()
	}()

	var lastErr error
	for attempt := 0; attempt <= t.retries; attempt++ {
		if token := t.client.Publish(t.requestTopic, 0, false, payload); token.Wait() && token.Error() != nil {
			lastErr = token.Error()
			continue
		}
		timer := time.NewTimer(t.timeout)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case resp := <-ch:
			timer.Stop()
			if resp.Error != nil {
				return nil, fmt.Errorf("device error: %v", resp.Error)
			}
			return resp.Result, nil
		case <-timer.C:
			lastErr = fmt.Errorf("timed out after %s", t.timeout)
		}
	}
	return nil, fmt.Errorf("no reply after %d attempts: %w", t.retries+1, lastErr)
}

// Close disconnects from the broker.
func (t *MQTTTransport) Close() error {
	t.client.Unsubscribe(t.responseTopic)
	t.client.Disconnect(250)
	return nil
}

// dispatch routes a reply payload to the waiting request, matching by
// request id. Unparseable and unexpected payloads are dropped; the
// sender's timeout covers them.
func (t *MQTTTransport) dispatch(payload []byte) {
	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return
	}
	t.mu.Lock()
	ch := t.pending[resp.ID]
	t.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- resp:
	default:
	}
}

func randomClientID() string {
	nonce := make([]byte, 8)
	_, _ = rand.Read(nonce)
	return "viomi-" + base64.RawURLEncoding.EncodeToString(nonce)
}
