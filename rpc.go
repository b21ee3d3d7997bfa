package viomi

import (
	"context"
	"fmt"
)

// Request is one device RPC call: a verb name plus a positional or
// keyed argument list.
type Request struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params"`
}

// Response is the decoded device reply for one request.
type Response struct {
	ID     int `json:"id"`
	Result any `json:"result"`
	Error  any `json:"error"`
}

// Transport carries requests to the device and returns the decoded
// JSON result. Implementations own the connection, the per-call
// timeout, and the bounded retry policy; the session only supplies
// verbs and arguments. See MQTTTransport for the stock
// implementation.
type Transport interface {
	Send(ctx context.Context, req Request) (any, error)
	Close() error
}

// send issues one RPC with the next sequence number. Sequence-number
// continuity across invocations is the caller's concern: the initial
// value comes from Config.StartID and the current one is readable via
// Seq, but the session never touches the file that persists them.
func (s *Session) send(ctx context.Context, method string, params any) (any, error) {
	if params == nil {
		params = []any{}
	}
	s.seq++
	result, err := s.transport.Send(ctx, Request{ID: s.seq, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return result, nil
}

// Seq is the sequence number of the most recent request.
func (s *Session) Seq() int {
	return s.seq
}

// ManualSeq is the manual-movement sequence counter.
func (s *Session) ManualSeq() int {
	return s.manualSeq
}
