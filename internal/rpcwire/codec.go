// Package rpcwire defines the gRPC message types, service
// descriptors, and client stubs for the Network and Target services
//, plus the wire codec that carries them.
//
// No protoc-generated code exists for this wire format: the messages
// below are hand-written Go structs carried over grpc-go's own
// transport and framing, encoded with Go's gob encoding instead of
// protobuf. gobCodec registers itself under the name "proto" — the
// content-subtype grpc-go's client and server default to when a call
// sets none — so every Invoke/server handler in this module uses it
// without per-call codec options.
package rpcwire

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(gobCodec{})
}

// gobCodec implements grpc/encoding.Codec over encoding/gob.
type gobCodec struct{}

func (gobCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("rpcwire: gob marshal: %w", err)
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("rpcwire: gob unmarshal: %w", err)
	}
	return nil
}

// Name reports "proto" so this codec is picked up as the default
// content-subtype by grpc-go clients and servers that specify none.
func (gobCodec) Name() string { return "proto" }
