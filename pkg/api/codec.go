package api

import (
	"encoding/json"
	"errors"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Codec is a Connect codec registered under the name "json". Protobuf
// messages use protojson, everything else encoding/json.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

// FieldErrorsDetail packs validation failures (field → message) into a
// Connect error detail.
func FieldErrorsDetail(fields map[string]string) (*connect.ErrorDetail, error) {
	values := make(map[string]any, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	s, err := structpb.NewStruct(values)
	if err != nil {
		return nil, err
	}
	return connect.NewErrorDetail(s)
}

// FieldErrors extracts the validation failures attached to err, if any.
func FieldErrors(err error) map[string]string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return nil
	}
	for _, d := range connectErr.Details() {
		msg, derr := d.Value()
		if derr != nil {
			continue
		}
		s, ok := msg.(*structpb.Struct)
		if !ok {
			continue
		}
		out := make(map[string]string, len(s.GetFields()))
		for k, v := range s.GetFields() {
			out[k] = v.GetStringValue()
		}
		return out
	}
	return nil
}
