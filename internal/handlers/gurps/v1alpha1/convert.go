package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/gurps-api/internal/errors"
)

// toStruct converts a service input or output to its wire message
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal message")
	}

	st := &structpb.Struct{}
	if err := protojson.Unmarshal(data, st); err != nil {
		return nil, errors.Wrap(err, "failed to build struct message")
	}
	return st, nil
}

// fromStruct fills v from a wire message. A nil message leaves v alone.
func fromStruct(st *structpb.Struct, v interface{}) error {
	if st == nil {
		return nil
	}

	data, err := protojson.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "failed to read struct message")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request").
			WithMeta("reason", err.Error())
	}
	return nil
}
