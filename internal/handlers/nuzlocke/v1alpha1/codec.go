package v1alpha1

import (
	"bytes"
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
)

// decode fills dst from a Struct. Unknown fields are rejected.
func decode(src *structpb.Struct, dst any) error {
	if src == nil {
		return errors.InvalidArgument("request is required")
	}

	raw, err := json.Marshal(src.AsMap())
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}

	return nil
}

// encode converts src into a Struct using its json tags
func encode(src any) (*structpb.Struct, error) {
	raw, err := json.Marshal(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}

	return out, nil
}

// decodeReply fills dst from a reply. Fields this client does not know are
// skipped so newer servers stay compatible.
func decodeReply(src *structpb.Struct, dst any) error {
	raw, err := json.Marshal(src.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
