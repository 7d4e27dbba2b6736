package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Names of the request variants in the JSON envelope.
const (
	addParticipantRequestName = "add_participant"
	computeRichestRequestName = "compute_richest"
)

// Request is one of the requests served by the Ledger: *AddParticipantRequest
// or *ComputeRichestRequest. The set is closed, Handle dispatches over all its
// variants.
type Request interface {
	requestName() string
}

// AddParticipantRequest registers participant or updates its net worth.
type AddParticipantRequest struct {
	Address  string   `json:"address"`
	NetWorth *big.Int `json:"net_worth"`
}

// ComputeRichestRequest queries the richest participant address.
type ComputeRichestRequest struct{}

func (*AddParticipantRequest) requestName() string { return addParticipantRequestName }

func (*ComputeRichestRequest) requestName() string { return computeRichestRequestName }

// EncodeRequest encodes the request into the JSON envelope accepted by
// DecodeRequest, e.g.
//
//	{"add_participant":{"address":"fred","net_worth":100}}
//	{"compute_richest":{}}
func EncodeRequest(req Request) ([]byte, error) {
	data, err := json.Marshal(map[string]Request{req.requestName(): req})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrSerialization, err)
	}

	return data, nil
}

// DecodeRequest decodes the request from the JSON envelope holding exactly one
// request variant. Malformed payloads, repeated variant keys and trailing data
// are reported as ErrInvalidArgument.
func DecodeRequest(data []byte) (Request, error) {
	name, body, err := decodeEnvelope(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode request envelope: %w", ErrInvalidArgument, err)
	}

	var req Request

	switch name {
	case addParticipantRequestName:
		req = new(AddParticipantRequest)
	case computeRichestRequestName:
		req = new(ComputeRichestRequest)
	default:
		return nil, fmt.Errorf("%w: unknown request %q", ErrInvalidArgument, name)
	}

	err = decodeStrict(body, req)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s request: %w", ErrInvalidArgument, name, err)
	}

	return req, nil
}

// decodeEnvelope splits {"<name>":<body>} into its parts. Objects with other
// number of keys are rejected.
func decodeEnvelope(data []byte) (string, json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	err := expectDelim(dec, '{')
	if err != nil {
		return "", nil, err
	}

	if !dec.More() {
		return "", nil, errors.New("no request in envelope")
	}

	tok, err := dec.Token()
	if err != nil {
		return "", nil, err
	}

	name, ok := tok.(string)
	if !ok {
		return "", nil, fmt.Errorf("unexpected token %v", tok)
	}

	var body json.RawMessage

	err = dec.Decode(&body)
	if err != nil {
		return "", nil, err
	}

	if dec.More() {
		return "", nil, errors.New("envelope must contain exactly one request")
	}

	err = expectDelim(dec, '}')
	if err != nil {
		return "", nil, err
	}

	return name, body, expectEOF(dec)
}

func expectDelim(dec *json.Decoder, d json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok != d {
		return fmt.Errorf("expected %v, got %v", d, tok)
	}

	return nil
}

func expectEOF(dec *json.Decoder) error {
	_, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}

	if err != nil {
		return err
	}

	return errors.New("unexpected data after JSON value")
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err != nil {
		return err
	}

	return expectEOF(dec)
}

// Handle applies the request to the ledger. The result is Participant for
// AddParticipantRequest and ComputeRichestResponse for ComputeRichestRequest.
func (l *Ledger) Handle(env Env, req Request) (any, error) {
	switch r := req.(type) {
	case *AddParticipantRequest:
		if r == nil {
			return nil, fmt.Errorf("%w: nil %s request", ErrInvalidArgument, addParticipantRequestName)
		}
		return l.AddParticipant(env, r.Address, r.NetWorth)
	case *ComputeRichestRequest:
		return l.ComputeRichest(env)
	default:
		return nil, fmt.Errorf("%w: unsupported request %T", ErrInvalidArgument, req)
	}
}

// Serve decodes the JSON request, applies it and returns JSON response.
func (l *Ledger) Serve(env Env, payload []byte) ([]byte, error) {
	req, err := DecodeRequest(payload)
	if err != nil {
		return nil, err
	}

	res, err := l.Handle(env, req)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s response: %w", ErrSerialization, req.requestName(), err)
	}

	return data, nil
}
