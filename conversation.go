package tavus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// CreateConversationRequest contains the information for a "create conversation"
// request to the Tavus API.
//
// https://docs.tavus.io/api-reference/conversations/create-conversation
type CreateConversationRequest struct {
	// The unique identifier for the replica that will join the conversation.
	ReplicaID string `json:"replica_id" yaml:"replica_id"`

	// The unique identifier for the persona that the replica will use.
	PersonaID string `json:"persona_id" yaml:"persona_id"`

	// A url that will receive webhooks with updates regarding the conversation state.
	CallbackURL string `json:"callback_url" yaml:"callback_url"`

	// A name for the conversation.
	ConversationName string `json:"conversation_name" yaml:"conversation_name"`

	// Optional context that will be appended to any context provided in
	// the persona, if one is provided.
	ConversationalContext string `json:"conversational_context" yaml:"conversational_context"`

	// An optional custom greeting that the replica will give once a participant joins.
	CustomGreeting string `json:"custom_greeting" yaml:"custom_greeting"`

	// Optional properties that can be used to customize the conversation.
	Properties ConversationProperties `json:"properties" yaml:"properties"`
}

// ConversationProperties customize a conversation.
type ConversationProperties struct {
	// The maximum duration of the call in seconds.
	MaxCallDuration int `json:"max_call_duration" yaml:"max_call_duration"`

	// The duration in seconds after which the call will be automatically
	// shut down once the last participant leaves.
	ParticipantLeftTimeout int `json:"participant_left_timeout" yaml:"participant_left_timeout"`

	// The duration in seconds after which the call will be automatically
	// shut down if no participant joins.
	ParticipantAbsentTimeout int `json:"participant_absent_timeout" yaml:"participant_absent_timeout"`

	// If true, the background will be replaced with a greenscreen.
	ApplyGreenscreen bool `json:"apply_greenscreen" yaml:"apply_greenscreen"`

	// The language of the conversation, as a full name (e.g. "english").
	Language string `json:"language" yaml:"language"`
}

// DefaultConversationalContext is the context given to the StudySauce onboarding replica.
const DefaultConversationalContext = "Role: Corporate Training Agent (Virtual Onboarding Guide)\n" +
	"Name: You can name it or let the company brand it.\n" +
	"\n" +
	"Purpose:\n" +
	"Your job is to onboard and train new employees by guiding them through tasks, " +
	"answering their questions, asking them questions to test understanding, and " +
	"helping them feel confident in their new role."

// DefaultConversationRequest returns the StudySauce onboarding conversation.
//
// Every call returns a new value with identical contents.
func DefaultConversationRequest() *CreateConversationRequest {
	return &CreateConversationRequest{
		ReplicaID:             "ra54d1d861",
		PersonaID:             "p7fb0be3",
		CallbackURL:           "http://localhost:8000",
		ConversationName:      "StudySauce",
		ConversationalContext: DefaultConversationalContext,
		CustomGreeting:        "Hey there, long time no see!",
		Properties: ConversationProperties{
			MaxCallDuration:          3600,
			ParticipantLeftTimeout:   60,
			ParticipantAbsentTimeout: 300,
			ApplyGreenscreen:         true,
			Language:                 "english",
		},
	}
}

// Payload returns the JSON body sent for the request.
func (r *CreateConversationRequest) Payload() ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal create conversation request: %w", err)
	}
	return b, nil
}

// CreateConversationResponse is the response from a "create conversation" request.
//
// Only the conversation URL matters to callers; the other fields are filled
// on a best-effort basis since the response schema is not guaranteed.
type CreateConversationResponse struct {
	ConversationID   string `json:"conversation_id,omitempty"`
	ConversationName string `json:"conversation_name,omitempty"`
	Status           string `json:"status,omitempty"`
	CallbackURL      string `json:"callback_url,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`

	// ConversationURL is nil when the response did not include a URL.
	ConversationURL *string `json:"conversation_url,omitempty"`

	// StatusCode is the HTTP status code of the response. It is recorded,
	// never inspected.
	StatusCode int `json:"-"`

	// Raw is the response body exactly as it was received.
	Raw []byte `json:"-"`
}

// URL returns the conversation URL, and whether the response contained one.
func (r *CreateConversationResponse) URL() (string, bool) {
	if r == nil || r.ConversationURL == nil {
		return "", false
	}
	return *r.ConversationURL, true
}

// DecodeCreateConversationResponse decodes a "create conversation" response body.
//
// A body that is not valid JSON returns an error wrapping [ErrDecode]. An
// object without a non-null "conversation_url" decodes to a response without
// a URL. Arrays and strings also decode without a URL, unless they contain a
// "conversation_url" element or substring, which cannot be looked up and is
// an [ErrDecode]. Numbers, booleans and null are always an [ErrDecode].
func DecodeCreateConversationResponse(body []byte) (*CreateConversationResponse, error) {
	resp := &CreateConversationResponse{Raw: body}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %q", ErrDecode, truncate(body, 64))
	}

	trimmed := bytes.TrimSpace(body)
	switch trimmed[0] {
	case '{':
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if slices.ContainsFunc(elems, func(e json.RawMessage) bool {
			var s string
			return json.Unmarshal(e, &s) == nil && s == "conversation_url"
		}) {
			return nil, fmt.Errorf("%w: array response has no conversation_url field", ErrDecode)
		}
		return resp, nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if strings.Contains(s, "conversation_url") {
			return nil, fmt.Errorf("%w: string response has no conversation_url field", ErrDecode)
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: unexpected response %q", ErrDecode, truncate(trimmed, 64))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if raw, ok := fields["conversation_url"]; ok && !isNull(raw) {
		var u string
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, fmt.Errorf("%w: conversation_url: %w", ErrDecode, err)
		}
		resp.ConversationURL = &u
	}

	resp.ConversationID = stringField(fields, "conversation_id")
	resp.ConversationName = stringField(fields, "conversation_name")
	resp.Status = stringField(fields, "status")
	resp.CallbackURL = stringField(fields, "callback_url")
	resp.CreatedAt = stringField(fields, "created_at")

	return resp, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stringField returns the string value of key, or "" if it is missing or not a string.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
