package jmap

import (
	"encoding/json"
	"fmt"
)

// Capability URNs used in request "using" lists.
const (
	URICore       = "urn:ietf:params:jmap:core"
	URIMail       = "urn:ietf:params:jmap:mail"
	URISubmission = "urn:ietf:params:jmap:submission"
)

// Session is the discovered session document subset the client uses.
type Session struct {
	APIURL          string            `json:"apiUrl"`
	DownloadURL     string            `json:"downloadUrl,omitempty"`
	UploadURL       string            `json:"uploadUrl,omitempty"`
	PrimaryAccounts map[string]string `json:"primaryAccounts"`
	State           string            `json:"state,omitempty"`
}

// Invocation is one method call or method response: a three-element JSON
// array of method name, arguments, and call ID. For requests Args holds the
// value to marshal; for decoded responses Args holds json.RawMessage.
type Invocation struct {
	Name   string
	Args   any
	CallID string
}

// MarshalJSON encodes the invocation as [name, args, callId].
func (i Invocation) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{i.Name, i.Args, i.CallID})
}

// UnmarshalJSON decodes a [name, args, callId] array, leaving Args as raw JSON.
func (i *Invocation) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInvocation, err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("%w: got %d elements", ErrMalformedInvocation, len(parts))
	}
	if err := json.Unmarshal(parts[0], &i.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInvocation, err)
	}
	if err := json.Unmarshal(parts[2], &i.CallID); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInvocation, err)
	}
	i.Args = parts[1]
	return nil
}

// DecodeArgs decodes a response invocation's arguments into out.
func (i Invocation) DecodeArgs(out any) error {
	raw, ok := i.Args.(json.RawMessage)
	if !ok {
		return ErrUnexpectedResponse
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// Request is a batched JMAP API request.
type Request struct {
	Using       []string     `json:"using"`
	MethodCalls []Invocation `json:"methodCalls"`
}

// Response is a batched JMAP API response.
type Response struct {
	MethodResponses []Invocation `json:"methodResponses"`
	SessionState    string       `json:"sessionState,omitempty"`
}

// EmailAddress is the documented JMAP address shape.
type EmailAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Identity is a sending identity of the account.
type Identity struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	ReplyTo       []EmailAddress `json:"replyTo,omitempty"`
	BCC           []EmailAddress `json:"bcc,omitempty"`
	TextSignature string         `json:"textSignature,omitempty"`
	HTMLSignature string         `json:"htmlSignature,omitempty"`
	MayDelete     bool           `json:"mayDelete"`
}

// BodyPart references one part of an email body structure.
type BodyPart struct {
	PartID      string `json:"partId,omitempty"`
	BlobID      string `json:"blobId,omitempty"`
	Type        string `json:"type,omitempty"`
	Charset     string `json:"charset,omitempty"`
	Disposition string `json:"disposition,omitempty"`
	CID         string `json:"cid,omitempty"`
	Name        string `json:"name,omitempty"`
}

// BodyValue holds the in-line content of a body part.
type BodyValue struct {
	Value             string `json:"value"`
	IsEncodingProblem bool   `json:"isEncodingProblem,omitempty"`
	IsTruncated       bool   `json:"isTruncated,omitempty"`
}

// Email is the settable subset of the JMAP Email object used for draft
// creation.
type Email struct {
	MailboxIDs map[string]bool      `json:"mailboxIds,omitempty"`
	Keywords   map[string]bool      `json:"keywords,omitempty"`
	From       []EmailAddress       `json:"from,omitempty"`
	To         []EmailAddress       `json:"to,omitempty"`
	ReplyTo    []EmailAddress       `json:"replyTo,omitempty"`
	Subject    string               `json:"subject,omitempty"`
	BodyValues map[string]BodyValue `json:"bodyValues,omitempty"`
	HTMLBody   []BodyPart           `json:"htmlBody,omitempty"`
	TextBody   []BodyPart           `json:"textBody,omitempty"`
}
