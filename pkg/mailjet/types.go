package mailjet

// PagedResponse is the envelope every REST lookup arrives in.
type PagedResponse[T any] struct {
	Count int `json:"Count"`
	Total int `json:"Total"`
	Data  []T `json:"Data"`
}

// Profile is the account profile subset the workflow uses.
type Profile struct {
	ID        int64  `json:"ID"`
	UserID    int64  `json:"UserID"`
	Firstname string `json:"Firstname"`
	Lastname  string `json:"Lastname"`
	Website   string `json:"Website"`
}

// ContactList is one contact list of the account.
type ContactList struct {
	ID              int64  `json:"ID"`
	Name            string `json:"Name"`
	Address         string `json:"Address"`
	CreatedAt       string `json:"CreatedAt"`
	SubscriberCount int    `json:"SubscriberCount"`
}

// Contact is one contact record. The exclusion flags govern whether the
// contact is eligible for sends at all.
type Contact struct {
	ID                      int64  `json:"ID"`
	Name                    string `json:"Name"`
	Email                   string `json:"Email"`
	CreatedAt               string `json:"CreatedAt"`
	LastActivityAt          string `json:"LastActivityAt"`
	DeliveredCount          int    `json:"DeliveredCount"`
	IsExcludedFromCampaigns bool   `json:"IsExcludedFromCampaigns"`
	IsOptInPending          bool   `json:"IsOptInPending"`
	IsSpamComplaining       bool   `json:"IsSpamComplaining"`
}

// Template is one stored template of the account.
type Template struct {
	ID       int64  `json:"ID"`
	Name     string `json:"Name"`
	Author   string `json:"Author"`
	Purposes string `json:"Purposes"`
	Locale   string `json:"Locale"`
}

// EmailAddress is the address shape of the send API.
type EmailAddress struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

// Attachment is a regular (non-inline) attachment.
type Attachment struct {
	Filename      string `json:"Filename"`
	ContentType   string `json:"ContentType"`
	Base64Content string `json:"Base64Content"`
}

// InlinedAttachment is an attachment referenced from the message body via a
// cid: URI.
type InlinedAttachment struct {
	Attachment
	ContentID string `json:"ContentID,omitempty"`
}

// Message is one send-API message part. In campaign sends the shared fields
// live in SendOptions.Globals and each Message carries only its recipients.
type Message struct {
	From               *EmailAddress       `json:"From,omitempty"`
	Sender             *EmailAddress       `json:"Sender,omitempty"`
	To                 []EmailAddress      `json:"To,omitempty"`
	Cc                 []EmailAddress      `json:"Cc,omitempty"`
	Bcc                []EmailAddress      `json:"Bcc,omitempty"`
	ReplyTo            *EmailAddress       `json:"ReplyTo,omitempty"`
	Subject            string              `json:"Subject,omitempty"`
	TextPart           string              `json:"TextPart,omitempty"`
	HTMLPart           string              `json:"HTMLPart,omitempty"`
	TemplateID         int64               `json:"TemplateID,omitempty"`
	TemplateLanguage   bool                `json:"TemplateLanguage,omitempty"`
	Attachments        []Attachment        `json:"Attachments,omitempty"`
	InlinedAttachments []InlinedAttachment `json:"InlinedAttachments,omitempty"`
	CustomCampaign     string              `json:"CustomCampaign,omitempty"`
	CustomID           string              `json:"CustomID,omitempty"`
	Headers            map[string]string   `json:"Headers,omitempty"`
	Variables          map[string]any      `json:"Variables,omitempty"`
}

// SendOptions is the full send-API request payload.
type SendOptions struct {
	Messages             []Message `json:"Messages"`
	Globals              *Message  `json:"Globals,omitempty"`
	SandboxMode          bool      `json:"SandboxMode,omitempty"`
	AdvanceErrorHandling bool      `json:"AdvanceErrorHandling,omitempty"`
}

// SendError is one structured error entry of a send result.
type SendError struct {
	ErrorIdentifier string `json:"ErrorIdentifier"`
	ErrorCode       string `json:"ErrorCode"`
	StatusCode      int    `json:"StatusCode"`
	ErrorMessage    string `json:"ErrorMessage"`
	ErrorRelatedTo  any    `json:"ErrorRelatedTo"`
}

// MessageResult is the per-message outcome of a send.
type MessageResult struct {
	Status string      `json:"Status"`
	Errors []SendError `json:"Errors,omitempty"`
}

// SendResponse is the send-API response body. Structured errors, where the
// backend provides them, live here rather than in the transport layer.
type SendResponse struct {
	Messages []MessageResult `json:"Messages"`
}
