package email

// Config holds delivery configuration for the Postmark-backed sender.
// Tokens are optional so development environments can fall back to the
// filesystem sender. SenderEmail establishes the From identity of every
// outbound digest; ReplyToEmail is where recipient responses land.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL"`
}
