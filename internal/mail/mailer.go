package mail

// Sender delivers a plain-text message to a recipient list. Recipients
// go on BCC so addresses are not exposed to each other.
type Sender interface {
	Send(subject, body string, bcc []string) error
}
