package entity

// MailResult mirrors the outcomes of a mail compose flow.
type MailResult string

const (
	MailSent      MailResult = "sent"
	MailSaved     MailResult = "saved"
	MailCancelled MailResult = "cancelled"
	MailFailed    MailResult = "failed"
)

type MailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string

	AttachmentName string
	Attachment     []byte
}
