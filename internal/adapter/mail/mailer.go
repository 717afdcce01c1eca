package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// DraftDir receives .eml files when Host is empty.
	DraftDir string
	Timeout  time.Duration
}

// Mailer sends report mails over SMTP, or saves them as drafts when no SMTP
// host is configured.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Port <= 0 {
		cfg.Port = 587
	}
	if cfg.DraftDir == "" {
		cfg.DraftDir = "drafts"
	}
	return &Mailer{cfg: cfg, log: log}
}

func (m *Mailer) Send(ctx context.Context, msg entity.MailMessage) (entity.MailResult, error) {
	if err := ctx.Err(); err != nil {
		return entity.MailCancelled, err
	}
	gm, err := compose(msg)
	if err != nil {
		return entity.MailFailed, err
	}
	if m.cfg.Host == "" {
		return m.saveDraft(gm)
	}

	client, err := gomail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return entity.MailFailed, fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, gm); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return entity.MailCancelled, err
		}
		return entity.MailFailed, fmt.Errorf("send report: %w", err)
	}
	m.log.Info("report mailed", zap.String("host", m.cfg.Host), zap.Strings("to", msg.To))
	return entity.MailSent, nil
}

func (m *Mailer) clientOptions() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTimeout(m.cfg.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}
	return opts
}

func (m *Mailer) saveDraft(gm *gomail.Msg) (entity.MailResult, error) {
	if err := os.MkdirAll(m.cfg.DraftDir, 0o755); err != nil {
		return entity.MailFailed, fmt.Errorf("create draft dir: %w", err)
	}
	name := filepath.Join(m.cfg.DraftDir, fmt.Sprintf("report-%s.eml", uuid.NewString()))
	if err := gm.WriteToFile(name); err != nil {
		return entity.MailFailed, fmt.Errorf("write draft: %w", err)
	}
	m.log.Info("report saved as draft", zap.String("path", name))
	return entity.MailSaved, nil
}

func compose(msg entity.MailMessage) (*gomail.Msg, error) {
	gm := gomail.NewMsg()
	if err := gm.From(msg.From); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := gm.To(msg.To...); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	gm.Subject(msg.Subject)
	gm.SetBodyString(gomail.TypeTextPlain, msg.Body)
	if msg.AttachmentName != "" && len(msg.Attachment) > 0 {
		if err := gm.AttachReader(msg.AttachmentName, bytes.NewReader(msg.Attachment)); err != nil {
			return nil, fmt.Errorf("attach %s: %w", msg.AttachmentName, err)
		}
	}
	return gm, nil
}
