// Package mail delivers a finalized answer list as a PDF attachment to the
// fixed recipient over SMTP. One synchronous attempt per call, no queue and
// no send-time retry; the client retries by submitting again.
package mail

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/disckocrip/retro-backend/internal/config"
	"github.com/disckocrip/retro-backend/internal/pkg/formatter"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const (
	senderName     = "Survey System"
	mailSubject    = "New Answers Submission"
	mailBody       = "Please find the attached PDF containing the submitted answers."
	attachmentName = "answers"

	// Rendered documents are kept briefly so a client retry after a
	// transport failure reuses the buffer instead of re-rendering.
	renderCacheTTL     = 10 * time.Minute
	renderCacheCleanup = 15 * time.Minute
)

type Connector struct {
	cfg       config.MailConfig
	client    *gomail.Client
	formatter formatter.Formatter
	rendered  *gocache.Cache
	logger    *zap.Logger
}

// NewConnector builds the SMTP client. Missing credentials are tolerated:
// the client is built without auth and sends fail at the relay.
func NewConnector(cfg config.MailConfig, logger *zap.Logger) (*Connector, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Connector{
		cfg:       cfg,
		client:    client,
		formatter: formatter.NewPDFFormatter(),
		rendered:  gocache.New(renderCacheTTL, renderCacheCleanup),
		logger:    logger,
	}, nil
}

// Verify checks SMTP connectivity with bounded retries. Callers treat a
// failure as a warning, not a startup error: submissions will then fail at
// send time.
func (c *Connector) Verify(ctx context.Context) error {
	verifyOpts := append(c.cfg.Retry.ToRetryOptions(), retry.Context(ctx))

	err := retry.Do(func() error {
		if err := c.client.DialWithContext(ctx); err != nil {
			return err
		}
		return c.client.Close()
	}, verifyOpts...)
	if err != nil {
		return fmt.Errorf("verify smtp connection to %s:%d: %w", c.cfg.Host, c.cfg.Port, err)
	}

	c.logger.Info("smtp relay is ready to take messages",
		zap.String("host", c.cfg.Host),
		zap.Int("port", c.cfg.Port),
	)
	return nil
}

// Submit renders the answers into a document and dispatches it as an email
// attachment to the fixed recipient. Returns the message ID on success.
func (c *Connector) Submit(ctx context.Context, answers []string) (string, error) {
	document, err := c.render(answers)
	if err != nil {
		return "", fmt.Errorf("render answers document: %w", err)
	}

	messageID := uuid.New().String()

	msg := gomail.NewMsg()
	if err := msg.FromFormat(senderName, c.cfg.User); err != nil {
		return "", fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(c.cfg.Recipient); err != nil {
		return "", fmt.Errorf("set recipient: %w", err)
	}
	msg.SetMessageIDWithValue(messageID)
	msg.Subject(mailSubject)
	msg.SetBodyString(gomail.TypeTextPlain, mailBody)
	msg.AttachReader(attachmentName+c.formatter.FileExtension(), bytes.NewReader(document))

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("send answers email: %w", err)
	}

	c.logger.Info("answers email sent",
		zap.String("message_id", messageID),
		zap.Int("answer_count", len(answers)),
	)
	return messageID, nil
}

// render returns the formatted document, reusing a cached buffer when the
// identical list was rendered recently. The send itself is never cached.
func (c *Connector) render(answers []string) ([]byte, error) {
	key := renderKey(answers)
	if cached, ok := c.rendered.Get(key); ok {
		return cached.([]byte), nil
	}

	document, err := c.formatter.Format(answers)
	if err != nil {
		return nil, err
	}

	c.rendered.Set(key, document, gocache.DefaultExpiration)
	return document, nil
}

func renderKey(answers []string) string {
	sum := sha256.Sum256([]byte(strings.Join(answers, "\n")))
	return hex.EncodeToString(sum[:])
}
