package mail

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockConnector logs submissions instead of sending email. Used in local
// development without an SMTP relay.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (c *MockConnector) Verify(ctx context.Context) error {
	c.logger.Info("mock mail connector: verify ok")
	return nil
}

func (c *MockConnector) Submit(ctx context.Context, answers []string) (string, error) {
	messageID := uuid.New().String()
	c.logger.Info("mock mail connector: submission accepted",
		zap.String("message_id", messageID),
		zap.Strings("answers", answers),
	)
	return messageID, nil
}
