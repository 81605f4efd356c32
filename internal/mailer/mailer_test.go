package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/healthsync-service/internal/config"
)

func TestNew_FallsBackToLogMailerWithoutHost(t *testing.T) {
	m := New(config.EmailConfig{}, zap.NewNop())
	_, ok := m.(*logMailer)
	require.True(t, ok, "missing EMAIL_HOST must select the logging mailer")

	require.NoError(t, m.Send(context.Background(), "u@x.com", "subject", "body"))
}

func TestNew_SelectsSMTPWithHost(t *testing.T) {
	m := New(config.EmailConfig{Host: "smtp.example.com", Port: "587"}, zap.NewNop())
	_, ok := m.(*smtpMailer)
	require.True(t, ok)
}

func TestSMTPSend_RespectsCanceledContext(t *testing.T) {
	m := &smtpMailer{cfg: config.EmailConfig{Host: "smtp.invalid", Port: "587", From: "noreply@x.com"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, "u@x.com", "subject", "body")
	require.Error(t, err, "dial against a canceled context must fail immediately")
}
