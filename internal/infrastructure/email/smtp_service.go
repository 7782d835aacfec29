package email

import (
	"context"
	"fmt"
	"net/smtp"
)

// PlaylistExportData is what the export worker hands the mailer.
type PlaylistExportData struct {
	TargetEmail  string
	PlaylistName string
	AttachedJSON []byte
}

type Sender interface {
	SendPlaylistExport(ctx context.Context, data PlaylistExportData) error
}

type smtpSender struct {
	addr string
	from string
}

// NewSMTPSender works against any SMTP endpoint; in development that is
// usually a mailcatcher on :1025.
func NewSMTPSender(host, port, from string) Sender {
	return &smtpSender{
		addr: host + ":" + port,
		from: from,
	}
}

func (s *smtpSender) SendPlaylistExport(ctx context.Context, data PlaylistExportData) error {
	subject := fmt.Sprintf("Ekspor playlist: %s", data.PlaylistName)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: application/json\r\n\r\n%s",
		s.from, data.TargetEmail, subject, data.AttachedJSON))

	if err := smtp.SendMail(s.addr, nil, s.from, []string{data.TargetEmail}, msg); err != nil {
		return fmt.Errorf("send export email: %w", err)
	}
	return nil
}
