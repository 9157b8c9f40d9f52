package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// PasswordResetMailer sends the password-reset link over SMTP. It is an
// opaque notifier: failures are returned to the caller, never retried.
type PasswordResetMailer struct {
	host         string
	port         string
	username     string
	password     string
	from         string
	frontendBase string
}

func NewPasswordResetMailer(host, port, username, password, from, frontendBase string) *PasswordResetMailer {
	return &PasswordResetMailer{
		host:         strings.TrimSpace(host),
		port:         strings.TrimSpace(port),
		username:     username,
		password:     password,
		from:         strings.TrimSpace(from),
		frontendBase: strings.TrimRight(strings.TrimSpace(frontendBase), "/"),
	}
}

// SendPasswordReset mails the plaintext reset token embedded in a link to the
// frontend reset page.
func (m *PasswordResetMailer) SendPasswordReset(ctx context.Context, email, plainToken string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if m.host == "" || m.port == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	link := fmt.Sprintf("%s/resetpassword/%s", m.frontendBase, plainToken)
	subject := "Recuperación de contraseña"
	body := fmt.Sprintf(
		"Has solicitado restablecer tu contraseña.\n\nHaz clic en el siguiente enlace para continuar:\n\n%s\n\nEl enlace expira en unos minutos. Si no solicitaste este cambio, ignora este correo.",
		link,
	)

	message := strings.Builder{}
	message.WriteString(fmt.Sprintf("From: Task Manager <%s>\r\n", m.from))
	message.WriteString(fmt.Sprintf("To: %s\r\n", email))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	message.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	message.WriteString(body)
	message.WriteString("\r\n")

	addr := net.JoinHostPort(m.host, m.port)
	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(message.String()))
}
