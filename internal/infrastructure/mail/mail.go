package mail

import (
	"context"
	"fmt"

	"github.com/jimlawless/whereami"
	"github.com/soil2spoon/go-backend/internal/cfg"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
	gomail "github.com/wneessen/go-mail"
)

// Mailer отправляет служебные письма через SMTP. Без настроенного хоста
// отправка отключена, Enabled возвращает false.
type Mailer struct {
	cfg    *cfg.MailCfg
	logger logger.Logger
}

func NewMailer(cfg *cfg.MailCfg, logger logger.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
	}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendPasswordReset отправляет письмо со ссылкой для сброса пароля.
func (m *Mailer) SendPasswordReset(ctx context.Context, email, resetLink string) error {
	msg := gomail.NewMsg()

	if err := msg.From(m.cfg.From); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := msg.To(email); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	msg.Subject("Reset your password")
	msg.SetBodyString(gomail.TypeTextHTML, passwordResetHTML(resetLink))

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
		gomail.WithUsername(m.cfg.User),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	m.logger.Infof("Sending password reset email to %s", email)

	return client.DialAndSendWithContext(ctx, msg)
}

func passwordResetHTML(resetLink string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Reset your password</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Reset your password</h2>
		<p>We received a request to reset your password.</p>
		<p>
			<a href="%s" style="display: inline-block; padding: 10px 20px; background-color: #2e7d32; color: white; text-decoration: none; border-radius: 5px;">
				Choose a new password
			</a>
		</p>
		<p>The link is valid for one hour. If you did not request this, you can safely ignore this email.</p>
	</div>
</body>
</html>`, resetLink)
}
