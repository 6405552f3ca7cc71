package services

import (
	"fmt"
	"html"
	"log"

	"meetsplit-backend/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer struct{}

var mailer *Mailer

func GetMailer() *Mailer {
	if mailer == nil {
		mailer = &Mailer{}
	}
	return mailer
}

// SendSummary emails a room's plain-text recap as a simple HTML message.
func (m *Mailer) SendSummary(toEmail string, roomName string, shareText string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail("", toEmail)
	subject := fmt.Sprintf("%s summary from %s", roomName, config.AppConfig.AppName)
	htmlBody := buildSummaryEmailHTML(roomName, shareText)

	message := mail.NewSingleEmail(from, subject, to, shareText, htmlBody)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)

	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Summary email sent to %s", toEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

func buildSummaryEmailHTML(roomName, shareText string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">📋 %s Summary</h2>
		<pre style="background: #f8f9fa; border-radius: 8px; padding: 16px; white-space: pre-wrap; font-family: 'SF Mono', Menlo, monospace; font-size: 13px;">%s</pre>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, html.EscapeString(roomName), html.EscapeString(shareText), config.AppConfig.AppName)
}
