package notify

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/ruby4mag/riskradar-go-backend-ui/internal/models"
)

// EmailConfig holds SMTP connection details
type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	Sender   string
	Password string
}

var emailCfg EmailConfig

func InitEmail() {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}

	host := os.Getenv("SMTP_SERVER")
	if host == "" {
		host = "smtp.gmail.com"
	}

	emailCfg = EmailConfig{
		SMTPHost: host,
		SMTPPort: port,
		Sender:   os.Getenv("SENDER_EMAIL"),
		Password: os.Getenv("SENDER_PASSWORD"),
	}

	if !Enabled() {
		log.Println("Email notifications disabled: SENDER_EMAIL or SENDER_PASSWORD not configured")
	}
}

func Enabled() bool {
	return emailCfg.Sender != "" && emailCfg.Password != ""
}

// SendHighRiskNotification emails the assessment details of a flagged change
func SendHighRiskNotification(recipient string, change *models.ChangeRequest) error {
	if !Enabled() {
		return fmt.Errorf("email notifications are not configured on this server")
	}
	if change == nil || change.Assessment == nil {
		return fmt.Errorf("change has no AI assessment")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", emailCfg.Sender)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("HIGH RISK ALERT: %s", change.ChangeID))
	m.SetBody("text/html", buildHighRiskBody(change))

	d := gomail.NewDialer(emailCfg.SMTPHost, emailCfg.SMTPPort, emailCfg.Sender, emailCfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("High-risk notification email sent to %s for %s", recipient, change.ChangeID)
	return nil
}

func buildHighRiskBody(change *models.ChangeRequest) string {
	a := change.Assessment

	riskColor := "#f59e0b"
	switch a.RiskLevel {
	case "HIGH":
		riskColor = "#dc2626"
	case "CRITICAL":
		riskColor = "#ef4444"
	}

	confidence := "N/A"
	if a.Confidence != nil {
		confidence = fmt.Sprintf("%.0f/10", *a.Confidence)
	}

	var recs strings.Builder
	for _, rec := range a.Recommendations {
		recs.WriteString("<li style='margin-bottom: 10px;'>" + rec + "</li>")
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #991b1b; color: white; padding: 24px; border-radius: 8px 8px 0 0; text-align: center;">
    <h1 style="margin: 0; font-size: 22px;">HIGH RISK CHANGE DETECTED</h1>
  </div>
  <div style="background: #f8fafc; padding: 24px; border: 1px solid #e2e8f0;">
    <div style="background: #fef2f2; border-left: 4px solid %s; padding: 12px; margin-bottom: 20px;">
      <p style="margin: 0; color: #991b1b; font-weight: bold;">
        A change request has been flagged as %s RISK and requires review before proceeding.
      </p>
    </div>
    <table style="width: 100%%; border-collapse: collapse;">
      <tr><td style="padding: 8px 0; color: #64748b; font-weight: bold; width: 140px;">Change ID:</td><td>%s</td></tr>
      <tr><td style="padding: 8px 0; color: #64748b; font-weight: bold;">Risk Level:</td><td>%s</td></tr>
      <tr><td style="padding: 8px 0; color: #64748b; font-weight: bold;">Safety Score:</td><td>%.1f/10</td></tr>
      <tr><td style="padding: 8px 0; color: #64748b; font-weight: bold;">AI Confidence:</td><td>%s</td></tr>
      <tr><td style="padding: 8px 0; color: #64748b; font-weight: bold;">Timestamp:</td><td>%s</td></tr>
    </table>
    <h2 style="color: #1e293b; font-size: 16px;">AI Risk Assessment</h2>
    <p style="color: #475569;">%s</p>
    <h2 style="color: #1e293b; font-size: 16px;">Recommended Actions</h2>
    <ol style="color: #475569;">%s</ol>
  </div>
  <div style="background: #1e293b; color: #94a3b8; padding: 16px; border-radius: 0 0 8px 8px; text-align: center; font-size: 12px;">
    This is an automated notification from AI Risk Radar
  </div>
</body>
</html>`,
		riskColor, a.RiskLevel, change.ChangeID, a.RiskLevel, a.RiskScore, confidence,
		time.Now().Format("2006-01-02 15:04:05"), a.Summary, recs.String())
}
