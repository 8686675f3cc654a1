package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email through sendgrid. No-op when no API key
// is configured (local development).
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("Email disabled, skipping send to %s: %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Gyan Setu", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", getEmailTemplate(subject, htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the platform email layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #FFB300; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>GYAN SETU</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Gyan Setu. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered student
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Gyan Setu</strong>! Your account has been created.</p>
		<p>Your Level 1 course is already unlocked. Watch the videos, read the study material and take the quiz to earn your first qualification.</p>
	`, name)

	go SendEmail(email, name, "Welcome to Gyan Setu", body)
}

// SendOTPEmail delivers a verification code
func SendOTPEmail(email, name, otp string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your verification code is:</p>
		<div class="info-box"><strong style="font-size: 24px; letter-spacing: 4px;">%s</strong></div>
		<p>This code expires in 10 minutes. Do not share it with anyone.</p>
	`, name, otp)

	go SendEmail(email, name, "Your Verification Code", body)
}

// SendLevelUnlockedEmail announces a newly unlocked level
func SendLevelUnlockedEmail(email, name, classLevel, level string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Good news! Level %s for class %s is now unlocked.</p>
		<p>Log in to start the new lessons and keep your progress going.</p>
	`, name, level, classLevel)

	go SendEmail(email, name, "A New Level is Unlocked", body)
}

// SendQuizResultEmail reports a quiz outcome to the student
func SendQuizResultEmail(email, name, courseTitle string, score int, passed bool) {
	outcome := "you did not reach the passing mark this time. You can attempt the quiz again."
	if passed {
		outcome = "congratulations, you passed and the level is now completed!"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your quiz for <strong>%s</strong> has been graded.</p>
		<div class="info-box">Score: <strong>%d%%</strong></div>
		<p>%s</p>
	`, name, courseTitle, score, outcome)

	go SendEmail(email, name, "Quiz Result: "+courseTitle, body)
}

// SendNotificationEmail delivers an admin notification copy by mail
func SendNotificationEmail(email, name, title, message string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		%s
	`, name, message)

	go SendEmail(email, name, title, body)
}
