package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/models"
)

// Brand carries the company details printed into every message.
type Brand struct {
	CompanyName    string
	SupportEmail   string
	SupportPhone   string
	MemberLoginURL string
}

func BrandFromConfig(cfg config.App) Brand {
	return Brand{
		CompanyName:    cfg.CompanyName,
		SupportEmail:   cfg.SupportEmail,
		SupportPhone:   cfg.SupportPhone,
		MemberLoginURL: cfg.MemberLoginURL,
	}
}

var activationHTML = template.Must(template.New("activation").Parse(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
<h1 style="color: #667EEA; text-align: center;">Welcome to {{.Brand.CompanyName}}!</h1>
<p>Hi {{.Name}},</p>
<p>Your membership request has been approved.</p>
<div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0;">
<p style="margin: 0; color: #718096; font-size: 14px;">Your Membership ID</p>
<p style="margin: 10px 0 0 0; font-size: 24px; font-weight: bold; letter-spacing: 2px;">{{.MembershipID}}</p>
</div>
<p><strong>Plan:</strong> {{.PlanName}}</p>
<p>Log in with your Membership ID to see your dashboard.</p>
{{if .Brand.MemberLoginURL}}<p style="text-align: center;"><a href="{{.Brand.MemberLoginURL}}">Login to Dashboard</a></p>{{end}}
{{if .Brand.SupportEmail}}<p style="font-size: 12px; color: #a0aec0; text-align: center;">Questions? Contact {{.Brand.SupportEmail}}</p>{{end}}
</div>`))

var welcomeHTML = template.Must(template.New("welcome").Parse(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
<h1>Welcome to {{.Brand.CompanyName}}, {{.Name}}!</h1>
<p>We are thrilled to have you join our community of travelers.</p>
<p>Choose a membership plan to start planning your trips. Once our team approves it you will receive your Membership ID.</p>
<p>Best regards,<br>The {{.Brand.CompanyName}} Team</p>
</div>`))

type templateData struct {
	Brand        Brand
	Name         string
	MembershipID string
	PlanName     string
}

func render(t *template.Template, data templateData) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

// ActivationMessages builds the email, WhatsApp and push notifications
// sent when a membership is activated. Channels without a recipient are
// skipped.
func ActivationMessages(b Brand, user models.User, membershipID string, plan models.PlanType) []models.Notification {
	data := templateData{Brand: b, Name: user.Name, MembershipID: membershipID, PlanName: plan.DisplayName()}

	out := []models.Notification{{
		Kind:      models.NotificationActivation,
		Channel:   models.ChannelEmail,
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Welcome to %s - Your Membership ID", b.CompanyName),
		Body: fmt.Sprintf("Hi %s,\n\nYour membership has been activated.\nMembership ID: %s\nPlan: %s\n",
			user.Name, membershipID, data.PlanName),
		HTML: render(activationHTML, data),
	}}

	if user.Phone != "" {
		body := fmt.Sprintf("Congratulations %s!\n\nYour %s membership has been activated.\n\nMembership ID: %s\nPlan: %s\n\nUse this Membership ID to log in.",
			user.Name, b.CompanyName, membershipID, data.PlanName)
		if b.MemberLoginURL != "" {
			body += "\nLogin at: " + b.MemberLoginURL
		}
		if b.SupportEmail != "" {
			body += "\nNeed help? Contact " + b.SupportEmail
		}
		out = append(out, models.Notification{
			Kind:      models.NotificationActivation,
			Channel:   models.ChannelWhatsApp,
			Recipient: user.Phone,
			Body:      body,
		})
	}

	if user.FCMToken != nil && *user.FCMToken != "" {
		out = append(out, models.Notification{
			Kind:      models.NotificationActivation,
			Channel:   models.ChannelPush,
			Recipient: *user.FCMToken,
			Subject:   "Membership activated",
			Body:      fmt.Sprintf("Your Membership ID is %s. Happy travels!", membershipID),
			Data:      map[string]string{"type": "activation", "membershipId": membershipID},
		})
	}

	return out
}

// WelcomeMessages builds the onboarding email and push notification.
func WelcomeMessages(b Brand, user models.User) []models.Notification {
	out := []models.Notification{{
		Kind:      models.NotificationWelcome,
		Channel:   models.ChannelEmail,
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Welcome to %s!", b.CompanyName),
		Body:      fmt.Sprintf("Hi %s,\n\nWelcome to %s! Choose a membership plan to start planning your trips.\n", user.Name, b.CompanyName),
		HTML:      render(welcomeHTML, templateData{Brand: b, Name: user.Name}),
	}}

	if user.FCMToken != nil && *user.FCMToken != "" {
		out = append(out, models.Notification{
			Kind:      models.NotificationWelcome,
			Channel:   models.ChannelPush,
			Recipient: *user.FCMToken,
			Subject:   fmt.Sprintf("Welcome to %s!", b.CompanyName),
			Body:      fmt.Sprintf("Hi %s, your adventure begins now. Explore destinations and plan your travels!", user.Name),
			Data:      map[string]string{"type": "welcome", "screen": "home"},
		})
	}

	return out
}

var otpPurposeText = map[string]string{
	models.PurposeForgotPassword: "reset your password",
	models.PurposeName:           "change your name",
	models.PurposePhone:          "change your phone number",
	models.PurposePassword:       "change your password",
}

// OTPMessage builds the email carrying a one-time code.
func OTPMessage(b Brand, user models.User, purpose, code string, validFor string) models.Notification {
	action, ok := otpPurposeText[purpose]
	if !ok {
		action = "confirm your request"
	}

	return models.Notification{
		Kind:      models.NotificationOTP,
		Channel:   models.ChannelEmail,
		Recipient: user.Email,
		Subject:   fmt.Sprintf("%s verification code", b.CompanyName),
		Body: fmt.Sprintf("Hi %s,\n\nUse the code %s to %s. The code is valid for %s.\n\nIf you did not request this, you can ignore this email.\n",
			user.Name, code, action, validFor),
	}
}

// RejectionMessage builds the email sent when a pending membership is
// declined.
func RejectionMessage(b Brand, user models.User, plan models.PlanType, reason string) models.Notification {
	body := fmt.Sprintf("Hi %s,\n\nWe are sorry, your request for the %s could not be approved.\n", user.Name, plan.DisplayName())
	if reason != "" {
		body += "\nReason: " + reason + "\n"
	}
	if b.SupportEmail != "" {
		body += "\nFor questions contact " + b.SupportEmail + ".\n"
	}

	return models.Notification{
		Kind:      models.NotificationRejection,
		Channel:   models.ChannelEmail,
		Recipient: user.Email,
		Subject:   fmt.Sprintf("Your %s membership request", b.CompanyName),
		Body:      body,
	}
}
