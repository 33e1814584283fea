package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/traveltrek/models"
)

// Brand is the company contact data quoted in prompts and fallback replies.
type Brand struct {
	CompanyName  string
	SupportEmail string
	SupportPhone string
}

// SystemPrompt is the fixed instruction block sent with every request.
func SystemPrompt(b Brand) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a polite, honest travel assistant for %s, a membership-based travel company.\n\n", b.CompanyName)
	sb.WriteString(`IMPORTANT RULES:
1. Respond ONLY using company policies and the user data provided to you.
2. Never promise guaranteed bookings or peak season availability.
3. If unsure about anything, say that the support team will assist further.
4. Be friendly and transparent. Keep responses concise but helpful.
5. Always refer to travel days as "membership days" or "travel days".

COMPANY POLICIES:
- Members purchase membership plans: 1-Year, 3-Year or 5-Year, each with a fixed number of travel days.
- Travel is allowed only to curated destinations during their best months.
- Unused days do NOT carry over to the next year.
- Members cannot book trips directly; they must contact support.
- Availability depends on season and destination capacity.
`)
	sb.WriteString("\nSUPPORT CONTACT:\n")
	if b.SupportEmail != "" {
		fmt.Fprintf(&sb, "- Email: %s\n", b.SupportEmail)
	}
	if b.SupportPhone != "" {
		fmt.Fprintf(&sb, "- Phone: %s\n", b.SupportPhone)
	}
	return sb.String()
}

const dateLayout = "2 January 2006"

// BuildContext renders the member's membership and the destination catalog
// as plain text for the model.
func BuildContext(c models.ChatContext) string {
	var sb strings.Builder
	sb.WriteString("CURRENT USER DATA:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", c.UserName)

	if m := c.Membership; m != nil {
		fmt.Fprintf(&sb, "- Membership Plan: %s\n", m.PlanType.DisplayName())
		fmt.Fprintf(&sb, "- Membership Status: %s\n", c.Status)
		fmt.Fprintf(&sb, "- Total Days: %d\n", m.EntitledDays())
		fmt.Fprintf(&sb, "- Used Days: %d\n", m.UsedDays)
		fmt.Fprintf(&sb, "- Remaining Days: %d\n", m.RemainingDays())
		if m.StartDate != nil {
			fmt.Fprintf(&sb, "- Start Date: %s\n", m.StartDate.Format(dateLayout))
		}
		if m.EndDate != nil {
			fmt.Fprintf(&sb, "- Expiry Date: %s\n", m.EndDate.Format(dateLayout))
		}
	} else {
		sb.WriteString("- Membership: Not yet activated\n")
	}

	fmt.Fprintf(&sb, "\nCURRENT MONTH: %s\n", c.Now.Month())
	sb.WriteString("\nAVAILABLE DESTINATIONS:\n")
	for _, d := range c.Destinations {
		fmt.Fprintf(&sb, "- %s: %d days, %s difficulty", d.Name, d.DurationDays, d.Difficulty)
		if d.IsBestMonth(c.Now) {
			sb.WriteString(" (GOOD TIME TO VISIT)")
		}
		sb.WriteString("\n")
		if len(d.BestMonths) > 0 {
			fmt.Fprintf(&sb, "  Best months: %s\n", strings.Join(d.BestMonths, ", "))
		}
	}

	return sb.String()
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
