package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/traveltrek/models"
)

// Fallback answers a handful of common questions from the membership data
// alone. It never fails.
type Fallback struct {
	brand Brand
}

func NewFallback(b Brand) *Fallback {
	return &Fallback{brand: b}
}

// Reply returns the canned answer that best matches message.
func (f *Fallback) Reply(c models.ChatContext, message string) string {
	msg := strings.ToLower(message)
	m := c.Membership
	active := m != nil && (c.Status == models.StatusActive || c.Status == models.StatusExpired)

	switch {
	case strings.Contains(msg, "days") && (strings.Contains(msg, "left") || strings.Contains(msg, "remaining")):
		if active {
			return fmt.Sprintf("You have %d travel days remaining out of %d total days in your %s.",
				m.RemainingDays(), m.EntitledDays(), m.PlanType.DisplayName())
		}
		return "Your membership is not yet activated. Please contact our support team to activate your membership."

	case strings.Contains(msg, "expire") || strings.Contains(msg, "expiry"):
		if m != nil && m.EndDate != nil {
			return fmt.Sprintf("Your membership expires on %s. Make sure to use your remaining travel days before then!",
				formatDate(*m.EndDate))
		}
		return "Your membership expiry date will be set once your membership is activated."

	case strings.Contains(msg, "destination") && strings.Contains(msg, "available"):
		month := c.Now.Month().String()
		var names []string
		for _, d := range c.Destinations {
			if d.Status == models.DestinationAvailable && d.IsBestMonth(c.Now) {
				names = append(names, d.Name)
			}
		}
		if len(names) > 0 {
			return fmt.Sprintf("Great news! The following destinations are ideal for visiting in %s: %s. Would you like more details about any of them?",
				month, strings.Join(names, ", "))
		}
		return fmt.Sprintf("Currently, the best time to visit most of our destinations is different from %s. Check the Destinations section for seasonal availability.", month)

	case strings.Contains(msg, "membership") && strings.Contains(msg, "work"):
		return fmt.Sprintf(`With %s membership, you get fixed travel days to visit our curated destinations during optimal seasons.

How it works:
1. Choose a 1-Year, 3-Year or 5-Year membership
2. Browse our curated destinations
3. Contact support to plan your travel
4. Enjoy stress-free adventures!`, f.brand.CompanyName)

	case strings.Contains(msg, "don't use") || strings.Contains(msg, "unused"):
		return "Unused travel days do not carry over to the next year. If you need help planning, our support team is here to assist."
	}

	reply := `Thank you for your message! I'm here to help with questions about your membership, travel days, and destinations.

Some things I can help with:
- How many days do I have left?
- When does my membership expire?
- Which destinations are available this month?
- How does membership work?`
	if f.brand.SupportEmail != "" {
		reply += fmt.Sprintf("\n\nFor booking inquiries, our support team at %s will be happy to assist!", f.brand.SupportEmail)
	}
	return reply
}

// Stream emits the fallback reply as a single chunk.
func (f *Fallback) Stream(_ context.Context, c models.ChatContext, message string, onChunk func(string) error) error {
	return onChunk(f.Reply(c, message))
}
