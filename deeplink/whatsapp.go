// Package deeplink builds the WhatsApp links the booking form opens.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rizfc/restaurant-site/schema"
)

const (
	baseURL = "https://wa.me/"

	// NoMessage stands in for an absent or blank booking message.
	NoMessage = "None"
)

// BookingText renders the chat message announcing a booking request.
func BookingText(d schema.Draft) string {
	var b strings.Builder
	b.WriteString("*New Booking Request*\n\n")
	fmt.Fprintf(&b, "*Name:* %s\n", d.Name)
	fmt.Fprintf(&b, "*Date:* %s\n", d.Date)
	fmt.Fprintf(&b, "*Time:* %s\n", d.Time)
	fmt.Fprintf(&b, "*Guests:* %d\n", d.Guests)
	fmt.Fprintf(&b, "*Phone:* %s\n", d.Phone)
	fmt.Fprintf(&b, "*Email:* %s\n", d.Email)
	fmt.Fprintf(&b, "*Message:* %s", d.MessageOr(NoMessage))
	return b.String()
}

// BookingURL returns a chat link to number pre-filled with BookingText(d).
func BookingURL(number string, d schema.Draft) string {
	return ChatURL(number) + "?text=" + escape(BookingText(d))
}

// ChatURL returns a plain chat link to number. Anything that is not a digit,
// such as "+", spaces or dashes, is dropped.
func ChatURL(number string) string {
	return baseURL + Digits(number)
}

func Digits(number string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
}

// escape percent-encodes s for a query value, spaces included.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
