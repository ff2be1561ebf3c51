// Package email delivers invitation tokens to invitees.
package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmynk/lunchpoll/internal/models"
)

// Sender delivers one invitation. Implementations must be safe for
// concurrent use. Sending the same invitation twice resends the same token.
type Sender interface {
	Send(ctx context.Context, inv models.Invitation) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, inv models.Invitation) error

// Send calls f(ctx, inv).
func (f SenderFunc) Send(ctx context.Context, inv models.Invitation) error {
	return f(ctx, inv)
}

// Message is a rendered invitation email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// JoinURL builds the link an invitee follows to redeem the token.
func JoinURL(baseURL string, inv models.Invitation) string {
	q := url.Values{}
	q.Set("group", fmt.Sprint(inv.GroupID))
	q.Set("token", inv.Token)
	return strings.TrimRight(baseURL, "/") + "/join?" + q.Encode()
}

// Render builds the invitation email for inv.
func Render(baseURL string, inv models.Invitation) Message {
	var b strings.Builder
	b.WriteString("You have been invited to help pick where the group goes next.\r\n\r\n")
	fmt.Fprintf(&b, "Join the vote: %s\r\n\r\n", JoinURL(baseURL, inv))
	fmt.Fprintf(&b, "Or enter this code in the app: %s\r\n", inv.Token)
	return Message{
		To:      inv.Email,
		Subject: "You're invited to vote",
		Body:    b.String(),
	}
}
