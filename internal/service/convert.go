package service

import (
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	apperrors "github.com/mmynk/lunchpoll/internal/errors"
	"github.com/mmynk/lunchpoll/internal/groups"
	"github.com/mmynk/lunchpoll/internal/models"
	"github.com/mmynk/lunchpoll/pkg/api"
)

var errNoPrincipal = errors.New("no authenticated user on request")

// toConnectError maps core errors onto Connect codes. Validation failures
// carry their field errors as a detail.
func toConnectError(err error) error {
	var de *groups.DeliveryError
	if errors.As(err, &de) {
		return connect.NewError(connect.CodeUnavailable, err)
	}

	code := apperrors.CodeOf(err)
	connectErr := connect.NewError(code.ConnectCode(), err)
	if code == apperrors.CodeBadRequest {
		if fields := apperrors.MetadataOf(err); len(fields) > 0 {
			detail, derr := api.FieldErrorsDetail(fields)
			if derr != nil {
				slog.Warn("Failed to attach field errors", "error", derr)
			} else {
				connectErr.AddDetail(detail)
			}
		}
	}
	return connectErr
}

func toAPIGroup(g *models.Group) api.Group {
	return api.Group{
		ID:          g.ID,
		GroupName:   g.GroupName,
		OwnerID:     g.OwnerID,
		VoteEndDate: g.VoteEndDate.UTC().Format(time.RFC3339),
		MinPrice:    g.MinPrice,
		MaxPrice:    g.MaxPrice,
	}
}

func toAPIInvitation(inv *models.Invitation) api.Invitation {
	return api.Invitation{GroupID: inv.GroupID, Email: inv.Email}
}

func toAPISuggestion(s models.Suggestion) api.Suggestion {
	return api.Suggestion{ID: s.ID, PollID: s.PollID, Details: s.Details, Votes: s.Votes}
}

func toAPIPoll(p *models.PollDetail) api.Poll {
	suggestions := make([]api.Suggestion, len(p.Suggestions))
	for i, s := range p.Suggestions {
		suggestions[i] = toAPISuggestion(s)
	}
	return api.Poll{
		ID:          p.ID,
		GroupID:     p.GroupID,
		UserID:      p.UserID,
		GroupName:   p.GroupName,
		Username:    p.Username,
		Suggestions: suggestions,
	}
}
