package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"schedbot/internal/google"
)

// Client wraps the Google Calendar service for one user account.
type Client struct {
	svc           *calendar.Service
	account       string
	tokenProvider google.TokenProvider
}

var _ Gateway = (*Client)(nil)

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	provider := google.NewFileTokenProvider()
	return provider.HasTokenForAccount(account)
}

// GetAuthURLForAccount returns the OAuth URL to authorize the account.
func GetAuthURLForAccount(account string) string {
	return google.GetAuthURL()
}

// NewClientForAccountWithProvider creates a Calendar client for a specific
// account, retrieving the OAuth token from the given provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:           svc,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// NewClientForAccount creates a Calendar client for a specific account
// using the default file-based token provider.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// ListEvents lists non-recurring-expanded events in a time range, ordered
// chronologically by start time. The scheduling core relies on that order
// for first-match selection.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	events, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var out []Event
	for _, event := range events.Items {
		out = append(out, toEvent(event))
	}
	return out, nil
}

// GetEvent retrieves a specific event by ID. A missing event is reported
// as ErrNotFound.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	event, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, wrapNotFound(err, "failed to get event")
	}

	out := toEvent(event)
	return &out, nil
}

// InsertEvent creates a new calendar event. When input.WithConference is
// set the provider is asked to generate conferencing data; the resulting
// join link is available on the returned event.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, input EventInput) (*Event, error) {
	if input.TimeZone == "" {
		input.TimeZone = "UTC"
	}

	event := &calendar.Event{
		Summary: input.Summary,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: input.TimeZone,
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{
			Email: email,
		})
	}

	call := c.svc.Events.Insert(calendarID, event).Context(ctx)
	if input.WithConference {
		call = call.ConferenceDataVersion(1)
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		}
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	out := toEvent(created)
	return &out, nil
}

// UpdateEventTime moves an existing event to a new start/end, leaving the
// rest of the event untouched. Conferencing data is preserved.
func (c *Client) UpdateEventTime(ctx context.Context, calendarID, eventID string, start, end time.Time) (*Event, error) {
	existing, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, wrapNotFound(err, "failed to get existing event")
	}

	existing.Start = &calendar.EventDateTime{
		DateTime: start.Format(time.RFC3339),
		TimeZone: "UTC",
	}
	existing.End = &calendar.EventDateTime{
		DateTime: end.Format(time.RFC3339),
		TimeZone: "UTC",
	}

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	out := toEvent(updated)
	return &out, nil
}

// DeleteEvent deletes a calendar event. Deleting a missing event reports
// ErrNotFound.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return wrapNotFound(err, "failed to delete event")
	}
	return nil
}

// wrapNotFound maps Google API 404/410 responses onto ErrNotFound so the
// core can distinguish a missing event from a gateway failure.
func wrapNotFound(err error, msg string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
