// Package calendar provides the gateway to a remote per-user event store,
// backed by the Google Calendar API.
//
// The Gateway interface is the narrow surface the scheduling core consumes:
// list, get, insert, update and delete on one user's calendar. Client is
// the Google-backed implementation; tests substitute their own.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClientForAccount(ctx, "user1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events, err := client.ListEvents(ctx, "primary", time.Now(), time.Now().AddDate(0, 0, 7))
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
