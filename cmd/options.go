package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"schedbot/internal/scheduler"
)

// schedulerOptions bundles the roster tuning flags shared by ask and serve.
type schedulerOptions struct {
	contactsFile  string
	lookaheadDays int
	slotMinutes   int
}

func (o *schedulerOptions) build(logger *slog.Logger) (scheduler.Options, error) {
	opts := scheduler.Options{Logger: logger}
	if o.lookaheadDays > 0 {
		opts.Lookahead = time.Duration(o.lookaheadDays) * 24 * time.Hour
	}
	if o.slotMinutes > 0 {
		opts.SlotMinimum = time.Duration(o.slotMinutes) * time.Minute
	}
	if o.contactsFile != "" {
		directory, err := loadContactsFile(o.contactsFile)
		if err != nil {
			return scheduler.Options{}, err
		}
		opts.Contacts = directory
	}
	return opts, nil
}

// loadContactsFile reads a JSON object mapping attendee names to email
// addresses, replacing the built-in directory.
func loadContactsFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts file: %w", err)
	}
	var directory map[string]string
	if err := json.Unmarshal(data, &directory); err != nil {
		return nil, fmt.Errorf("invalid contacts file %s: %w", path, err)
	}
	if len(directory) == 0 {
		return nil, fmt.Errorf("contacts file %s maps no names", path)
	}
	return directory, nil
}
