package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReminderNamespace prefixes every identifier this system registers with the
// notification queue, so a full scheduling pass can cancel exactly its own
// entries and nothing else.
const ReminderNamespace = "collection_"

// reminderLifetime is how long a fired reminder stays relevant before the
// expiration sweep removes it.
const reminderLifetime = 24 * time.Hour

// ReminderIdentifier builds the deterministic key for one reminder: category
// slug plus the ISO collection date. Scheduling the same occurrence twice
// always produces the same identifier, which is what makes re-scheduling
// idempotent.
func ReminderIdentifier(category StreamCategory, collectionDate time.Time) string {
	return fmt.Sprintf("%s%s_%s", ReminderNamespace, category, Day(collectionDate).Format("2006-01-02"))
}

// ReminderEntry is one scheduled local notification.
type ReminderEntry struct {
	FireAt         time.Time
	ExpiresAt      time.Time
	CollectionDate time.Time
	Identifier     string
	Category       StreamCategory
	Address        string
	Body           string
}

// NewReminderEntry builds the entry for a collection occurrence: it fires the
// evening before the collection at the user's chosen wall-clock time in loc
// (nil means the system zone) and expires 24 hours later. Occurrence dates
// are UTC calendar days; only the fire instant is zone-sensitive.
func NewReminderEntry(category StreamCategory, collectionDate time.Time, address string, at TimeOfDay, loc *time.Location) ReminderEntry {
	day := Day(collectionDate)
	fireAt := at.On(day.AddDate(0, 0, -1), loc)
	return ReminderEntry{
		Identifier:     ReminderIdentifier(category, day),
		FireAt:         fireAt,
		ExpiresAt:      fireAt.Add(reminderLifetime),
		Category:       category,
		CollectionDate: day,
		Address:        address,
		Body:           reminderBody(category, day),
	}
}

// Expired reports whether the entry is stale relative to the given instant.
func (e ReminderEntry) Expired(asOf time.Time) bool {
	return e.ExpiresAt.Before(asOf)
}

// InNamespace reports whether the entry belongs to this system.
func (e ReminderEntry) InNamespace() bool {
	return strings.HasPrefix(e.Identifier, ReminderNamespace)
}

func reminderBody(category StreamCategory, collectionDate time.Time) string {
	return fmt.Sprintf("%s Don't forget! Your %s bin will be collected tomorrow (%s). Please put your bin out tonight.",
		category.Emoji(), category.DisplayName(), collectionDate.Format("Jan 2, 2006"))
}

// TimeOfDay is a wall-clock time with no date attached, used for the user's
// preferred reminder time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// DefaultReminderTime is 6 PM, the reminder time used when the user has not
// chosen one.
var DefaultReminderTime = TimeOfDay{Hour: 18}

// ParseTimeOfDay parses "HH:MM" into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// On combines the time of day with a calendar day's date in the given zone.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, loc)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
