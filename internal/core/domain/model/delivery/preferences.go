package delivery

import (
	"strings"
	"time"
	// Zone lookups must not depend on the host having a zoneinfo database.
	_ "time/tzdata"

	"vacancybot/internal/core/domain/model/vacancy"
	"vacancybot/internal/pkg/errs"
)

const (
	// MaxSentVacancyIDs bounds the dedup history; the oldest ids are evicted first.
	MaxSentVacancyIDs = 200
	// DefaultTimezone applies when the stored zone is empty or unknown.
	DefaultTimezone = "Europe/Moscow"

	scheduleLayout = "15:04"
)

// SkipReason explains why a user was not served on a tick.
type SkipReason string

const (
	NotSkipped            SkipReason = ""
	NotScheduled          SkipReason = "not_scheduled"
	NotDue                SkipReason = "not_due"
	AlreadyDeliveredToday SkipReason = "already_delivered_today"
	NoStoredQuery         SkipReason = "no_stored_query"
	NothingFound          SkipReason = "nothing_found"
	NothingNew            SkipReason = "nothing_new"
)

// Preferences is the delivery state of one user. Values are immutable; the
// mutating operations return a new Preferences.
type Preferences struct {
	scheduleTime string
	timezone     string
	sentIDs      []string
	lastSentAt   *time.Time
}

// NewPreferences validates user input. An empty scheduleTime disables delivery;
// otherwise it must be HH:MM. An empty timezone means DefaultTimezone.
func NewPreferences(scheduleTime, timezone string) (Preferences, error) {
	scheduleTime = strings.TrimSpace(scheduleTime)
	if scheduleTime != "" {
		parsed, err := time.Parse(scheduleLayout, scheduleTime)
		if err != nil {
			return Preferences{}, errs.NewValueIsInvalidErrorWithCause("scheduleTime", err)
		}
		scheduleTime = parsed.Format(scheduleLayout)
	}

	timezone = strings.TrimSpace(timezone)
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return Preferences{}, errs.NewValueIsInvalidErrorWithCause("timezone", err)
		}
	}

	return Preferences{scheduleTime: scheduleTime, timezone: timezone}, nil
}

// RestorePreferences rebuilds stored state without validating it. Bad stored
// values degrade gracefully: an unknown zone falls back to DefaultTimezone and
// a malformed schedule simply never matches the clock.
func RestorePreferences(scheduleTime, timezone string, sentIDs []string, lastSentAt *time.Time) Preferences {
	return Preferences{
		scheduleTime: strings.TrimSpace(scheduleTime),
		timezone:     strings.TrimSpace(timezone),
		sentIDs:      capIDs(append([]string(nil), sentIDs...)),
		lastSentAt:   lastSentAt,
	}
}

func (p Preferences) ScheduleTime() string {
	return p.scheduleTime
}

func (p Preferences) Timezone() string {
	return p.timezone
}

// SentIDs returns a copy of the dedup history, oldest first.
func (p Preferences) SentIDs() []string {
	return append([]string(nil), p.sentIDs...)
}

func (p Preferences) LastSentAt() *time.Time {
	return p.lastSentAt
}

// Scheduled reports whether the user opted into daily delivery.
func (p Preferences) Scheduled() bool {
	return p.scheduleTime != ""
}

// Location resolves the user's zone.
func (p Preferences) Location() *time.Location {
	if p.timezone != "" {
		if loc, err := time.LoadLocation(p.timezone); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Gate decides whether a delivery may run at now. force bypasses the clock
// match and the once-per-day rule but never the opt-in.
func (p Preferences) Gate(now time.Time, force bool) (bool, SkipReason) {
	if !p.Scheduled() {
		return false, NotScheduled
	}
	if force {
		return true, NotSkipped
	}

	local := now.In(p.Location())
	if local.Format(scheduleLayout) != p.scheduleTime {
		return false, NotDue
	}
	if p.deliveredOn(local) {
		return false, AlreadyDeliveredToday
	}
	return true, NotSkipped
}

// deliveredOn reports whether the last delivery falls on local's calendar date
// in local's zone.
func (p Preferences) deliveredOn(local time.Time) bool {
	if p.lastSentAt == nil {
		return false
	}
	last := p.lastSentAt.In(local.Location())
	ly, lm, ld := last.Date()
	ny, nm, nd := local.Date()
	return ly == ny && lm == nm && ld == nd
}

// Unsent drops items already delivered, keeping order. With force nothing is dropped.
func (p Preferences) Unsent(items []vacancy.Vacancy, force bool) []vacancy.Vacancy {
	if force {
		return items
	}
	sent := make(map[string]struct{}, len(p.sentIDs))
	for _, id := range p.sentIDs {
		sent[id] = struct{}{}
	}
	fresh := make([]vacancy.Vacancy, 0, len(items))
	for _, item := range items {
		if _, ok := sent[item.ExternalID]; ok {
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh
}

// RecordDelivery appends ids to the history, keeps the newest
// MaxSentVacancyIDs of them and stamps the delivery time in UTC.
// An id sent again moves to the tail so it is evicted last.
func (p Preferences) RecordDelivery(ids []string, now time.Time) Preferences {
	fresh := make(map[string]struct{}, len(ids))
	tail := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := fresh[id]; ok {
			continue
		}
		fresh[id] = struct{}{}
		tail = append(tail, id)
	}

	merged := make([]string, 0, len(p.sentIDs)+len(tail))
	for _, id := range p.sentIDs {
		if _, ok := fresh[id]; !ok {
			merged = append(merged, id)
		}
	}
	merged = append(merged, tail...)

	sentAt := now.UTC()
	return Preferences{
		scheduleTime: p.scheduleTime,
		timezone:     p.timezone,
		sentIDs:      capIDs(merged),
		lastSentAt:   &sentAt,
	}
}

func capIDs(ids []string) []string {
	if len(ids) <= MaxSentVacancyIDs {
		return ids
	}
	return append([]string(nil), ids[len(ids)-MaxSentVacancyIDs:]...)
}
