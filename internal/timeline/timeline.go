// Package timeline derives the customer-facing progress view of a ticket
// from its status history and public events. The build is a pure transform:
// no I/O, no clock, identical inputs always yield identical output.
package timeline

import (
	"time"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// Step is one entry of the derived progress view. Recomputed on every read;
// never persisted.
type Step struct {
	Status    domain.TicketStatus
	Label     string
	Completed bool
	Current   bool
	Date      *time.Time
	Note      *string
}

// Build produces the ordered canonical steps for the ticket's type, marking
// completion and attaching dates and notes from the history and event logs.
//
// For a non-terminal current status, steps strictly before it are completed
// and the matching step is current. A terminal status (CANCELLED, CLOSED,
// ...) never appears in the canonical sequence; it is anchored at the
// furthest canonical status recorded in the history, and steps up to and
// including that anchor are completed with no step current. The anchor is
// resolved explicitly here: an indexOf on the canonical sequence would
// return a -1 sentinel for terminal statuses and silently corrupt the
// comparison.
func Build(ticketType domain.TicketType, current domain.TicketStatus, history []domain.StatusHistoryEntry, publicEvents []domain.TicketEvent) []Step {
	canonical := domain.CanonicalSteps(ticketType)
	terminal := domain.IsTerminal(ticketType, current)

	currentIndex := -1
	if terminal {
		currentIndex = furthestCanonicalIndex(canonical, history)
	} else {
		currentIndex = indexOf(canonical, current)
	}

	steps := make([]Step, 0, len(canonical))
	for i, status := range canonical {
		step := Step{
			Status: status,
			Label:  domain.StatusLabel(ticketType, status),
		}
		if terminal {
			step.Completed = i <= currentIndex
		} else {
			step.Completed = currentIndex >= 0 && i < currentIndex
			step.Current = status == current
		}
		if entry := latestEntryFor(history, status); entry != nil {
			date := entry.CreatedAt
			step.Date = &date
			step.Note = noteDuring(publicEvents, entry.CreatedAt)
		}
		steps = append(steps, step)
	}
	return steps
}

// furthestCanonicalIndex returns the highest canonical index the ticket
// reached according to its history, or -1 when no canonical status was
// ever recorded.
func furthestCanonicalIndex(canonical []domain.TicketStatus, history []domain.StatusHistoryEntry) int {
	furthest := -1
	for _, entry := range history {
		if idx := indexOf(canonical, entry.NewStatus); idx > furthest {
			furthest = idx
		}
	}
	return furthest
}

// latestEntryFor finds the most recent history entry that moved the ticket
// into status, so re-entered steps show their latest occurrence.
func latestEntryFor(history []domain.StatusHistoryEntry, status domain.TicketStatus) *domain.StatusHistoryEntry {
	var latest *domain.StatusHistoryEntry
	for i := range history {
		entry := &history[i]
		if entry.NewStatus != status {
			continue
		}
		if latest == nil || entry.CreatedAt.After(latest.CreatedAt) {
			latest = entry
		}
	}
	return latest
}

// noteDuring correlates a public note to the status period it was written
// in: the first customer-visible event at or after the step's timestamp.
func noteDuring(publicEvents []domain.TicketEvent, since time.Time) *string {
	var match *domain.TicketEvent
	for i := range publicEvents {
		event := &publicEvents[i]
		if event.CreatedAt.Before(since) {
			continue
		}
		if match == nil || event.CreatedAt.Before(match.CreatedAt) {
			match = event
		}
	}
	if match == nil {
		return nil
	}
	content := match.Content
	return &content
}

func indexOf(statuses []domain.TicketStatus, status domain.TicketStatus) int {
	for i, s := range statuses {
		if s == status {
			return i
		}
	}
	return -1
}
