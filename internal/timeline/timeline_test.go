package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

var baseTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func historyAt(status domain.TicketStatus, minutes int) domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		TicketID:  "t1",
		NewStatus: status,
		CreatedAt: baseTime.Add(time.Duration(minutes) * time.Minute),
	}
}

func publicEventAt(content string, minutes int) domain.TicketEvent {
	return domain.TicketEvent{
		TicketID:            "t1",
		EventType:           domain.EventTypeNotePublic,
		Content:             content,
		IsVisibleToCustomer: true,
		CreatedAt:           baseTime.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestBuildContractCanonicalOrder(t *testing.T) {
	steps := Build(domain.TicketTypeContract, domain.StatusNew, nil, nil)

	require.Len(t, steps, 6)
	expected := []domain.TicketStatus{
		domain.StatusNew, domain.StatusValidation, domain.StatusContacted,
		domain.StatusScheduled, domain.StatusInRoute, domain.StatusInstalled,
	}
	for i, step := range steps {
		assert.Equal(t, expected[i], step.Status)
		assert.NotEmpty(t, step.Label)
	}
}

func TestBuildFaultCanonicalOrder(t *testing.T) {
	steps := Build(domain.TicketTypeFault, domain.StatusNew, nil, nil)

	require.Len(t, steps, 5)
	expected := []domain.TicketStatus{
		domain.StatusNew, domain.StatusDiagnosis, domain.StatusScheduled,
		domain.StatusInProgress, domain.StatusResolved,
	}
	for i, step := range steps {
		assert.Equal(t, expected[i], step.Status)
	}
}

func TestBuildScheduledContract(t *testing.T) {
	history := []domain.StatusHistoryEntry{
		historyAt(domain.StatusNew, 0),
		historyAt(domain.StatusValidation, 10),
		historyAt(domain.StatusContacted, 20),
		historyAt(domain.StatusScheduled, 30),
	}

	steps := Build(domain.TicketTypeContract, domain.StatusScheduled, history, nil)

	require.Len(t, steps, 6)
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[1].Completed)
	assert.True(t, steps[2].Completed)
	assert.False(t, steps[3].Completed)
	assert.True(t, steps[3].Current)
	assert.False(t, steps[4].Completed)
	assert.False(t, steps[4].Current)
	assert.False(t, steps[5].Completed)

	require.NotNil(t, steps[3].Date)
	assert.Equal(t, history[3].CreatedAt, *steps[3].Date)
	assert.Nil(t, steps[4].Date)
}

func TestBuildExactlyOneCurrentForNonTerminal(t *testing.T) {
	for _, status := range domain.CanonicalSteps(domain.TicketTypeFault) {
		steps := Build(domain.TicketTypeFault, status, nil, nil)
		currentCount := 0
		for _, step := range steps {
			if step.Current {
				currentCount++
				assert.Equal(t, status, step.Status)
			}
		}
		assert.Equal(t, 1, currentCount, "status %s", status)
	}
}

func TestBuildTerminalMarksReachedStepsCompleted(t *testing.T) {
	history := []domain.StatusHistoryEntry{
		historyAt(domain.StatusNew, 0),
		historyAt(domain.StatusValidation, 10),
		historyAt(domain.StatusCancelled, 20),
	}

	steps := Build(domain.TicketTypeContract, domain.StatusCancelled, history, nil)

	require.Len(t, steps, 6)
	assert.True(t, steps[0].Completed)
	assert.True(t, steps[1].Completed)
	for _, step := range steps[2:] {
		assert.False(t, step.Completed)
	}
	for _, step := range steps {
		assert.False(t, step.Current, "terminal status has no current step")
	}
}

func TestBuildTerminalWithoutHistoryCompletesNothing(t *testing.T) {
	steps := Build(domain.TicketTypeFault, domain.StatusNotApplicable, nil, nil)

	for _, step := range steps {
		assert.False(t, step.Completed)
		assert.False(t, step.Current)
	}
}

func TestBuildTerminalIgnoresIndexOfSentinel(t *testing.T) {
	// Full run to RESOLVED then CLOSED: every canonical step completed.
	history := []domain.StatusHistoryEntry{
		historyAt(domain.StatusNew, 0),
		historyAt(domain.StatusDiagnosis, 5),
		historyAt(domain.StatusScheduled, 10),
		historyAt(domain.StatusInProgress, 15),
		historyAt(domain.StatusResolved, 20),
		historyAt(domain.StatusClosed, 25),
	}

	steps := Build(domain.TicketTypeFault, domain.StatusClosed, history, nil)

	for _, step := range steps {
		assert.True(t, step.Completed, "step %s", step.Status)
	}
}

func TestBuildNoteCorrelation(t *testing.T) {
	history := []domain.StatusHistoryEntry{
		historyAt(domain.StatusNew, 0),
		historyAt(domain.StatusDiagnosis, 30),
	}
	events := []domain.TicketEvent{
		publicEventAt("revisaremos tu caso", 35),
	}

	steps := Build(domain.TicketTypeFault, domain.StatusDiagnosis, history, events)

	require.NotNil(t, steps[1].Note)
	assert.Equal(t, "revisaremos tu caso", *steps[1].Note)
}

func TestBuildNoteBeforeStepNotAttached(t *testing.T) {
	history := []domain.StatusHistoryEntry{
		historyAt(domain.StatusNew, 0),
		historyAt(domain.StatusDiagnosis, 30),
	}
	events := []domain.TicketEvent{
		publicEventAt("recibimos tu reporte", 5),
	}

	steps := Build(domain.TicketTypeFault, domain.StatusDiagnosis, history, events)

	// The diagnosis step began after the note, so the note belongs to NEW only.
	require.NotNil(t, steps[0].Note)
	assert.Equal(t, "recibimos tu reporte", *steps[0].Note)
	assert.Nil(t, steps[1].Note)
}

func TestBuildReenteredStatusUsesLatestEntry(t *testing.T) {
	history := []domain.StatusHistoryEntry{
		historyAt(domain.StatusNew, 0),
		historyAt(domain.StatusScheduled, 10),
		historyAt(domain.StatusDiagnosis, 20),
		historyAt(domain.StatusScheduled, 30),
	}

	steps := Build(domain.TicketTypeFault, domain.StatusScheduled, history, nil)

	require.NotNil(t, steps[2].Date)
	assert.Equal(t, baseTime.Add(30*time.Minute), *steps[2].Date)
}

func TestBuildIsDeterministic(t *testing.T) {
	history := []domain.StatusHistoryEntry{
		historyAt(domain.StatusNew, 0),
		historyAt(domain.StatusValidation, 10),
	}
	events := []domain.TicketEvent{
		publicEventAt("en proceso", 12),
	}

	first := Build(domain.TicketTypeContract, domain.StatusValidation, history, events)
	second := Build(domain.TicketTypeContract, domain.StatusValidation, history, events)

	assert.Equal(t, first, second)
}
