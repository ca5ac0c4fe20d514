package domain

// TransitionPolicy decides whether a status move is legal for a ticket type.
// The historical system accepted any move within a type's vocabulary, so the
// policy is pluggable: the default table below restricts moves, and
// PermissiveTransitions reproduces the legacy behavior.
type TransitionPolicy interface {
	Allowed(t TicketType, from, to TicketStatus) bool
}

type tableTransitionPolicy struct {
	table map[TicketType]map[TicketStatus][]TicketStatus
}

type permissiveTransitionPolicy struct{}

// DefaultTransitions returns the restrictive policy: forward movement along
// the canonical sequence, one step of staff backtracking, and entry into a
// terminal state from any non-terminal state. Terminal states accept no
// further moves.
func DefaultTransitions() TransitionPolicy {
	return &tableTransitionPolicy{table: map[TicketType]map[TicketStatus][]TicketStatus{
		TicketTypeContract: {
			StatusNew:        {StatusValidation, StatusContacted},
			StatusValidation: {StatusNew, StatusContacted, StatusScheduled},
			StatusContacted:  {StatusValidation, StatusScheduled},
			StatusScheduled:  {StatusContacted, StatusInRoute},
			StatusInRoute:    {StatusScheduled, StatusInstalled},
			StatusInstalled:  {},
		},
		TicketTypeFault: {
			StatusNew:        {StatusDiagnosis, StatusScheduled},
			StatusDiagnosis:  {StatusNew, StatusScheduled, StatusInProgress},
			StatusScheduled:  {StatusDiagnosis, StatusInProgress},
			StatusInProgress: {StatusScheduled, StatusResolved},
			StatusResolved:   {StatusInProgress, StatusClosed},
		},
	}}
}

// PermissiveTransitions allows any move inside the type's vocabulary,
// matching the behavior staff relied on for manual overrides.
func PermissiveTransitions() TransitionPolicy {
	return permissiveTransitionPolicy{}
}

func (p *tableTransitionPolicy) Allowed(t TicketType, from, to TicketStatus) bool {
	if !ValidStatus(t, to) {
		return false
	}
	// Any non-terminal state may be abandoned into a terminal one.
	if IsTerminal(t, to) {
		return !IsTerminal(t, from)
	}
	for _, candidate := range p.table[t][from] {
		if candidate == to {
			return true
		}
	}
	return false
}

func (permissiveTransitionPolicy) Allowed(t TicketType, from, to TicketStatus) bool {
	return ValidStatus(t, to)
}
