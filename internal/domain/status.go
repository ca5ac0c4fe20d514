package domain

// contractStatuses and faultStatuses are the full vocabularies per type,
// including terminal states outside the canonical progress sequence.
var contractStatuses = []TicketStatus{
	StatusNew, StatusValidation, StatusContacted, StatusScheduled,
	StatusInRoute, StatusInstalled, StatusCancelled, StatusOutOfCoverage,
	StatusDuplicate,
}

var faultStatuses = []TicketStatus{
	StatusNew, StatusDiagnosis, StatusScheduled, StatusInProgress,
	StatusResolved, StatusClosed, StatusNotApplicable,
}

var canonicalSteps = map[TicketType][]TicketStatus{
	TicketTypeContract: {StatusNew, StatusValidation, StatusContacted, StatusScheduled, StatusInRoute, StatusInstalled},
	TicketTypeFault:    {StatusNew, StatusDiagnosis, StatusScheduled, StatusInProgress, StatusResolved},
}

var terminalStatuses = map[TicketType][]TicketStatus{
	TicketTypeContract: {StatusCancelled, StatusOutOfCoverage, StatusDuplicate},
	TicketTypeFault:    {StatusClosed, StatusNotApplicable},
}

// ValidTicketType reports whether t is a known ticket type.
func ValidTicketType(t TicketType) bool {
	return t == TicketTypeContract || t == TicketTypeFault
}

// ValidStatus reports whether status belongs to the vocabulary of the type.
func ValidStatus(t TicketType, status TicketStatus) bool {
	for _, s := range statusesFor(t) {
		if s == status {
			return true
		}
	}
	return false
}

// CanonicalSteps returns the ordered progress sequence for the type.
// Terminal states are not part of the sequence.
func CanonicalSteps(t TicketType) []TicketStatus {
	steps := canonicalSteps[t]
	out := make([]TicketStatus, len(steps))
	copy(out, steps)
	return out
}

// IsTerminal reports whether status is an end state outside the canonical
// sequence for the given type.
func IsTerminal(t TicketType, status TicketStatus) bool {
	for _, s := range terminalStatuses[t] {
		if s == status {
			return true
		}
	}
	return false
}

func statusesFor(t TicketType) []TicketStatus {
	switch t {
	case TicketTypeContract:
		return contractStatuses
	case TicketTypeFault:
		return faultStatuses
	default:
		return nil
	}
}

// Customer-facing labels. The same status string can carry a different
// meaning per type (SCHEDULED is an install visit for contracts and a
// technician visit for faults), so the table is keyed by both.
var contractLabels = map[TicketStatus]string{
	StatusNew:           "Solicitud recibida",
	StatusValidation:    "Validando cobertura",
	StatusContacted:     "Contactado",
	StatusScheduled:     "Instalación agendada",
	StatusInRoute:       "Técnico en camino",
	StatusInstalled:     "Instalado",
	StatusCancelled:     "Cancelado",
	StatusOutOfCoverage: "Fuera de cobertura",
	StatusDuplicate:     "Solicitud duplicada",
}

var faultLabels = map[TicketStatus]string{
	StatusNew:           "Reporte recibido",
	StatusDiagnosis:     "En diagnóstico",
	StatusScheduled:     "Visita agendada",
	StatusInProgress:    "En atención",
	StatusResolved:      "Resuelto",
	StatusClosed:        "Cerrado",
	StatusNotApplicable: "No procede",
}

// StatusLabel resolves the customer-facing label for (type, status).
// Unknown combinations fall back to the raw status string.
func StatusLabel(t TicketType, status TicketStatus) string {
	var labels map[TicketStatus]string
	switch t {
	case TicketTypeContract:
		labels = contractLabels
	case TicketTypeFault:
		labels = faultLabels
	}
	if label, ok := labels[status]; ok {
		return label
	}
	return string(status)
}

// TypeLabel resolves the customer-facing name of a ticket type.
func TypeLabel(t TicketType) string {
	switch t {
	case TicketTypeContract:
		return "Contratación"
	case TicketTypeFault:
		return "Reporte de falla"
	default:
		return string(t)
	}
}
