package objective

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
	ConfidenceAtRisk ConfidenceLevel = "AT_RISK"
)

type InitiativeStatus string

const (
	InitiativeNotStarted InitiativeStatus = "NOT_STARTED"
	InitiativeInProgress InitiativeStatus = "IN_PROGRESS"
	InitiativeCompleted  InitiativeStatus = "COMPLETED"
	InitiativeBlocked    InitiativeStatus = "BLOCKED"
)

type RiskStatus string

const (
	RiskActive      RiskStatus = "ACTIVE"
	RiskUnderReview RiskStatus = "UNDER_REVIEW"
	RiskResolved    RiskStatus = "RESOLVED"
)
