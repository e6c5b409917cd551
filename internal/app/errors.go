package app

type PlanErrorCode string

const (
	PlanErrInvalidConfig PlanErrorCode = "INVALID_CONFIG"
	PlanErrInvalidDoc    PlanErrorCode = "INVALID_DOCUMENT"
	PlanErrNotFound      PlanErrorCode = "NOT_FOUND"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
