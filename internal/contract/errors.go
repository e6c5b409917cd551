package contract

import "github.com/alexanderramin/gradpath/internal/app"

type PlanErrorCode = app.PlanErrorCode

const (
	PlanErrInvalidConfig PlanErrorCode = app.PlanErrInvalidConfig
	PlanErrInvalidDoc    PlanErrorCode = app.PlanErrInvalidDoc
	PlanErrNotFound      PlanErrorCode = app.PlanErrNotFound
)

type PlanError = app.PlanError
