package contract

import "github.com/alexanderramin/gradpath/internal/app"

type LevelPrefs = app.LevelPrefs

type GPAConfig = app.GPAConfig

type AdmissionsGPAConfig = app.AdmissionsGPAConfig

type PlanRequest = app.PlanRequest

func NewPlanRequest() PlanRequest {
	return app.NewPlanRequest()
}

type GPAReport = app.GPAReport

type PlanResponse = app.PlanResponse

type AuditRequest = app.AuditRequest

type AuditResponse = app.AuditResponse
