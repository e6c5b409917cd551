package importer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() *PlanDocument {
	years := make([]YearDocument, 0, 4)
	for _, g := range domain.Grades {
		years = append(years, YearDocument{Grade: g, Courses: []any{nil, nil, nil, nil, nil, nil}})
	}
	years[0].Courses[0] = "Freshman English (P)"
	years[0].Courses[1] = []any{"Ethnic Studies (P)(sem)", "Health Education (P)"}
	return &PlanDocument{Goal: "cs", Plan: years}
}

func TestValidatePlanDocument_Valid(t *testing.T) {
	assert.Empty(t, ValidatePlanDocument(validDocument()))
}

func TestValidatePlanDocument_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlanDocument)
		want   string
	}{
		{"missing goal", func(d *PlanDocument) { d.Goal = "" }, "goal is required"},
		{"unknown goal", func(d *PlanDocument) { d.Goal = "law" }, "unknown goal"},
		{"three years", func(d *PlanDocument) { d.Plan = d.Plan[:3] }, "expected 4 years, found 3"},
		{"bad grade", func(d *PlanDocument) { d.Plan[3].Grade = 13 }, "out of range"},
		{"duplicate grade", func(d *PlanDocument) { d.Plan[1].Grade = 9 }, "duplicate grade 9"},
		{"five slots", func(d *PlanDocument) { d.Plan[2].Courses = d.Plan[2].Courses[:5] }, "expected 6 slots, found 5"},
		{"triple", func(d *PlanDocument) { d.Plan[0].Courses[2] = []any{"a", "b", "c"} }, "must have 2 titles"},
		{"number", func(d *PlanDocument) { d.Plan[0].Courses[3] = 42 }, "unsupported course entry"},
		{"empty pair half", func(d *PlanDocument) { d.Plan[0].Courses[2] = []any{"", "b"} }, "must be non-empty"},
		{"repeated pair half", func(d *PlanDocument) { d.Plan[0].Courses[2] = []any{"a", "a"} }, "semester pair repeats"},
		{"empty completed", func(d *PlanDocument) { d.CompletedCourses = []string{""} }, "completed_courses[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)
			errs := ValidatePlanDocument(doc)
			require.NotEmpty(t, errs)
			var msgs []string
			for _, e := range errs {
				msgs = append(msgs, e.Error())
			}
			assert.Contains(t, joinLines(msgs), tt.want)
		})
	}
}

func joinLines(ss []string) string {
	out := ""
	for _, s := range ss {
		out += s + "\n"
	}
	return out
}

func TestValidatePlanDocument_ReportsEveryProblem(t *testing.T) {
	doc := validDocument()
	doc.Goal = ""
	doc.Plan[0].Courses[2] = 1.5
	doc.Plan[1].Courses[3] = []any{"only one"}
	assert.Len(t, ValidatePlanDocument(doc), 3)
}

func TestConvert(t *testing.T) {
	doc := validDocument()
	doc.Plan[0], doc.Plan[3] = doc.Plan[3], doc.Plan[0]

	plan, err := Convert(doc)
	require.NoError(t, err)

	assert.Equal(t, domain.GoalCS, plan.Goal)
	require.Len(t, plan.Years, 4)
	assert.Equal(t, 9, plan.Years[0].Grade)
	assert.Equal(t, domain.Single("Freshman English (P)"), plan.Years[0].Slots[0])
	assert.Equal(t, domain.Pair("Ethnic Studies (P)(sem)", "Health Education (P)"), plan.Years[0].Slots[1])
	assert.True(t, plan.Years[0].Slots[2].IsEmpty())
}

func TestParseDocument_BarePlanJSON(t *testing.T) {
	data, err := json.Marshal(validDocument())
	require.NoError(t, err)

	doc, err := ParseDocument(data)
	require.NoError(t, err)
	assert.Empty(t, ValidatePlanDocument(doc))
	assert.Equal(t, "cs", doc.Goal)
	assert.Equal(t, "Freshman English (P)", doc.Plan[0].Courses[0])
}

func TestParseDocument_GenerateResponse(t *testing.T) {
	plan := domain.NewPlan(domain.GoalPreMed)
	y, _ := plan.Year(10)
	y.Place(domain.Pair("Civics (P) (sem)", "Economics (P) (sem)"))
	resp := map[string]any{
		"inputs": map[string]any{"completed_courses": []string{"Spanish II (P)"}},
		"plan":   plan,
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	doc, err := ParseDocument(data)
	require.NoError(t, err)
	require.Empty(t, ValidatePlanDocument(doc))
	assert.Equal(t, []string{"Spanish II (P)"}, doc.CompletedCourses)

	got, err := Convert(doc)
	require.NoError(t, err)
	assert.Equal(t, plan, got)
}

func TestLoadDocument_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	yml := `goal: biotech
plan:
  - grade: 9
    courses: ["Biology (P)", null, null, null, null, null]
  - grade: 10
    courses: [null, null, null, null, null, null]
  - grade: 11
    courses: [null, null, null, null, null, null]
  - grade: 12
    courses: [[Civics (P) (sem), Economics (P) (sem)], null, null, null, null, null]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	require.Empty(t, ValidatePlanDocument(doc))

	plan, err := Convert(doc)
	require.NoError(t, err)
	assert.Equal(t, domain.Pair("Civics (P) (sem)", "Economics (P) (sem)"), plan.Years[3].Slots[0])
}

func TestLoadDocument_Errors(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = ParseDocument([]byte("  "))
	assert.Error(t, err)
}
