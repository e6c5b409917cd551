package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// --- PlanRequest constructor defaults ---

func TestNewPlanRequest_SetsDefaults(t *testing.T) {
	req := NewPlanRequest()

	assert.Equal(t, "cs", req.Goal)
	assert.Equal(t, "auto", req.StartingMath)
	assert.Equal(t, "standard_stem", req.SciencePathway)
	assert.True(t, req.PreferSpanish)
	assert.Equal(t, 1, req.OptimizerPasses)
	assert.Equal(t, "A", req.GPA.DefaultLetter)
	assert.Nil(t, req.GPA.IncludeGrade9)
	assert.Equal(t, 8, req.UCConfig.MaxBonusSemesters)
	assert.Equal(t, []string{"(HP)", "AP ", "Honors "}, req.UCConfig.HonorsKeywords)
	assert.Equal(t, LevelPrefs{English: "regular", History: "regular", Science: "regular"}, req.CourseLevelPrefs)
	assert.Empty(t, req.CompletedCourses)
	assert.False(t, req.Save)
}

func TestNewPlanRequest_KeywordsAreIndependent(t *testing.T) {
	a := NewPlanRequest()
	a.UCConfig.HonorsKeywords[0] = "changed"
	b := NewPlanRequest()
	assert.Equal(t, "(HP)", b.UCConfig.HonorsKeywords[0])
}

// --- Decoding over defaults ---

func TestPlanRequest_JSONOverridesOnlyNamedFields(t *testing.T) {
	req := NewPlanRequest()
	data := `{"goal":"pre_med","prefer_spanish":false,"completed_courses":["Spanish 2"],"course_level_prefs":{"english":"honors"}}`
	require.NoError(t, json.Unmarshal([]byte(data), &req))

	assert.Equal(t, "pre_med", req.Goal)
	assert.False(t, req.PreferSpanish)
	assert.Equal(t, []string{"Spanish 2"}, req.CompletedCourses)
	assert.Equal(t, "honors", req.CourseLevelPrefs.English)
	assert.Equal(t, "regular", req.CourseLevelPrefs.History, "unnamed nested field keeps its default")
	assert.Equal(t, "standard_stem", req.SciencePathway)
}

func TestPlanRequest_YAML(t *testing.T) {
	req := NewPlanRequest()
	data := `
goal: biotech
science_pathway: delayed
gpa:
  default_letter: B
  include_grade9_in_hs_gpa: false
uc_cfg:
  max_bonus_semesters: 4
optimizer_passes: 2
`
	require.NoError(t, yaml.Unmarshal([]byte(data), &req))

	assert.Equal(t, "biotech", req.Goal)
	assert.Equal(t, "delayed", req.SciencePathway)
	assert.Equal(t, "B", req.GPA.DefaultLetter)
	require.NotNil(t, req.GPA.IncludeGrade9)
	assert.False(t, *req.GPA.IncludeGrade9)
	assert.Equal(t, 4, req.UCConfig.MaxBonusSemesters)
	assert.Equal(t, 2, req.OptimizerPasses)
}

func TestPlanError_Error(t *testing.T) {
	err := &PlanError{Code: PlanErrInvalidConfig, Message: "unknown goal"}
	assert.Equal(t, "INVALID_CONFIG: unknown goal", err.Error())
}
