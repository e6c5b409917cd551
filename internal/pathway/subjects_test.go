package pathway

import (
	"errors"
	"testing"

	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScience_Pathways(t *testing.T) {
	cat := testutil.SampleCatalog(t)

	tests := []struct {
		pathway string
		level   domain.Level
		grade   int
		want    string
	}{
		{"standard_stem", domain.LevelRegular, 9, "Biology (P)"},
		{"", domain.LevelHonors, 9, "Honors Biology (P)"},
		{"standard_stem", domain.LevelRegular, 10, "Chemistry (P)"},
		{"standard_stem", domain.LevelRegular, 11, "Physics (P)"},
		{"standard_stem", domain.LevelRegular, 12, "AP Biology (HP)"},
		{"standard_stem", domain.LevelAP, 9, "Honors Biology (P)"},
		{"finish_fast", domain.LevelRegular, 9, "Earth Science (P)"},
		{"delayed", domain.LevelRegular, 10, "Biology (P)"},
	}
	for _, tt := range tests {
		t.Run(tt.pathway+"/"+string(tt.level), func(t *testing.T) {
			s, err := NewScience(tt.pathway, tt.level)
			require.NoError(t, err)
			slot, ok := s.Next(cat, tt.grade, nil)
			require.True(t, ok)
			assert.Equal(t, domain.Single(tt.want), slot)
		})
	}
}

func TestScience_DelayedSkipsGrade9(t *testing.T) {
	s, err := NewScience("delayed", domain.LevelRegular)
	require.NoError(t, err)
	_, ok := s.Next(testutil.SampleCatalog(t), 9, nil)
	assert.False(t, ok)
}

func TestScience_UnknownPathwayFailsFast(t *testing.T) {
	_, err := NewScience("astrology", domain.LevelRegular)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
}

func TestEnglish_LevelFallbackChain(t *testing.T) {
	cat := testutil.SampleCatalog(t)

	tests := []struct {
		level domain.Level
		grade int
		used  domain.TitleSet
		want  string
	}{
		{domain.LevelRegular, 9, nil, "Freshman English (P)"},
		{domain.LevelHonors, 9, nil, "Honors Freshman English (P)"},
		{domain.LevelAP, 9, nil, "Honors Freshman English (P)"},
		{domain.LevelAP, 11, nil, "AP English Language (HP)"},
		{domain.LevelAP, 11, domain.NewTitleSet("AP English Language (HP)"), "Honors Junior English (HP)"},
		{domain.LevelHonors, 12, nil, "British Literature (P)"},
		{domain.LevelAP, 12, nil, "AP English Literature & Comp (HP)"},
		{domain.LevelRegular, 12, domain.NewTitleSet("British Literature (P)"), "CSU Expository Reading & Writing (P)"},
	}
	for _, tt := range tests {
		slot, ok := NewEnglish(tt.level).Next(cat, tt.grade, tt.used)
		require.True(t, ok)
		assert.Equal(t, domain.Single(tt.want), slot, "level %s grade %d", tt.level, tt.grade)
	}
}

func TestEnglish_KeywordFallback(t *testing.T) {
	cat := testutil.Catalog(testutil.Course("English 9 Writing Workshop (P)", domain.CategoryEnglish, 9))
	slot, ok := NewEnglish(domain.LevelHonors).Next(cat, 9, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Single("English 9 Writing Workshop (P)"), slot)
}

func TestHistory_ByGrade(t *testing.T) {
	cat := testutil.SampleCatalog(t)

	_, ok := NewHistory(domain.LevelAP).Next(cat, 9, nil)
	assert.False(t, ok, "no history course in grade 9")

	slot, ok := NewHistory(domain.LevelRegular).Next(cat, 10, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Single("World History (P)"), slot)

	slot, ok = NewHistory(domain.LevelAP).Next(cat, 10, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Single("AP World History (HP)"), slot)

	slot, ok = NewHistory(domain.LevelHonors).Next(cat, 11, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Single("U.S. History (P)"), slot)

	slot, ok = NewHistory(domain.LevelRegular).Next(cat, 12, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Pair("Civics (P) (sem)", "Economics (P) (sem)"), slot)

	slot, ok = NewHistory(domain.LevelAP).Next(cat, 12, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Pair("AP Govt & Politics (HP) (sem)", "AP Macroeconomics (HP) (sem)"), slot)
}

func TestHistory_PairNeedsBothHalves(t *testing.T) {
	cat := testutil.SampleCatalog(t)
	used := domain.NewTitleSet("Economics (P) (sem)")

	slot, ok := NewHistory(domain.LevelRegular).Next(cat, 12, used)
	require.True(t, ok)
	assert.Equal(t, domain.Pair("Civics (P) (sem)", "AP Macroeconomics (HP) (sem)"), slot)

	used.Add("Civics (P) (sem)")
	slot, ok = NewHistory(domain.LevelRegular).Next(cat, 12, used)
	if ok {
		for _, title := range slot.Titles() {
			assert.False(t, used.Has(title))
		}
	}
}

func TestFixedRequirements(t *testing.T) {
	cat := testutil.SampleCatalog(t)

	slot, ok := EthnicStudiesHealth.Next(cat, 9, nil)
	require.True(t, ok)
	assert.True(t, slot.IsPair())
	assert.Equal(t, []string{"Ethnic Studies (P)(sem)", "Health Education (P)"}, slot.Titles())

	slot, ok = FreshmanPE.Next(cat, 9, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Single("PE Course 1-Freshmen"), slot)

	slot, ok = SecondPE.Next(cat, 10, nil)
	require.True(t, ok)
	assert.Equal(t, domain.Single("PE Course 2"), slot)

	_, ok = SecondPE.Next(cat, 10, domain.NewTitleSet("PE Course 2"))
	assert.False(t, ok)
	_, ok = FreshmanPE.Next(cat, 10, nil)
	assert.False(t, ok)
}
