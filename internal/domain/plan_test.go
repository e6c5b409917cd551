package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan_Skeleton(t *testing.T) {
	p := NewPlan(GoalCS)
	require.Len(t, p.Years, 4)
	for i, y := range p.Years {
		assert.Equal(t, Grades[i], y.Grade)
		assert.Equal(t, SlotsPerYear, y.OpenCount())
	}
	assert.Equal(t, GoalCS, p.Goal)
}

func TestYear_PlaceNeverOverwrites(t *testing.T) {
	var y Year
	for i := 0; i < SlotsPerYear; i++ {
		assert.Equal(t, i, y.Place(Single(string(rune('A'+i)))))
	}
	assert.Equal(t, -1, y.Place(Single("Overflow")))
	assert.Equal(t, "A", y.Slots[0].String())
	assert.Equal(t, -1, y.Place(EmptySlot()))
}

func TestPlan_PlacedTitlesIncludesPairHalves(t *testing.T) {
	p := NewPlan(GoalPreMed)
	y9, err := p.Year(9)
	require.NoError(t, err)
	y9.Place(Pair("Ethnic Studies (P)(sem)", "Health Education (P)"))
	y10, err := p.Year(10)
	require.NoError(t, err)
	y10.Place(Single("Chemistry (P)"))

	placed := p.PlacedTitles()
	assert.True(t, placed.Has("Ethnic Studies (P)(sem)"))
	assert.True(t, placed.Has("Health Education (P)"))
	assert.True(t, placed.Has("Chemistry (P)"))

	before := p.PlacedBefore(10)
	assert.False(t, before.Has("Chemistry (P)"))
	assert.True(t, before.Has("Health Education (P)"))

	_, err = p.Year(13)
	assert.Error(t, err)
}

func TestPlan_CloneIsIndependent(t *testing.T) {
	p := NewPlan(GoalCS)
	c := p.Clone()
	c.Years[0].Place(Single("Art 1 (P)"))
	assert.Equal(t, SlotsPerYear, p.Years[0].OpenCount())
}

func TestLevel_FallbackChain(t *testing.T) {
	assert.Equal(t, []Level{LevelAP, LevelHonors, LevelRegular}, LevelAP.FallbackChain())
	assert.Equal(t, []Level{LevelHonors, LevelRegular}, LevelHonors.FallbackChain())
	assert.Equal(t, []Level{LevelRegular}, LevelRegular.FallbackChain())

	_, err := ParseLevel("gifted")
	assert.Error(t, err)
	l, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelRegular, l)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("C")
	assert.True(t, ok)
	assert.Equal(t, CategoryMath, c)
	_, ok = ParseCategory("H")
	assert.False(t, ok)
}
