package catalog

import (
	"testing"

	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Catalog {
	t.Helper()
	cat, _, err := Load("testdata/sample_catalog.csv", Options{})
	require.NoError(t, err)
	return cat
}

func TestFind_RespectsGradeAndExclusion(t *testing.T) {
	cat := sample(t)

	got, ok := cat.Find(9, Keywords("geometry"), nil)
	require.True(t, ok)
	assert.Equal(t, "Geometry (P)", got)

	got, ok = cat.Find(9, Keywords("geometry"), domain.NewTitleSet("Geometry (P)"))
	require.True(t, ok)
	assert.Equal(t, "Honors Geometry (P)", got)

	_, ok = cat.Find(12, Keywords("geometry"), nil)
	assert.False(t, ok, "no geometry course is offered in grade 12")
}

func TestQuery_TokensMatchWholeWords(t *testing.T) {
	q := Query{Keywords: []string{"spanish"}, Tokens: []string{"i"}}
	assert.True(t, q.Match("Spanish I (P)"))
	assert.False(t, q.Match("Spanish II (P)"))
	assert.False(t, q.Match("Spanish III (P)"))

	assert.False(t, Query{}.Match("anything"), "empty query matches nothing")
	assert.True(t, Keywords("AP", "calculus").Match("AP Calculus AB (HP)"))
}

func TestFindFirst_TriesQueriesInOrder(t *testing.T) {
	cat := sample(t)
	got, ok := cat.FindFirst(11, nil, Keywords("no such course"), Keywords("ap", "statistics"))
	require.True(t, ok)
	assert.Equal(t, "AP Statistics (HP)", got)
}

func TestFindAny_MatchesSection(t *testing.T) {
	cat := sample(t)
	got, ok := cat.FindAny(9, []string{"career and technical"}, nil)
	require.True(t, ok)
	assert.Equal(t, "Intro to Computer Science (P)", got)
}

func TestAvailable(t *testing.T) {
	cat := sample(t)
	assert.True(t, cat.Available("Chemistry (P)", 10, nil))
	assert.False(t, cat.Available("Chemistry (P)", 9, nil))
	assert.False(t, cat.Available("Chemistry (P)", 10, domain.NewTitleSet("Chemistry (P)")))
	assert.False(t, cat.Available("Underwater Basketry", 10, nil))
}

func TestFingerprint_StableAndContentSensitive(t *testing.T) {
	a := New(domain.NewCourse("Art 1 (P)", []int{9}, domain.CategoryArts, "ARTS"))
	b := New(domain.NewCourse("Art 1 (P)", []int{9}, domain.CategoryArts, "ARTS"))
	c := New(domain.NewCourse("Art 1 (P)", []int{9, 10}, domain.CategoryArts, "ARTS"))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)
}
