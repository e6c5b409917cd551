package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCompleted(t *testing.T) {
	cat := sample(t)

	tests := []struct {
		in     string
		want   string
		method ResolveMethod
	}{
		{"Algebra I (P)", "Algebra I (P)", ResolveExact},
		{"Spanish 2", "Spanish II (P)", ResolveTokens},
		{"spanish 1", "Spanish I (P)", ResolveTokens},
		{"chemistry", "Chemistry (P)", ResolveTokens},
		{"hon geo", "Honors Geometry (P)", ResolveFuzzy},
		{"Middle School Band", "Middle School Band", ResolveNone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			set, res := ResolveCompleted(cat, []string{tt.in})
			if assert.Len(t, res, 1) {
				assert.Equal(t, tt.want, res[0].Title)
				assert.Equal(t, tt.method, res[0].Method)
			}
			assert.True(t, set.Has(tt.want))
		})
	}
}

func TestResolveCompleted_SkipsBlankEntries(t *testing.T) {
	set, res := ResolveCompleted(sample(t), []string{"", "   "})
	assert.Empty(t, set)
	assert.Empty(t, res)
}
