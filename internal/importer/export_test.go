package importer

import (
	"strings"
	"testing"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	want := `## Sprint 1
- [ ] **Design API**
    - [x] Draft endpoints
- [ ] Write tests

## Errands
- [ ] Dentist
- [ ] Old idea
`
	assert.Equal(t, want, RenderMarkdown(testutil.NewWeekForest()))
}

func TestRenderMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(nil))
}

func TestRenderMarkdown_RoundTripsShape(t *testing.T) {
	forest := testutil.NewWeekForest()

	got, err := ParseMarkdown(strings.NewReader(RenderMarkdown(forest)))
	require.NoError(t, err)

	assert.Equal(t, testutil.Outline(forest), testutil.Outline(got))

	type flags struct{ done, important bool }
	collect := func(f []*domain.Task) []flags {
		var out []flags
		domain.Walk(f, func(task *domain.Task, depth int) bool {
			out = append(out, flags{task.Done, task.Important})
			return true
		})
		return out
	}
	assert.Equal(t, collect(forest), collect(got))
}
