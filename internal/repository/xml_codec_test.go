package repository

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePlan_ExactShape(t *testing.T) {
	forest := []*domain.Task{
		testutil.NewTestTask("A", testutil.WithOpen(), testutil.WithChildren(
			testutil.NewTestTask("B", testutil.WithDone()),
		)),
	}
	data, err := EncodePlan(forest)
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<tasks>
    <task text="A" done="false" important="false" urgent="false" optional="false" obsolete="false" open="true">
        <task text="B" done="true" important="false" urgent="false" optional="false" obsolete="false" open="false"></task>
    </task>
</tasks>
`
	assert.Equal(t, want, string(data))
}

func TestEncodePlan_Empty(t *testing.T) {
	data, err := EncodePlan(nil)
	require.NoError(t, err)
	assert.Equal(t, xmlHeader+"<tasks></tasks>\n", string(data))

	forest, err := DecodePlan(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, forest)
}

func TestCodec_RoundTrip(t *testing.T) {
	forest := testutil.NewWeekForest()
	forest = append(forest, testutil.NewTestTask(`Quotes "&" <angle> 'apostrophe'`+"\ttab"),
		testutil.NewTestTask(""))

	data, err := EncodePlan(forest)
	require.NoError(t, err)
	got, err := DecodePlan(bytes.NewReader(data))
	require.NoError(t, err)

	assert.True(t, domain.ForestEqual(forest, got), "decoded forest differs:\n%s", data)
	assert.Equal(t, testutil.Outline(forest), testutil.Outline(got))
}

func TestCodec_Deterministic(t *testing.T) {
	first, err := EncodePlan(testutil.NewWeekForest())
	require.NoError(t, err)

	decoded, err := DecodePlan(bytes.NewReader(first))
	require.NoError(t, err)
	second, err := EncodePlan(decoded)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDecodePlan_MissingAttributesDefault(t *testing.T) {
	doc := `<tasks><task text="only text"><task/></task><task done="true"/></tasks>`
	forest, err := DecodePlan(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, forest, 2)

	first := forest[0]
	assert.Equal(t, "only text", first.Text)
	assert.False(t, first.Done || first.Important || first.Urgent || first.Optional || first.Obsolete || first.Open)
	require.Len(t, first.Children, 1)
	assert.Equal(t, "", first.Children[0].Text)

	assert.Equal(t, "", forest[1].Text)
	assert.True(t, forest[1].Done)
}

func TestDecodePlan_AcceptsNumericBooleans(t *testing.T) {
	forest, err := DecodePlan(strings.NewReader(`<tasks><task text="x" urgent="1" open="0"/></tasks>`))
	require.NoError(t, err)
	assert.True(t, forest[0].Urgent)
	assert.False(t, forest[0].Open)
}

func TestDecodePlan_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"truncated":     "<tasks>\n<task text=\"a\">\n",
		"wrong root":    `<plan><task text="a"/></plan>`,
		"bad boolean":   "<tasks>\n  <task text=\"a\" done=\"maybe\"/>\n</tasks>",
		"not xml":       "# Sprint 1\n- [ ] task",
		"unclosed tag":  "<tasks><task text=\"a\"></tasks>",
		"trailing tag":  "<tasks></tasks><oops",
		"second root":   "<tasks></tasks>\n<tasks/>",
		"trailing text": "<tasks></tasks>\nleftover",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePlan(strings.NewReader(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrParse)

			var pe *domain.ParseError
			require.True(t, errors.As(err, &pe))
		})
	}
}

func TestDecodePlan_AllowsTrailingWhitespaceAndComments(t *testing.T) {
	doc := "<tasks>\n  <task text=\"a\"/>\n</tasks>\n\n<!-- saved -->\n"
	forest, err := DecodePlan(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "a", forest[0].Text)
}

func TestEncodePlan_RejectsTextThatWouldChange(t *testing.T) {
	for name, text := range map[string]string{
		"control character": "a\x0cb",
		"invalid utf-8":     "caf\xe9",
	} {
		t.Run(name, func(t *testing.T) {
			forest := []*domain.Task{
				testutil.NewTestTask("ok", testutil.WithChildren(&domain.Task{Text: text})),
			}
			_, err := EncodePlan(forest)
			assert.ErrorIs(t, err, domain.ErrInvalidText)
		})
	}
}

func TestCodec_RoundTripsCleanedText(t *testing.T) {
	for _, raw := range []string{"a\x0cb", "caf\xe9", "tab\there\nnewline"} {
		text := domain.CleanText(raw)
		data, err := EncodePlan([]*domain.Task{{Text: text}})
		require.NoError(t, err)

		forest, err := DecodePlan(bytes.NewReader(data))
		require.NoError(t, err)
		require.Len(t, forest, 1)
		assert.Equal(t, text, forest[0].Text)
	}
}

func TestDecodePlan_SyntaxErrorCarriesLine(t *testing.T) {
	doc := "<tasks>\n  <task text=\"a\">\n  </tusk>\n</tasks>"
	_, err := DecodePlan(strings.NewReader(doc))

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
}

func TestNormalizePlanID(t *testing.T) {
	for in, want := range map[string]string{
		"2025-07-14":     "2025-07-14",
		"2025-07-14.xml": "2025-07-14",
		"  week 29  ":    "week 29",
		"release.v2":     "release.v2",
		"release.v2.xml": "release.v2",
	} {
		got, err := NormalizePlanID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", " ", ".xml", "../etc", "a/b", `a\b`, ".hidden"} {
		_, err := NormalizePlanID(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidPlanID, "input %q", bad)
	}
}
