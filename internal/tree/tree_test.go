package tree

import (
	"testing"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nested builds A[A1,A2[A2a],A3],B.
func nested() (*Tree, map[string]*domain.Task) {
	a2a := testutil.NewTestTask("A2a")
	a1 := testutil.NewTestTask("A1")
	a2 := testutil.NewTestTask("A2", testutil.WithChildren(a2a))
	a3 := testutil.NewTestTask("A3")
	a := testutil.NewTestTask("A", testutil.WithChildren(a1, a2, a3))
	b := testutil.NewTestTask("B")
	byText := map[string]*domain.Task{"A": a, "A1": a1, "A2": a2, "A2a": a2a, "A3": a3, "B": b}
	return New([]*domain.Task{a, b}), byText
}

// --- Create ---

func TestCreate_NilParentAppendsRoot(t *testing.T) {
	tr := New(testutil.NewTestForest("A"))
	res := tr.Create(nil)

	require.True(t, res.Changed)
	assert.Same(t, res.Node, res.Selected)
	assert.Equal(t, domain.DefaultTaskText, res.Node.Text)
	assert.Equal(t, "A,"+domain.DefaultTaskText, testutil.Outline(tr.Forest()))
}

func TestCreate_UnderParentExpandsIt(t *testing.T) {
	tr, n := nested()
	tr.Placeholder = "todo"
	res := tr.Create(n["A2"])

	assert.True(t, n["A2"].Open)
	assert.Same(t, res.Node, n["A2"].Children[1])
	assert.Equal(t, "A[A1,A2[A2a,todo],A3],B", testutil.Outline(tr.Forest()))
}

func TestCreate_UnknownParentFallsBackToRoot(t *testing.T) {
	tr := New(nil)
	stranger := domain.NewTask("stranger")
	tr.Create(stranger)

	assert.Empty(t, stranger.Children)
	assert.False(t, stranger.Open)
	assert.Len(t, tr.Forest(), 1)
}

// --- Delete ---

func TestDelete_SelectsNextSibling(t *testing.T) {
	tr, n := nested()
	res := tr.Delete(n["A2"])

	require.True(t, res.Changed)
	assert.Same(t, n["A3"], res.Selected)
	assert.Equal(t, "A[A1,A3],B", testutil.Outline(tr.Forest()))
}

func TestDelete_LastSiblingSelectsPrevious(t *testing.T) {
	tr, n := nested()
	res := tr.Delete(n["A3"])
	assert.Same(t, n["A2"], res.Selected)
}

func TestDelete_OnlyChildSelectsParent(t *testing.T) {
	tr, n := nested()
	res := tr.Delete(n["A2a"])
	assert.Same(t, n["A2"], res.Selected)
	assert.Empty(t, n["A2"].Children)
}

func TestDelete_LastTopLevelSelectsNothing(t *testing.T) {
	tr := New(testutil.NewTestForest("only"))
	res := tr.Delete(tr.Forest()[0])

	require.True(t, res.Changed)
	assert.Nil(t, res.Selected)
	assert.Empty(t, tr.Forest())
}

func TestDelete_RemovesWholeSubtree(t *testing.T) {
	tr, n := nested()
	before := tr.Len()
	descendants := domain.Count(n["A"].Children)

	tr.Delete(n["A"])

	assert.Equal(t, before-(descendants+1), tr.Len())
	for _, text := range []string{"A", "A1", "A2", "A2a", "A3"} {
		assert.False(t, tr.Has(n[text]), "%s should be unreachable", text)
	}
}

func TestDelete_AbsentIsNoop(t *testing.T) {
	tr, _ := nested()
	assert.False(t, tr.Delete(nil).Changed)
	assert.False(t, tr.Delete(domain.NewTask("x")).Changed)
	assert.Equal(t, 6, tr.Len())
}

// --- Indent ---

func TestIndent_TopLevelScenario(t *testing.T) {
	tr := New(testutil.NewTestForest("A", "B"))
	b := tr.Forest()[1]

	res := tr.Indent(b)
	require.True(t, res.Changed)
	assert.Same(t, b, res.Selected)
	assert.Equal(t, "A[B]", testutil.Outline(tr.Forest()))
	assert.True(t, tr.Forest()[0].Open)

	res = tr.Outdent(b)
	require.True(t, res.Changed)
	assert.Equal(t, "A,B", testutil.Outline(tr.Forest()))
}

func TestIndent_KeepsSubtreeAttached(t *testing.T) {
	tr, n := nested()
	tr.Indent(n["A2"])
	assert.Equal(t, "A[A1[A2[A2a]],A3],B", testutil.Outline(tr.Forest()))
}

func TestIndent_FirstChildIsNoop(t *testing.T) {
	tr, n := nested()
	assert.False(t, tr.Indent(n["A1"]).Changed)
	assert.False(t, tr.Indent(n["A"]).Changed)
	assert.False(t, tr.Indent(domain.NewTask("x")).Changed)
	assert.Equal(t, "A[A1,A2[A2a],A3],B", testutil.Outline(tr.Forest()))
}

func TestIndentOutdent_Inverse(t *testing.T) {
	tr, n := nested()
	tr.Indent(n["A3"])
	require.Equal(t, "A[A1,A2[A2a,A3]],B", testutil.Outline(tr.Forest()))

	tr.Outdent(n["A3"])
	assert.Equal(t, "A[A1,A2[A2a],A3],B", testutil.Outline(tr.Forest()))
	assert.Equal(t, Path{1, 3}, tr.PathOf(n["A3"]))
}

// --- Outdent ---

func TestOutdent_AdoptsTrailingSiblings(t *testing.T) {
	tr, n := nested()
	res := tr.Outdent(n["A1"])

	require.True(t, res.Changed)
	assert.Equal(t, "A,A1[A2[A2a],A3],B", testutil.Outline(tr.Forest()))
	assert.True(t, n["A1"].Open)
	assert.Same(t, n["A1"], res.Selected)
}

func TestOutdent_AppendsAfterExistingChildren(t *testing.T) {
	tr, n := nested()
	tr.Outdent(n["A2"])
	assert.Equal(t, "A[A1],A2[A2a,A3],B", testutil.Outline(tr.Forest()))
}

func TestOutdent_DeepNode(t *testing.T) {
	tr, n := nested()
	tr.Outdent(n["A2a"])
	assert.Equal(t, "A[A1,A2,A2a,A3],B", testutil.Outline(tr.Forest()))
}

func TestOutdent_TopLevelIsNoop(t *testing.T) {
	tr, n := nested()
	assert.False(t, tr.Outdent(n["A"]).Changed)
	assert.False(t, tr.Outdent(n["B"]).Changed)
	assert.False(t, tr.Outdent(nil).Changed)
}

// --- Move ---

func TestMoveUpDown_Boundaries(t *testing.T) {
	tr, n := nested()
	assert.False(t, tr.MoveUp(n["A1"]).Changed)
	assert.False(t, tr.MoveDown(n["A3"]).Changed)
	assert.False(t, tr.MoveDown(n["B"]).Changed)
	assert.False(t, tr.MoveUp(nil).Changed)
	assert.Equal(t, "A[A1,A2[A2a],A3],B", testutil.Outline(tr.Forest()))
}

func TestMoveDown_FirstToLast(t *testing.T) {
	tr := New(testutil.NewTestForest("1", "2", "3", "4"))
	first := tr.Forest()[0]
	for i := 0; i < 3; i++ {
		require.True(t, tr.MoveDown(first).Changed)
	}
	assert.Equal(t, "2,3,4,1", testutil.Outline(tr.Forest()))
	assert.False(t, tr.MoveDown(first).Changed)
}

func TestMoveUp_SwapsWithPrevious(t *testing.T) {
	tr, n := nested()
	res := tr.MoveUp(n["A2"])
	assert.Same(t, n["A2"], res.Selected)
	assert.Equal(t, "A[A2[A2a],A1,A3],B", testutil.Outline(tr.Forest()))
}

// --- Flags ---

func TestToggleObsolete_ForcesNotDone(t *testing.T) {
	for _, done := range []bool{true, false} {
		task := &domain.Task{Text: "x", Done: done}
		tr := New([]*domain.Task{task})
		tr.ToggleObsolete(task)
		assert.True(t, task.Obsolete)
		assert.False(t, task.Done)
	}
}

func TestToggle_FlipsEachFlag(t *testing.T) {
	task := domain.NewTask("x")
	tr := New([]*domain.Task{task})
	for _, f := range Flags {
		require.True(t, tr.Toggle(task, f).Changed, "flag %s", f)
	}
	assert.True(t, task.Important)
	assert.True(t, task.Urgent)
	assert.True(t, task.Optional)
	assert.True(t, task.Obsolete)
	// done toggled last, after obsolete cleared it
	assert.True(t, task.Done)

	tr.ToggleImportant(task)
	assert.False(t, task.Important)
}

func TestToggle_UnknownTaskIsNoop(t *testing.T) {
	tr := New(nil)
	stranger := domain.NewTask("x")
	assert.False(t, tr.ToggleDone(stranger).Changed)
	assert.False(t, stranger.Done)
	assert.False(t, tr.Toggle(stranger, Flag("bogus")).Changed)
}

func TestParseFlag(t *testing.T) {
	f, ok := ParseFlag("urgent")
	assert.True(t, ok)
	assert.Equal(t, FlagUrgent, f)
	_, ok = ParseFlag("Urgent")
	assert.False(t, ok)
}

func TestRename(t *testing.T) {
	tr, n := nested()
	res := tr.Rename(n["B"], "")
	assert.True(t, res.Changed)
	assert.Equal(t, "", n["B"].Text)
}

func TestRename_DropsUnstorableCharacters(t *testing.T) {
	tr, n := nested()
	res := tr.Rename(n["B"], "caf\xe9\x0c menu")
	assert.True(t, res.Changed)
	assert.Equal(t, "caf\ufffd menu", n["B"].Text)
}

func TestSetOpen(t *testing.T) {
	tr, n := nested()
	assert.True(t, tr.SetOpen(n["A"], true).Changed)
	assert.True(t, n["A"].Open)
	assert.False(t, tr.SetOpen(n["A"], true).Changed)
	assert.True(t, tr.SetOpen(n["A"], false).Changed)
	assert.False(t, n["A"].Open)
}

func TestParent(t *testing.T) {
	tr, n := nested()
	assert.Same(t, n["A2"], tr.Parent(n["A2a"]))
	assert.Nil(t, tr.Parent(n["A"]))
	assert.Nil(t, tr.Parent(domain.NewTask("x")))
}
