package domain

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForest() []*Task {
	a := NewTask("A")
	a.AddChild(NewTask("A1"))
	a.AddChild(&Task{Text: "A2", Done: true, Children: []*Task{NewTask("A2a")}})
	return []*Task{a, NewTask("B")}
}

func TestNewTask_DefaultsAreFalse(t *testing.T) {
	task := NewTask("")
	assert.Equal(t, "", task.Text)
	assert.False(t, task.Done)
	assert.False(t, task.Open)
	assert.Empty(t, task.Children)
}

func TestSetObsolete_ClearsDone(t *testing.T) {
	task := &Task{Text: "x", Done: true}
	task.SetObsolete(true)
	assert.True(t, task.Obsolete)
	assert.False(t, task.Done)
}

func TestSetObsolete_FalseKeepsDone(t *testing.T) {
	task := &Task{Text: "x", Done: true, Obsolete: true}
	task.SetObsolete(false)
	assert.False(t, task.Obsolete)
	assert.True(t, task.Done)
}

func TestCount(t *testing.T) {
	assert.Equal(t, 5, Count(sampleForest()))
	assert.Equal(t, 0, Count(nil))
}

func TestWalk_DocumentOrderWithDepth(t *testing.T) {
	var got []string
	var depths []int
	Walk(sampleForest(), func(task *Task, depth int) bool {
		got = append(got, task.Text)
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"A", "A1", "A2", "A2a", "B"}, got)
	assert.Equal(t, []int{0, 1, 1, 2, 0}, depths)
}

func TestWalk_SkipChildren(t *testing.T) {
	var got []string
	Walk(sampleForest(), func(task *Task, _ int) bool {
		got = append(got, task.Text)
		return task.Text != "A"
	})
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestContainsAndIndexOf(t *testing.T) {
	forest := sampleForest()
	a := forest[0]
	a2a := a.Children[1].Children[0]

	assert.True(t, a.Contains(a))
	assert.True(t, a.Contains(a2a))
	assert.False(t, a.Contains(forest[1]))
	assert.Equal(t, 1, a.IndexOf(a.Children[1]))
	assert.Equal(t, -1, a.IndexOf(a2a))
}

func TestCloneForest_IsDeep(t *testing.T) {
	orig := sampleForest()
	cp := CloneForest(orig)
	require.True(t, ForestEqual(orig, cp))

	cp[0].Children[1].Children[0].Text = "changed"
	assert.Equal(t, "A2a", orig[0].Children[1].Children[0].Text)
	assert.False(t, ForestEqual(orig, cp))
}

func TestEqual_DetectsFlagDifference(t *testing.T) {
	a := sampleForest()
	b := sampleForest()
	b[1].Urgent = true
	assert.False(t, ForestEqual(a, b))
	assert.False(t, ForestEqual(a, a[:1]))
	assert.True(t, (*Task)(nil).Equal(nil))
}

func TestParseError_IsAndUnwrap(t *testing.T) {
	err := error(&ParseError{Line: 3, Column: 7, Err: io.ErrUnexpectedEOF})
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "line 3, column 7")

	noPos := &ParseError{Err: errors.New("boom")}
	assert.Equal(t, "malformed plan document: boom", noPos.Error())
}

func TestIOError_IsAndUnwrap(t *testing.T) {
	err := error(&IOError{Op: "write", Path: "planning/w1.xml", Err: io.ErrShortWrite})
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.NotErrorIs(t, err, ErrParse)
	assert.Equal(t, "write planning/w1.xml: short write", err.Error())
}
