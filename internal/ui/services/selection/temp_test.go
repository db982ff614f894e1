package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedEngine(t *testing.T, titles ...string) (*Service, *fakeData, *fakeView, *manualScheduler) {
	t.Helper()
	opts := DefaultOptions()
	opts.Multiselect = true
	opts.BufferSelect = true
	svc, data, view, _ := newEngine(opts, titles...)
	sched := &manualScheduler{}
	svc.SetScheduler(sched.schedule)
	return svc, data, view, sched
}

func TestDwellCommitsAfterTimer(t *testing.T) {
	svc, data, view, sched := newBufferedEngine(t, "A", "B")

	ok, err := svc.SetTempSelected(data.node("A"), false, false)
	require.NoError(t, err)
	require.True(t, ok)

	// Tentative only: visuals applied, real selection untouched
	assert.True(t, svc.IsTentative(data.node("A")))
	assert.Empty(t, svc.Items())
	assert.Nil(t, svc.Selected())
	assert.Equal(t, 1, view.count("sel", "A"))
	require.Equal(t, 1, sched.outstanding())

	sched.fire()
	assert.False(t, svc.IsTentative(data.node("A")))
	assert.Equal(t, []string{"A"}, ids(svc.Items()))
	assert.Equal(t, data.node("A"), svc.Selected())
}

func TestSelectTempCommitsBeforeTimer(t *testing.T) {
	svc, data, _, sched := newBufferedEngine(t, "A", "B")

	svc.SetTempSelected(data.node("B"), false, false)
	svc.SelectTemp()

	assert.Equal(t, data.node("B"), svc.Selected())
	assert.Equal(t, 1, sched.canceled)

	// A late timer fire must not double-commit
	sched.fire()
	assert.Equal(t, []string{"B"}, ids(svc.Items()))
}

func TestNewTempReplacesPendingOne(t *testing.T) {
	svc, data, view, sched := newBufferedEngine(t, "A", "B", "C")

	svc.SetTempSelected(data.node("A"), false, false)
	svc.SetTempSelected(data.node("B"), false, false)

	// The first tentative item is visually undone, never committed
	assert.Equal(t, 1, view.count("desel", "A"))
	assert.True(t, svc.IsTentative(data.node("B")))
	require.Equal(t, 1, sched.outstanding())

	sched.fire()
	assert.Equal(t, []string{"B"}, ids(svc.Items()))
}

func TestTempCtrlCommitsThenMovesFocusOnly(t *testing.T) {
	svc, data, _, _ := newBufferedEngine(t, "A", "B")

	svc.SetTempSelected(data.node("A"), false, false)
	ok, err := svc.SetTempSelected(data.node("B"), true, false)
	require.NoError(t, err)
	require.True(t, ok)

	// The tentative item commits; ctrl then only repositions focus
	assert.Equal(t, []string{"A"}, ids(svc.Items()))
	assert.Equal(t, data.node("A"), svc.Selected())
	assert.Equal(t, data.node("B"), svc.Indicator())
}

func TestTempShiftPerformsRangeSelect(t *testing.T) {
	svc, data, _, _ := newBufferedEngine(t, "A", "B", "C", "D")

	svc.Select(data.node("B"), Request{})
	ok, err := svc.SetTempSelected(data.node("D"), false, true)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"B", "C", "D"}, ids(svc.Items()))
}

func TestTempShiftBeatsStickyCtrl(t *testing.T) {
	svc, data, _, _ := newBufferedEngine(t, "A", "B", "C")
	opts := svc.Options()
	opts.CtrlSelect = true
	svc.SetOptions(opts)

	svc.Select(data.node("A"), Request{})
	svc.SetTempSelected(data.node("C"), false, true)

	assert.Equal(t, []string{"A", "B", "C"}, ids(svc.Items()))
}

func TestStickyCtrlTreatsPlainClickAsCtrl(t *testing.T) {
	svc, data, _, _ := newBufferedEngine(t, "A", "B")
	opts := svc.Options()
	opts.CtrlSelect = true
	svc.SetOptions(opts)

	svc.Select(data.node("A"), Request{})
	svc.SetTempSelected(data.node("B"), false, false)

	// Sticky ctrl turns the click into a focus move, preserving selection
	assert.Equal(t, []string{"A"}, ids(svc.Items()))
	assert.Equal(t, data.node("B"), svc.Indicator())
}

func TestTempBypassesBufferingWithMultiSelection(t *testing.T) {
	svc, data, _, sched := newBufferedEngine(t, "A", "B", "C")

	svc.Select(data.node("A"), Request{})
	svc.Select(data.node("B"), Request{Ctrl: true})
	require.Equal(t, 2, svc.Count())

	// With more than one item selected the click commits immediately
	svc.SetTempSelected(data.node("C"), false, false)
	assert.Equal(t, []string{"C"}, ids(svc.Items()))
	assert.Equal(t, 0, sched.outstanding())
}

func TestUnbufferedClickSelectsImmediately(t *testing.T) {
	opts := DefaultOptions()
	svc, data, _, _ := newEngine(opts, "A")
	sched := &manualScheduler{}
	svc.SetScheduler(sched.schedule)

	ok, err := svc.SetTempSelected(data.node("A"), false, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, data.node("A"), svc.Selected())
	assert.Equal(t, 0, sched.outstanding())
}

func TestDwellMatchesDirectSelectResult(t *testing.T) {
	direct, dData, _, _ := newEngine(DefaultOptions(), "A", "B")
	direct.Select(dData.node("B"), Request{})

	buffered, bData, _, sched := newBufferedEngine(t, "A", "B")
	buffered.SetTempSelected(bData.node("B"), false, false)
	sched.fire()

	assert.Equal(t, ids(direct.Items()), ids(buffered.Items()))
	assert.Equal(t, direct.Selected().ID, buffered.Selected().ID)
	assert.Equal(t, direct.Indicator().ID, buffered.Indicator().ID)
}

func TestCloseCancelsPendingDwell(t *testing.T) {
	svc, data, _, sched := newBufferedEngine(t, "A")

	svc.SetTempSelected(data.node("A"), false, false)
	svc.Close()

	sched.fire()
	assert.Empty(t, svc.Items())
	assert.Nil(t, svc.Selected())
}
