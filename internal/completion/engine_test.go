package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	cleared int
}

func (h *fakeHistory) ClearHistory() { h.cleared++ }

func newTestEngine(tokens ...string) *Engine {
	e := NewEngine()
	e.Initialize(tokens)
	return e
}

func TestSuggestEmptyPartialReturnsPoolInOrder(t *testing.T) {
	e := newTestEngine("red fur", "((blue eyes))", "happy")

	assert.Equal(t, []string{"red fur", "((blue eyes))", "happy"}, e.Matches(""))
	assert.Equal(t, []string{"red fur", "((blue eyes))", "happy"}, e.Matches("   "))

	got, ok := e.Suggest("", 1)
	require.True(t, ok)
	assert.Equal(t, "((blue eyes))", got)
}

func TestSuggestUsesSubstringMatch(t *testing.T) {
	e := newTestEngine("red fur", "blue fur", "furry tail", "happy")

	assert.Equal(t, []string{"red fur", "blue fur", "furry tail"}, e.Matches("fur"))
	assert.Equal(t, []string{"blue fur"}, e.Matches(" blue "))
	assert.Empty(t, e.Matches("xyz"))
}

func TestSuggestIsCaseSensitive(t *testing.T) {
	e := newTestEngine("BREAK", "break dance")

	assert.Equal(t, []string{"BREAK"}, e.Matches("BRE"))
	assert.Equal(t, []string{"break dance"}, e.Matches("bre"))
}

func TestSuggestOutOfRange(t *testing.T) {
	e := newTestEngine("a", "b")

	_, ok := e.Suggest("", 2)
	assert.False(t, ok)
	_, ok = e.Suggest("", -1)
	assert.False(t, ok)
	_, ok = NewEngine().Suggest("", 0)
	assert.False(t, ok)
}

func TestSuggestIsRecomputedPerCall(t *testing.T) {
	e := newTestEngine("apple", "apricot", "banana")

	first, ok := e.Suggest("ap", 1)
	require.True(t, ok)
	assert.Equal(t, "apricot", first)

	// A different partial at the same index is filtered from scratch.
	second, ok := e.Suggest("an", 0)
	require.True(t, ok)
	assert.Equal(t, "banana", second)

	again, ok := e.Suggest("ap", 1)
	require.True(t, ok)
	assert.Equal(t, "apricot", again)
}

func TestRemoveDropsTokensAndIgnoresUnknown(t *testing.T) {
	e := newTestEngine("a", "b", "a", "c")

	e.Remove([]string{"a", "missing"})

	assert.Equal(t, []string{"b", "c"}, e.Pool())
	for i := 0; ; i++ {
		got, ok := e.Suggest("", i)
		if !ok {
			break
		}
		assert.NotEqual(t, "a", got)
	}
}

func TestRemoveIsMonotonic(t *testing.T) {
	e := newTestEngine("a", "b", "c")

	e.Remove([]string{"b"})
	e.Remove(nil)
	e.Remove([]string{"b"})

	assert.Equal(t, []string{"a", "c"}, e.Pool())
}

func TestInitializeClearsHistoryAndDeduplicates(t *testing.T) {
	history := &fakeHistory{}
	e := NewEngine(WithHistory(history))

	e.Initialize([]string{"x", "y", "x"})

	assert.Equal(t, 1, history.cleared)
	assert.Equal(t, []string{"x", "y"}, e.Pool())

	e.Initialize([]string{"z"})
	assert.Equal(t, 2, history.cleared)
	assert.Equal(t, []string{"z"}, e.Pool())
}

func TestBindAttachesHistoryAfterConstruction(t *testing.T) {
	history := &fakeHistory{}
	e := NewEngine(WithLogger(nil))
	e.Bind(history)

	e.Initialize(nil)

	assert.Equal(t, 1, history.cleared)
	assert.Empty(t, e.Pool())
}

func TestPoolReturnsCopy(t *testing.T) {
	e := newTestEngine("a")
	pool := e.Pool()
	pool[0] = "mutated"
	assert.Equal(t, []string{"a"}, e.Pool())
}
