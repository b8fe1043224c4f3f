package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_RunsMembersInOrderRepeatedly(t *testing.T) {
	t.Parallel()

	const (
		repeats = 5
		runs    = 3
	)
	var trace []string
	var a, b int
	ja := Times(runs, func(float64) error {
		a++
		trace = append(trace, "a")
		return nil
	})
	jb := Times(runs, func(float64) error {
		b++
		// within a repeat, A has completed all its runs before B starts
		assert.Equal(t, 0, a%runs, "a=%d when b runs", a)
		trace = append(trace, "b")
		return nil
	})
	s := NewRepeatedSequence(repeats, ja, jb)

	ticks := 0
	for !s.Finished() {
		s.Execute(0.1)
		ticks++
		require.LessOrEqual(t, ticks, 100, "sequence never finished")
	}

	assert.Equal(t, repeats*runs, a)
	assert.Equal(t, repeats*runs, b)
	assert.Equal(t, 2*repeats*runs, ticks)
	assert.Equal(t, repeats, s.Ran())
	assert.Equal(t, 0, s.Current())
	assert.Equal(t, []string{"a", "a", "a", "b", "b", "b"}, trace[:2*runs])
}

func TestSequence_OnlyCurrentMemberAdvances(t *testing.T) {
	t.Parallel()

	var a, b int
	s := NewSequence(Times(2, counter(&a)), Times(2, counter(&b)))

	s.Execute(0)
	assert.Equal(t, 1, a)
	assert.Equal(t, 0, b)
	assert.Equal(t, 0, s.Current())

	s.Execute(0)
	assert.Equal(t, 1, s.Current())

	s.Execute(0)
	s.Execute(0)
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
	assert.True(t, s.Finished())

	s.Execute(0)
	assert.Equal(t, 2, b)
}

func TestSequence_EmptyOrZeroTimesIsFinished(t *testing.T) {
	t.Parallel()

	assert.True(t, NewSequence().Finished())
	assert.True(t, NewRepeatedSequence(0, Once(func(float64) error { return nil })).Finished())
	require.NotPanics(t, func() { NewSequence().Execute(0) })
}

func TestSequence_InvalidConfigPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { NewRepeatedSequence(-1) })
	require.Panics(t, func() { NewSequence(Once(func(float64) error { return nil }), nil) })
}

func TestSequence_ResetRewindsMembers(t *testing.T) {
	t.Parallel()

	var a int
	ja := Times(2, counter(&a))
	s := NewSequence(ja, Once(func(float64) error { return nil }))
	s.Execute(0)
	require.Equal(t, 1, ja.Runs())

	s.Reset()
	assert.Equal(t, 0, s.Current())
	assert.Equal(t, 0, s.Ran())
	assert.Equal(t, 0, ja.Runs())
	assert.False(t, s.Finished())
}

func TestSequence_DoesNotCallMemberLifecycle(t *testing.T) {
	t.Parallel()

	var events []string
	m := Once(func(float64) error { return nil },
		WithOnCreate(func() { events = append(events, "create") }),
		WithOnDispose(func() { events = append(events, "dispose") }),
	)
	s := NewSequence(m)

	ex := NewExecutor()
	ex.Add(s)
	ex.Execute(0)
	assert.Equal(t, 0, ex.Size())
	assert.Empty(t, events)
}

func TestSequence_SkipsFinishedMember(t *testing.T) {
	t.Parallel()

	var a, b int
	s := NewSequence(Times(0, counter(&a)), Times(1, counter(&b)))

	ex := NewExecutor()
	ex.Add(s)
	for i := 0; i < 5; i++ {
		ex.Execute(0.1)
	}

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.True(t, s.Finished())
	assert.Equal(t, 0, ex.Size())
}

func TestSequence_RepeatedWithZeroBoundMember(t *testing.T) {
	t.Parallel()

	var a, b int
	s := NewRepeatedSequence(3, Times(2, counter(&a)), Times(0, counter(&b)))
	for i := 0; i < 20 && !s.Finished(); i++ {
		s.Execute(0)
	}

	assert.True(t, s.Finished())
	assert.Equal(t, 6, a)
	assert.Equal(t, 0, b)
}
