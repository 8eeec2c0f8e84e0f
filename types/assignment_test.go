package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignment(t *testing.T) {
	build := func() Assignment {
		a := make(Assignment)
		a.Grant("w1", SectionRef{TaskID: "taskA", Section: 1})
		a.Grant("w1", SectionRef{TaskID: "taskA", Section: 2})
		a.Grant("w1", SectionRef{TaskID: "taskB", Section: 1})
		a.Grant("w2", SectionRef{TaskID: "taskC", Section: 1})

		return a
	}

	t.Run("counting helpers", func(t *testing.T) {
		a := build()

		require.Equal(t, 3, a.Sections("w1"))
		require.Equal(t, 2, a.CountFor("w1", "taskA"))
		require.Equal(t, 2, a.DistinctTasks("w1"))
		require.Equal(t, 1, a.DistinctTasks("w2"))
		require.Equal(t, 4, a.TotalSections())
		require.Zero(t, a.Sections("absent"))
	})

	t.Run("Workers returns sorted IDs", func(t *testing.T) {
		require.Equal(t, []string{"w1", "w2"}, build().Workers())
	})

	t.Run("Clone is deep", func(t *testing.T) {
		a := build()
		c := a.Clone()
		c.Grant("w2", SectionRef{TaskID: "taskC", Section: 2})

		require.Equal(t, 1, a.Sections("w2"))
		require.Equal(t, 2, c.Sections("w2"))
	})
}

func TestSectionRef(t *testing.T) {
	t.Run("String format", func(t *testing.T) {
		require.Equal(t, "taskA#2", SectionRef{TaskID: "taskA", Section: 2}.String())
	})

	t.Run("Compare orders by task then section", func(t *testing.T) {
		a1 := SectionRef{TaskID: "taskA", Section: 1}
		a2 := SectionRef{TaskID: "taskA", Section: 2}
		b1 := SectionRef{TaskID: "taskB", Section: 1}

		require.Negative(t, a1.Compare(a2))
		require.Negative(t, a2.Compare(b1))
		require.Positive(t, b1.Compare(a1))
		require.Zero(t, a1.Compare(a1))
	})
}
