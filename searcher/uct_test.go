package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(Exploration, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCB1 value", func(t *testing.T) {
		policy := newUCT(1.4, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + 1.4*math.Sqrt(2*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + c*sqrt(2*ln(N)/n)")
	})

	t.Run("reducing to the mean reward without exploration", func(t *testing.T) {
		policy := newUCT(0, 100)

		require.InDelta(t, -0.3, policy.evaluate(-3, 10), 0.0001,
			"Should compute q/n when c is 0")
	})

	t.Run("ignoring exploration for a single parent visit", func(t *testing.T) {
		policy := newUCT(1.4, 1)

		require.InDelta(t, 1.0, policy.evaluate(1, 1), 0.0001,
			"ln(1) should cancel the exploration term")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(1.4, 100)

		require.Panics(t, func() {
			policy.evaluate(5.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy1 := newUCT(1.4, 100)
		policy2 := newUCT(1.4, 1000)

		require.Greater(t, policy2.evaluate(5, 10), policy1.evaluate(5, 10),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCT(1.4, 100)

		require.Greater(t, policy.evaluate(5, 10), policy.evaluate(5, 20),
			"More child visits should decrease exploration term")
	})
}
