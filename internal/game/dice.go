package game

import (
	"crypto/rand"
	"math/big"
)

var mockDiceQueue []int

// MockDice prepares a sequence of deterministic results for upcoming die
// rolls. Steal picks draw from the same queue, one entry per pick, taken
// modulo the victim's hand size.
func MockDice(results []int) {
	mockDiceQueue = results
}

// ResetMockDice clears the deterministic queue.
func ResetMockDice() {
	mockDiceQueue = nil
}

// safeRand fetches a strongly uniform random integer on [0,max) via
// crypto/rand.
func safeRand(max int) int {
	if max <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// rollDie produces one d6 result.
func rollDie() int {
	if len(mockDiceQueue) > 0 {
		v := mockDiceQueue[0]
		mockDiceQueue = mockDiceQueue[1:]
		return v
	}
	return safeRand(6) + 1
}

// pickIndex chooses a uniform index on [0,n). Used to pick the stolen card.
func pickIndex(n int) int {
	if len(mockDiceQueue) > 0 {
		v := mockDiceQueue[0]
		mockDiceQueue = mockDiceQueue[1:]
		return v % n
	}
	return safeRand(n)
}
