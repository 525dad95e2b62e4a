package captcha

import (
	"fmt"
	"math/rand"
	"time"
)

var r *rand.Rand

func init() {
	r = rand.New(rand.NewSource(time.Now().Unix()))
}

const (
	OperatorAdd      = "+"
	OperatorSubtract = "-"
	OperatorMultiply = "×"
)

// Challenge is a small arithmetic question shown to the shopper.
type Challenge struct {
	A        int
	Op       string
	B        int
	Expected int
}

func (c Challenge) Question() string {
	return fmt.Sprintf("%d %s %d", c.A, c.Op, c.B)
}

// Gate is the one-way verification state attached to a challenge: it only moves from
// unverified to verified, and only on an exact answer. A new challenge resets it.
type Gate struct {
	Challenge Challenge
	Verified  bool
}

func NewGate() Gate {
	return Gate{Challenge: NewChallenge()}
}

func NewChallenge() Challenge {
	a := 1 + r.Intn(10)
	b := 1 + r.Intn(10)

	var op string
	switch r.Intn(3) {
	case 0:
		op = OperatorAdd
	case 1:
		op = OperatorSubtract
	default:
		op = OperatorMultiply
	}

	// keep subtraction results non-negative
	if op == OperatorSubtract && b > a {
		a, b = b, a
	}

	challenge := Challenge{A: a, Op: op, B: b}
	switch op {
	case OperatorAdd:
		challenge.Expected = a + b
	case OperatorSubtract:
		challenge.Expected = a - b
	case OperatorMultiply:
		challenge.Expected = a * b
	}

	return challenge
}

// SubmitAnswer verifies the gate on an exact match. A wrong guess leaves the gate
// unverified and keeps the same challenge, so the shopper may retry the same operands.
func (g *Gate) SubmitAnswer(guess int) bool {
	if guess != g.Challenge.Expected {
		return false
	}

	g.Verified = true
	return true
}

// Reset issues a fresh challenge, invalidating any earlier verification.
func (g *Gate) Reset() {
	g.Challenge = NewChallenge()
	g.Verified = false
}
