package captcha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewChallenge(t *testing.T) {
	for i := 0; i < 1000; i++ {
		challenge := NewChallenge()

		assert.GreaterOrEqual(t, challenge.A, 1)
		assert.LessOrEqual(t, challenge.A, 10)
		assert.GreaterOrEqual(t, challenge.B, 1)
		assert.LessOrEqual(t, challenge.B, 10)

		switch challenge.Op {
		case OperatorAdd:
			assert.Equal(t, challenge.A+challenge.B, challenge.Expected)
		case OperatorSubtract:
			assert.Equal(t, challenge.A-challenge.B, challenge.Expected)
			assert.GreaterOrEqual(t, challenge.Expected, 0)
		case OperatorMultiply:
			assert.Equal(t, challenge.A*challenge.B, challenge.Expected)
		default:
			t.Fatalf("unexpected operator %q", challenge.Op)
		}
	}
}

func TestGateVerifiesOnExactAnswer(t *testing.T) {
	gate := NewGate()

	ok := gate.SubmitAnswer(gate.Challenge.Expected)

	assert.True(t, ok)
	assert.True(t, gate.Verified)
}

func TestGateStaysUnverifiedOnWrongAnswer(t *testing.T) {
	gate := NewGate()
	before := gate.Challenge

	ok := gate.SubmitAnswer(gate.Challenge.Expected + 1)

	assert.False(t, ok)
	assert.False(t, gate.Verified)
	// a wrong guess must not regenerate the challenge
	assert.Equal(t, before, gate.Challenge)

	// and the same challenge can still be answered correctly afterwards
	assert.True(t, gate.SubmitAnswer(before.Expected))
	assert.True(t, gate.Verified)
}

func TestGateResetInvalidatesVerification(t *testing.T) {
	gate := NewGate()
	gate.SubmitAnswer(gate.Challenge.Expected)
	assert.True(t, gate.Verified)

	gate.Reset()

	assert.False(t, gate.Verified)
}

func TestQuestion(t *testing.T) {
	challenge := Challenge{A: 3, Op: OperatorAdd, B: 4, Expected: 7}

	assert.Equal(t, "3 + 4", challenge.Question())
}
