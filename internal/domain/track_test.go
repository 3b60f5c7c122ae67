package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionSpecToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Token("subitizingOrdered"), SessionSpec{Type: SessionTypeSubitizing, IsOrdered: true}.Token(0))
	assert.Equal(t, Token("numbersUnordered"), SessionSpec{Type: SessionTypeNumbers}.Token(1))
	assert.Equal(t, Token("equations3"), SessionSpec{Type: SessionTypeEquations}.Token(2))
}

func TestScheduleRequiredTokens(t *testing.T) {
	t.Parallel()

	s := Schedule{
		ActiveDay: 31,
		SessionContent: []Session{
			{{Type: SessionTypeSubitizing, IsOrdered: true}, {Type: SessionTypeNumbers}},
			{{Type: SessionTypeNumbers, IsOrdered: true}, {Type: SessionTypeSubitizing}},
		},
	}

	assert.Equal(t, []Token{"subitizingOrdered", "numbersUnordered", "numbersOrdered", "subitizingUnordered"}, s.RequiredTokens())
	assert.Equal(t, []Token{"numbersOrdered", "subitizingUnordered"}, s.SessionTokens(1))
	assert.Nil(t, s.SessionTokens(5))
	assert.True(t, s.Requires("numbersOrdered"))
	assert.False(t, s.Requires("equations1"))
}

func TestParseSessionKey(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		key   string
		index int
		ok    bool
	}{
		{key: "session1", index: 0, ok: true},
		{key: "session12", index: 11, ok: true},
		{key: "session0", ok: false},
		{key: "session", ok: false},
		{key: "sessionX", ok: false},
		{key: "lesson1", ok: false},
		{key: "session+1", ok: false},
		{key: "session-2", ok: false},
		{key: "session01", ok: false},
		{key: "session 1", ok: false},
		{key: "session99999999999999999999", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			idx, ok := ParseSessionKey(tc.key)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.index, idx)
				assert.Equal(t, tc.key, SessionKey(idx))
			}
		})
	}
}
