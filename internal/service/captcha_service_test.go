package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChallengeMatches_CaseInsensitive(t *testing.T) {
	assert.True(t, challengeMatches("k7mp3q", "k7mp3q"))
	assert.True(t, challengeMatches("k7mp3q", "K7MP3Q"))
}

func TestChallengeMatches_Mismatch(t *testing.T) {
	assert.False(t, challengeMatches("k7mp3q", "k7mp3x"))
}

func TestChallengeMatches_WrongLength(t *testing.T) {
	assert.False(t, challengeMatches("k7mp3q", "k7mp3"))
	assert.False(t, challengeMatches("k7mp3q", "k7mp3q9"))
	assert.False(t, challengeMatches("k7mp3q", ""))
}

func TestGenerateChallenge(t *testing.T) {
	value, err := generateChallenge()
	assert.NoError(t, err)
	assert.Len(t, value, challengeLength)
	for _, r := range value {
		assert.True(t, strings.ContainsRune(challengeAlphabet, r), "unexpected character %q", r)
	}
}
