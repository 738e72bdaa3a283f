package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGitURL(t *testing.T) {
	assert.True(t, isGitURL("https://github.com/example/repo.git"))
	assert.True(t, isGitURL("git@github.com:example/repo.git"))
	assert.True(t, isGitURL("git@internal:tools"))
	assert.False(t, isGitURL("https://github.com/example/repo"))
	assert.False(t, isGitURL("./local/path"))
	assert.False(t, isGitURL("notes.txt"))
}
