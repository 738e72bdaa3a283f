package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTiktokenCounterNilEncoding(t *testing.T) {
	// A counter that lost its encoding degrades to zero instead of
	// panicking mid-stream.
	c := &tiktokenCounter{}
	assert.Zero(t, c.CountTokens("some text"))
}
