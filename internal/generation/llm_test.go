package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLLMGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMGenerator(context.Background(), "", "")
	assert.Error(t, err)
}

func TestCleanJSONBlock_Plain(t *testing.T) {
	assert.Equal(t, `{"name": "Jane"}`, cleanJSONBlock(`{"name": "Jane"}`))
}

func TestCleanJSONBlock_MarkdownFence(t *testing.T) {
	wrapped := "```json\n{\"name\": \"Jane\"}\n```"
	assert.Equal(t, `{"name": "Jane"}`, cleanJSONBlock(wrapped))
}

func TestCleanJSONBlock_BareFence(t *testing.T) {
	wrapped := "```\n{\"name\": \"Jane\"}\n```"
	assert.Equal(t, `{"name": "Jane"}`, cleanJSONBlock(wrapped))
}

func TestCleanJSONBlock_Whitespace(t *testing.T) {
	assert.Equal(t, `{}`, cleanJSONBlock("  \n{}\n  "))
}
