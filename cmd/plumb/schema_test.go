package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glaszig/plumb/schema"
	"github.com/glaszig/plumb/visitor"
)

func TestRunSchema_ProducesObjectSchema(t *testing.T) {
	hash, err := schema.FromYAML([]byte("name: string\n"))
	require.NoError(t, err)

	out := visitor.JSONSchema(hash)
	assert.Equal(t, "object", out["type"])
	assert.Contains(t, out, "properties")
}
