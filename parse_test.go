package locqa_test

import (
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	t.Run("finds object embedded in prose", func(t *testing.T) {
		t.Parallel()

		obj, ok := locqa.ExtractJSONObject(`Sure! Here is my answer: {"action": "SEARCH"} hope that helps`)

		require.True(t, ok)
		assert.Equal(t, `{"action": "SEARCH"}`, obj)
	})

	t.Run("braces inside string literals do not affect nesting", func(t *testing.T) {
		t.Parallel()

		obj, ok := locqa.ExtractJSONObject(`{"reason": "uses {braces} and \"quotes\""}`)

		require.True(t, ok)
		assert.Equal(t, `{"reason": "uses {braces} and \"quotes\""}`, obj)
	})

	t.Run("returns the first balanced object", func(t *testing.T) {
		t.Parallel()

		obj, ok := locqa.ExtractJSONObject(`{"a": 1} {"b": 2}`)

		require.True(t, ok)
		assert.Equal(t, `{"a": 1}`, obj)
	})

	t.Run("nested objects are kept whole", func(t *testing.T) {
		t.Parallel()

		obj, ok := locqa.ExtractJSONObject(`prefix {"outer": {"inner": 1}} suffix`)

		require.True(t, ok)
		assert.Equal(t, `{"outer": {"inner": 1}}`, obj)
	})

	t.Run("unbalanced input yields nothing", func(t *testing.T) {
		t.Parallel()

		_, ok := locqa.ExtractJSONObject(`{"never": "closed"`)
		assert.False(t, ok)
	})

	t.Run("no object yields nothing", func(t *testing.T) {
		t.Parallel()

		_, ok := locqa.ExtractJSONObject("just plain text")
		assert.False(t, ok)
	})
}

func TestDecodeJSONObject(t *testing.T) {
	t.Parallel()

	t.Run("decodes embedded decision", func(t *testing.T) {
		t.Parallel()

		var d locqa.Decision
		ok := locqa.DecodeJSONObject(`I think: {"action": "DIRECT", "reason": "greeting"}`, &d)

		require.True(t, ok)
		assert.Equal(t, locqa.ActionDirect, d.Action)
		assert.Equal(t, "greeting", d.Reason)
	})

	t.Run("malformed object fails", func(t *testing.T) {
		t.Parallel()

		var d locqa.Decision
		assert.False(t, locqa.DecodeJSONObject(`{"action": }`, &d))
	})
}

func TestContainsKeyword(t *testing.T) {
	t.Parallel()

	assert.True(t, locqa.ContainsKeyword("I would search_code here", "SEARCH_CODE"))
	assert.True(t, locqa.ContainsKeyword("Confidence: High", "HIGH"))
	assert.False(t, locqa.ContainsKeyword("nothing relevant", "SEARCH"))
}
