package langalias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCommonAliases(t *testing.T) {
	assert.Equal(t, "javascript", Canonical("js"))
	assert.Equal(t, "python", Canonical("PY"))
	assert.Equal(t, "bash", Canonical("sh"))
}

func TestCanonicalUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "nosuchlanguage", Canonical("NoSuchLanguage"))
}

func TestCanonicalEmpty(t *testing.T) {
	assert.Equal(t, "", Canonical(""))
	assert.Equal(t, "", Canonical("   "))
}
