package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGiftCode(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^DAH-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}-[A-HJ-NP-Z2-9]{4}$`)
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code, err := GenerateGiftCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		assert.NotContains(t, code[4:], "0")
		assert.NotContains(t, code[4:], "1")
		seen[code] = true
	}

	assert.Greater(t, len(seen), 190)
}
