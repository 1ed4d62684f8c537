package pgutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPatternEscapesMetacharacters(t *testing.T) {
	assert.Equal(t, `%50\%\_off%`, ContainsPattern("50%_off"))
	assert.Equal(t, `%a\\b%`, ContainsPattern(`a\b`))
	assert.Equal(t, `%go%`, ContainsPattern("go"))
}
