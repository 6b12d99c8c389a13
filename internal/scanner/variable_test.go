package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVariableName_BareAssignment(t *testing.T) {
	assert.Equal(t, "API_KEY", extractVariableName(`API_KEY = "`))
}

func TestExtractVariableName_ColonAssignment(t *testing.T) {
	assert.Equal(t, "api_key", extractVariableName(`api_key: "`))
}

func TestExtractVariableName_QuotedKey(t *testing.T) {
	assert.Equal(t, "api_key", extractVariableName(`"api_key": "`))
}

func TestExtractVariableName_ShoutyEnvVar(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", extractVariableName(`export OPENAI_API_KEY=`))
}

func TestExtractVariableName_NoAssignmentReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", extractVariableName("just some prose with no assignment at all"))
}

func TestExtractVariableName_UsesClosestPrecedingMatch(t *testing.T) {
	got := extractVariableName(`OTHER_VAR = "x"` + "\n" + `API_KEY = "`)
	assert.Equal(t, "API_KEY", got)
}

func TestExtractVariableName_TruncatesLongLookback(t *testing.T) {
	padding := make([]byte, 200)
	for i := range padding {
		padding[i] = ' '
	}
	preceding := string(padding) + `API_KEY = "`
	assert.Equal(t, "API_KEY", extractVariableName(preceding))
}

func TestExtractVariableName_EmptyInput(t *testing.T) {
	assert.Equal(t, "", extractVariableName(""))
}
