package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/retrolex/internal/dialect"
)

func TestInitialState(t *testing.T) {
	st := InitialState()
	assert.False(t, st.InString)
	assert.True(t, st.AtLineStart)
	assert.True(t, replayBoundary(st))
}

func TestState_SanitizeForeignDelimiter(t *testing.T) {
	// A single-quote string left open under 6502 assembly means nothing to
	// Color BASIC, whose only delimiter is the double quote.
	st := State{InString: true, Delimiter: '\''}
	line := "10 PRINT"

	spans, next := TokenizeLine(line, st, dialect.ColorBasicDialect)
	assert.Equal(t, []tok{{"10", num}, {" ", none}, {"PRINT", kw}}, toks(line, spans))
	assert.Equal(t, InitialState(), next)
}

func TestState_SanitizeMissingDelimiter(t *testing.T) {
	spans, _ := TokenizeLine("LDA", State{InString: true}, dialect.Asm6502)
	assert.Equal(t, []tok{{"LDA", kw}}, toks("LDA", spans))
}

func TestState_YAML(t *testing.T) {
	st := State{InString: true, Delimiter: '"'}
	data, err := yaml.Marshal(st)
	assert.NoError(t, err)

	var back State
	assert.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, st, back)
}
