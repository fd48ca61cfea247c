package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode_NonTerminalDefaultsToJSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeAuto)
	assert.Equal(t, ModeJSON, r.EffectiveMode())
}

func TestEffectiveMode_ExplicitModeWins(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeText)
	assert.Equal(t, ModeText, r.EffectiveMode())
}

func TestIsStructured(t *testing.T) {
	var out bytes.Buffer
	assert.False(t, NewRenderer(&out, &out, ModeText).IsStructured())
	assert.True(t, NewRenderer(&out, &out, ModeJSON).IsStructured())
	assert.True(t, NewRenderer(&out, &out, ModeYAML).IsStructured())
}

func TestStructured_JSONAndYAML(t *testing.T) {
	type payload struct {
		Name  string `json:"name" yaml:"name"`
		Count int    `json:"count" yaml:"count"`
	}
	v := payload{Name: "demo", Count: 2}

	var jsonOut bytes.Buffer
	require.NoError(t, NewRenderer(&jsonOut, &jsonOut, ModeJSON).Structured(v))
	assert.Contains(t, jsonOut.String(), `"name": "demo"`)

	var yamlOut bytes.Buffer
	require.NoError(t, NewRenderer(&yamlOut, &yamlOut, ModeYAML).Structured(v))
	assert.Contains(t, yamlOut.String(), "name: demo")
}

func TestPrintlnAndErrorln_SeparateWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	r.Println("to stdout")
	r.Errorln("to stderr")

	assert.Equal(t, "to stdout\n", out.String())
	assert.Equal(t, "to stderr\n", errOut.String())
	assert.False(t, strings.Contains(out.String(), "stderr"))
}
