package question

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvBank = `id,prompt,A,B,C,D,answer,explanation,chapter,tags
1, What is ATP? ,energy,fat,sugar,water,a,It stores energy.,8,"Enzymes; ATP"
2,Where is glycolysis?,matrix,cytosol,nucleus,lumen,B,,9,
`

const jsonBank = `[
  {"id": 1, "prompt": " What is ATP? ", "A": "energy", "B": "fat", "C": "sugar", "D": "water",
   "answer": "a", "explanation": "It stores energy.", "chapter": 8, "tags": ["Enzymes", "ATP"]},
  {"ID": "2", "prompt": "Where is glycolysis?", "A": "matrix", "B": "cytosol", "C": "nucleus", "D": "lumen",
   "answer": "B", "chapter": "9"}
]`

const yamlBank = `
- id: 1
  prompt: " What is ATP? "
  A: energy
  B: fat
  C: sugar
  D: water
  answer: a
  explanation: It stores energy.
  chapter: 8
  tags: [Enzymes, ATP]
- id: "2"
  prompt: Where is glycolysis?
  A: matrix
  B: cytosol
  C: nucleus
  D: lumen
  answer: B
  chapter: "9"
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestFormatsAgree(t *testing.T) {
	fromCSV, err := ParseCSV(strings.NewReader(csvBank))
	require.NoError(t, err)
	fromJSON, err := ParseJSON([]byte(jsonBank))
	require.NoError(t, err)
	fromYAML, err := ParseYAML([]byte(yamlBank))
	require.NoError(t, err)

	require.Len(t, fromCSV, 2)
	assert.Equal(t, fromCSV, fromJSON)
	assert.Equal(t, fromCSV, fromYAML)

	q := fromCSV[0]
	assert.Equal(t, "1", q.ID)
	assert.Equal(t, "What is ATP?", q.Prompt)
	assert.Equal(t, LabelA, q.Answer)
	assert.Equal(t, "8", q.Chapter)
	assert.Equal(t, []string{"enzymes", "atp"}, q.Tags)
	assert.Nil(t, fromCSV[1].Tags)
}

func TestParseJSON_SchemaViolation(t *testing.T) {
	tests := map[string]string{
		"not an array":   `{"prompt": "x"}`,
		"missing option": `[{"prompt": "p", "A": "a", "B": "b", "C": "c", "answer": "A"}]`,
		"bad answer":     `[{"prompt": "p", "A": "a", "B": "b", "C": "c", "D": "d", "answer": "E"}]`,
		"invalid json":   `[{`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON([]byte(in))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
		})
	}
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("id,prompt,A,B,C\n1,p,a,b,c\n"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), `missing column "D"`)

	_, err = ParseCSV(strings.NewReader("id,prompt,A,B,C,D,answer\n1,p,a,b,c,d,A\n2,p,a,b,c,d,Z\n"))
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Record)
	assert.True(t, errors.Is(err, ErrInvalidQuestion))
}

func TestParseCSV_Empty(t *testing.T) {
	qs, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestLoadFile_ByExtension(t *testing.T) {
	for name, content := range map[string]string{
		"bank.csv":  csvBank,
		"bank.json": jsonBank,
		"bank.yml":  yamlBank,
	} {
		t.Run(name, func(t *testing.T) {
			qs, err := LoadFile(writeFile(t, name, content))
			require.NoError(t, err)
			assert.Len(t, qs, 2)
		})
	}
}

func TestLoadFile_ParseErrorCarriesPath(t *testing.T) {
	p := writeFile(t, "bad.json", `[{"prompt": 1}]`)
	_, err := LoadFile(p)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, p, pe.Path)
}

func TestLoadOrBuiltin(t *testing.T) {
	log := discardLogger()

	assert.Len(t, LoadOrBuiltin("", log), 40)
	assert.Len(t, LoadOrBuiltin(filepath.Join(t.TempDir(), "missing.csv"), log), 40)
	assert.Len(t, LoadOrBuiltin(writeFile(t, "bad.json", "nope"), log), 40)
	assert.Len(t, LoadOrBuiltin(writeFile(t, "ok.csv", csvBank), log), 2)
}
