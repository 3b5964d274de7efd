package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const concatFixture = `
suite: SomeSampleTest
catalog: concat
sets:
  - parts: []
    expected: ""
  - expected: Brian
    parts: [Brian]
  - parts: [Brian, Coyner]
    expected: BrianCoyner
`

func TestParse(t *testing.T) {
	doc, err := Parse("concat.cases.yaml", []byte(concatFixture))
	require.NoError(t, err)

	assert.Equal(t, "SomeSampleTest", doc.Suite)
	assert.Equal(t, "concat", doc.Catalog)
	require.Len(t, doc.Sets, 3)

	assert.Equal(t, []string{}, doc.Sets[0].MustStrings("parts"))
	assert.Equal(t, "", doc.Sets[0].MustString("expected"))

	// declaration order is kept per set
	assert.Equal(t, []string{"expected", "parts"}, doc.Sets[1].Names())
	assert.Equal(t, 1, doc.Sets[1].Index())

	assert.Equal(t, []string{"Brian", "Coyner"}, doc.Sets[2].MustStrings("parts"))
}

func TestParse_ScalarShapes(t *testing.T) {
	doc, err := Parse("x.yaml", []byte(`
catalog: concat
sets:
  - n: 3
    ok: true
    mixed: [a, 1]
`))
	require.NoError(t, err)
	require.Len(t, doc.Sets, 1)

	assert.Equal(t, 3, doc.Sets[0].MustInt("n"))
	assert.True(t, doc.Sets[0].MustBool("ok"))
	_, err = doc.Sets[0].GetStrings("mixed")
	assert.ErrorIs(t, err, ErrMistypedField)
}

func TestParse_Defaults(t *testing.T) {
	doc, err := Parse("/tmp/fixtures/greeting.cases.yml", []byte("catalog: concat\nsets: []\n"))
	require.NoError(t, err)

	assert.Equal(t, "greeting", doc.Suite)
	assert.Empty(t, doc.Sets)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty", input: "", wantMsg: "empty document"},
		{name: "not a mapping", input: "- a\n- b\n", wantMsg: "expected a mapping"},
		{name: "unknown key", input: "catalog: concat\nfoo: 1\n", wantMsg: `unknown key "foo"`},
		{name: "missing catalog", input: "sets: []\n", wantMsg: "catalog is required"},
		{name: "sets not a sequence", input: "catalog: concat\nsets: 3\n", wantMsg: "sets must be a sequence"},
		{name: "set not a mapping", input: "catalog: concat\nsets:\n  - 1\n", wantMsg: "set 0 must be a mapping"},
		{name: "duplicate top-level key", input: "catalog: concat\nsets: []\ncatalog: other\n", wantMsg: `line 3: duplicate key "catalog" (first defined on line 1)`},
		{
			name:    "duplicate key in set",
			input:   "catalog: concat\nsets:\n  - parts: [a]\n    expected: a\n  - parts: [b]\n    expected: b\n    expected: c\n",
			wantMsg: `set 1: line 7: duplicate key "expected" (first defined on line 6)`,
		},
		{name: "invalid yaml", input: "catalog: [\n", wantMsg: "parse fixture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", []byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "concat.cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(concatFixture), 0644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Len(t, doc.Sets, 3)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
