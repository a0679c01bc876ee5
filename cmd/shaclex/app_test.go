package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/shaclex/config"
	"github.com/c360studio/shaclex/translate"
)

const sampleTurtle = `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ex: <http://example.org/> .

ex:GenderShape a sh:NodeShape ;
    sh:targetClass ex:GenderClass ;
    sh:property [ sh:path rdfs:label ; sh:datatype xsd:string ; sh:minCount 1 ; sh:maxCount 1 ] .
`

func TestTranslateFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gender.ttl")
	out := filepath.Join(dir, "gender.shex")
	require.NoError(t, os.WriteFile(in, []byte(sampleTurtle), 0o644))

	app := NewApp(config.DefaultConfig())
	require.NoError(t, app.TranslateFile(in, translate.SHACLToShEx, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Gender> EXTRA rdf:type {")
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ttl"), []byte(sampleTurtle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.ttl"), []byte(sampleTurtle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not a schema"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Batch.Patterns = []string{"**/*.ttl"}

	app := NewApp(cfg)
	require.NoError(t, app.RunBatch(context.Background(), dir))

	for _, want := range []string{"a.shex", filepath.Join("nested", "b.shex")} {
		_, err := os.Stat(filepath.Join(dir, want))
		assert.NoError(t, err, "expected %s to be written", want)
	}
}

func TestRunBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.ttl"), []byte(sampleTurtle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.shex"), []byte("<A> { nope:p . }"), 0o644))

	app := NewApp(config.DefaultConfig())
	err := app.RunBatch(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")

	// The good file still translated.
	_, statErr := os.Stat(filepath.Join(dir, "good.shex"))
	assert.NoError(t, statErr)
}

func TestMatchesBatch(t *testing.T) {
	cfg := config.DefaultConfig()
	app := NewApp(cfg)

	assert.True(t, app.matchesBatch("/data/schemas/a.ttl", "/data"))
	assert.True(t, app.matchesBatch("/data/deep/nested/b.shex", "/data"))
	assert.False(t, app.matchesBatch("/data/readme.md", "/data"))
}
