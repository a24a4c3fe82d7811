package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vizlab-ci/nbprofiler/internal/notebook"
	"github.com/vizlab-ci/nbprofiler/internal/params"
)

const templateContent = `{
 "cells": [
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": "# Notes"
  },
  {
   "cell_type": "code",
   "execution_count": 2,
   "metadata": {"tags": ["parameters"]},
   "outputs": [{"output_type": "stream", "text": "old"}],
   "source": "x_value = {x_value}"
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {},
   "outputs": [],
   "source": "run_pipeline()"
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {},
   "outputs": [],
   "source": "finish()\nprint(\"DONE\")"
  }
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assignment(name string, value params.Value) params.Assignment {
	return params.Assignment{{Name: name, Value: value}}
}

func TestGenerateScenario(t *testing.T) {
	g := New(writeTemplate(t, templateContent))
	nb, err := g.Generate(assignment("x_value", params.IntValue(5)))
	require.NoError(t, err)

	// Markdown cell dropped, the three code cells retained.
	require.Len(t, nb.Cells, 3)
	assert.Equal(t, "x_value = 5\nprint(\"DONE\")", nb.Cells[0].Source.String())
	for _, cell := range nb.Cells {
		assert.Equal(t, notebook.CellTypeCode, cell.CellType)
		lines := cell.Source.String()
		assert.Contains(t, lines, DoneStatement)
		assert.Empty(t, cell.Outputs)
		assert.Nil(t, cell.ExecutionCount)
		assert.Equal(t, false, cell.Metadata["editable"])
	}
}

func TestGenerateIdempotent(t *testing.T) {
	g := New(writeTemplate(t, templateContent))
	a := assignment("x_value", params.IntValue(5))

	first, err := g.Generate(a)
	require.NoError(t, err)
	second, err := g.Generate(a)
	require.NoError(t, err)

	require.Len(t, second.Cells, len(first.Cells))
	for i := range first.Cells {
		assert.Equal(t, first.Cells[i].Source, second.Cells[i].Source)
	}
}

func TestAppendStatementNoDuplicate(t *testing.T) {
	withMarker := AppendStatement(DoneStatement, "work()\n"+DoneStatement)
	assert.Equal(t, "work()\n"+DoneStatement, withMarker)

	appended := AppendStatement(DoneStatement, "work()")
	assert.Equal(t, "work()\n"+DoneStatement, appended)

	// Trailing newlines do not defeat the idempotence check.
	trailing := AppendStatement(DoneStatement, "work()\n"+DoneStatement+"\n")
	assert.Equal(t, "work()\n"+DoneStatement, trailing)
}

func TestGenerateMissingParametersCell(t *testing.T) {
	content := `{
 "cells": [
  {"cell_type": "code", "metadata": {}, "outputs": [], "source": "a = 1"}
 ],
 "metadata": {}, "nbformat": 4, "nbformat_minor": 5
}`
	g := New(writeTemplate(t, content))
	_, err := g.Generate(params.Assignment{})
	assert.ErrorIs(t, err, ErrParametersCellMissing)
}

func TestGenerateEmptyParametersCell(t *testing.T) {
	content := `{
 "cells": [
  {"cell_type": "code", "metadata": {"tags": ["parameters"]}, "outputs": [], "source": ""}
 ],
 "metadata": {}, "nbformat": 4, "nbformat_minor": 5
}`
	g := New(writeTemplate(t, content))
	_, err := g.Generate(params.Assignment{})
	assert.ErrorIs(t, err, ErrEmptyParametersCell)
}

func TestGenerateUnresolvedParameter(t *testing.T) {
	g := New(writeTemplate(t, templateContent))
	_, err := g.Generate(assignment("other", params.IntValue(1)))
	assert.ErrorIs(t, err, ErrUnresolvedParameter)
}

func TestSubstituteEscapes(t *testing.T) {
	out, err := Substitute("d = {{'k': {x}}}", assignment("x", params.IntValue(9)))
	require.NoError(t, err)
	assert.Equal(t, "d = {'k': 9}", out)
}

func TestOutputFilename(t *testing.T) {
	a := params.Assignment{
		{Name: "cube_size_value", Value: params.IntValue(100)},
		{Name: "mode", Value: params.StringValue("fast")},
	}
	assert.Equal(t, "usecase-cube_size100-modefast.ipynb", OutputFilename("usecase", a))
	assert.Equal(t, "base.ipynb", OutputFilename("base", params.Assignment{}))
}

func TestGenerateAndSave(t *testing.T) {
	g := New(writeTemplate(t, templateContent))
	out := filepath.Join(t.TempDir(), "out.ipynb")
	require.NoError(t, g.GenerateAndSave(assignment("x_value", params.FloatValue(0.5)), out))

	nb, err := notebook.Read(out)
	require.NoError(t, err)
	assert.Equal(t, "x_value = 0.5\nprint(\"DONE\")", nb.Cells[0].Source.String())
}
