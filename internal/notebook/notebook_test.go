package notebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": "# Title"
  },
  {
   "cell_type": "code",
   "execution_count": 3,
   "metadata": {"tags": ["parameters"]},
   "outputs": [],
   "source": ["x_value = {x_value}\n", "y_value = {y_value}"]
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {"tags": ["skip_profiling", "wait_for_viz"]},
   "outputs": [],
   "source": "viewer.show()"
  }
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(sampleNotebook), 0644))
	return path
}

func TestReadNormalizesSource(t *testing.T) {
	nb, err := Read(writeSample(t))
	require.NoError(t, err)
	require.Len(t, nb.Cells, 3)
	assert.Equal(t, "x_value = {x_value}\ny_value = {y_value}", nb.Cells[1].Source.String())
	assert.Equal(t, "viewer.show()", nb.Cells[2].Source.String())
}

func TestCodeCells(t *testing.T) {
	nb, err := Read(writeSample(t))
	require.NoError(t, err)
	cells := nb.CodeCells()
	assert.Len(t, cells, 2)
	for _, cell := range cells {
		assert.Equal(t, CellTypeCode, cell.CellType)
	}
}

func TestCellIndexesForTag(t *testing.T) {
	nb, err := Read(writeSample(t))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, nb.CellIndexesForTag(TagParameters))
	assert.Equal(t, []int{3}, nb.CellIndexesForTag(TagSkipProfiling))
	assert.Equal(t, []int{3}, nb.CellIndexesForTag(TagWaitForViz))
	assert.Empty(t, nb.CellIndexesForTag("no_such_tag"))
}

func TestCellForTag(t *testing.T) {
	nb, err := Read(writeSample(t))
	require.NoError(t, err)
	cell := nb.CellForTag(TagParameters)
	require.NotNil(t, cell)
	assert.True(t, cell.HasTag(TagParameters))
	assert.Nil(t, nb.CellForTag("missing"))
}

func TestWriteRoundTrip(t *testing.T) {
	path := writeSample(t)
	nb, err := Read(path)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.ipynb")
	require.NoError(t, Write(out, nb))

	reread, err := Read(out)
	require.NoError(t, err)
	require.Len(t, reread.Cells, 3)
	assert.Equal(t, nb.Cells[1].Source, reread.Cells[1].Source)
	assert.Equal(t, nb.NBFormat, reread.NBFormat)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.ipynb"))
	assert.Error(t, err)
}
