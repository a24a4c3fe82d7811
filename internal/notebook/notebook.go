package notebook

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	CellTypeCode     = "code"
	CellTypeMarkdown = "markdown"

	TagParameters    = "parameters"
	TagSkipProfiling = "skip_profiling"
	TagWaitForViz    = "wait_for_viz"
)

// Notebook is the on-disk nbformat document. Only the fields the profiler
// reads or rewrites are modeled; everything else round-trips through Extra.
type Notebook struct {
	Cells         []*Cell                `json:"cells"`
	Metadata      map[string]interface{} `json:"metadata"`
	NBFormat      int                    `json:"nbformat"`
	NBFormatMinor int                    `json:"nbformat_minor"`
}

type Cell struct {
	CellType       string                 `json:"cell_type"`
	Source         Source                 `json:"source"`
	Metadata       map[string]interface{} `json:"metadata"`
	Outputs        []json.RawMessage      `json:"outputs,omitempty"`
	ExecutionCount *int                   `json:"execution_count,omitempty"`
}

// Source normalizes nbformat's string-or-list-of-lines representation to a
// single string. It always marshals back as a single string.
type Source string

func (s *Source) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = Source(single)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return errors.WithStack(err)
	}
	*s = Source(strings.Join(lines, ""))
	return nil
}

func (s Source) String() string {
	return string(s)
}

func Read(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, errors.Wrapf(err, "failed to parse notebook %s", path)
	}
	return &nb, nil
}

func Write(path string, nb *Notebook) error {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(path, data, 0644))
}

func (c *Cell) Tags() []string {
	if c.Metadata == nil {
		return nil
	}
	raw, ok := c.Metadata["tags"].([]interface{})
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if s, ok := t.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

func (c *Cell) HasTag(tag string) bool {
	for _, t := range c.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

func (c *Cell) SetMetadata(key string, value interface{}) {
	if c.Metadata == nil {
		c.Metadata = make(map[string]interface{})
	}
	c.Metadata[key] = value
}

// CodeCells returns the notebook's code cells, in document order.
func (nb *Notebook) CodeCells() []*Cell {
	cells := make([]*Cell, 0, len(nb.Cells))
	for _, cell := range nb.Cells {
		if cell.CellType == CellTypeCode {
			cells = append(cells, cell)
		}
	}
	return cells
}

// CellIndexesForTag returns the 1-based positions of the cells carrying the
// given tag.
func (nb *Notebook) CellIndexesForTag(tag string) []int {
	indexes := make([]int, 0)
	for i, cell := range nb.Cells {
		if cell.HasTag(tag) {
			indexes = append(indexes, i+1)
		}
	}
	return indexes
}

// CellForTag returns the first cell carrying the given tag, or nil.
func (nb *Notebook) CellForTag(tag string) *Cell {
	for _, cell := range nb.Cells {
		if cell.HasTag(tag) {
			return cell
		}
	}
	return nil
}
