package generator

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vizlab-ci/nbprofiler/internal/notebook"
	"github.com/vizlab-ci/nbprofiler/internal/params"
)

// DoneStatement is appended to every code cell so the rendered output
// marks the cell as finished. DoneMarker is the token searched for in the
// cell's output region.
const (
	DoneMarker    = "DONE"
	DoneStatement = `print("DONE")`
)

var (
	ErrParametersCellMissing = fmt.Errorf("no cell with 'parameters' tag found in the notebook")
	ErrEmptyParametersCell   = fmt.Errorf("'parameters' cell found with no content in the notebook")
	ErrUnresolvedParameter   = fmt.Errorf("template references a parameter with no assigned value")
)

// Generator produces concrete notebooks from one template file. The
// preprocessed template (code cells only, outputs cleared, done statement
// appended) is computed once and cached; each Generate call works on a
// fresh copy.
type Generator struct {
	templatePath string

	once         sync.Once
	preprocessed []byte
	preprocErr   error
}

func New(templatePath string) *Generator {
	return &Generator{templatePath: templatePath}
}

// AppendStatement adds a statement as the last line of a cell source,
// unless that exact line already is the last line.
func AppendStatement(statement string, source string) string {
	lines := strings.Split(source, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > 0 && lines[len(lines)-1] != statement {
		lines = append(lines, statement)
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) preprocess() ([]byte, error) {
	g.once.Do(func() {
		nb, err := notebook.Read(g.templatePath)
		if err != nil {
			g.preprocErr = err
			return
		}
		nb.Cells = nb.CodeCells()
		for _, cell := range nb.Cells {
			cell.Outputs = nil
			cell.ExecutionCount = nil
			cell.Source = notebook.Source(AppendStatement(DoneStatement, cell.Source.String()))
			cell.SetMetadata("editable", false)
		}
		g.preprocessed, g.preprocErr = json.Marshal(nb)
	})
	return g.preprocessed, g.preprocErr
}

// Generate builds a notebook for one parameter assignment.
func (g *Generator) Generate(assignment params.Assignment) (*notebook.Notebook, error) {
	raw, err := g.preprocess()
	if err != nil {
		return nil, err
	}

	var nb notebook.Notebook
	if err := json.Unmarshal(raw, &nb); err != nil {
		return nil, errors.WithStack(err)
	}

	paramCellFound := false
	for _, cell := range nb.Cells {
		if !cell.HasTag(notebook.TagParameters) {
			continue
		}
		paramCellFound = true
		if cell.Source.String() == "" {
			log.Error(ErrEmptyParametersCell)
			return nil, ErrEmptyParametersCell
		}
		substituted, err := Substitute(cell.Source.String(), assignment)
		if err != nil {
			return nil, err
		}
		cell.Source = notebook.Source(substituted)
	}
	if !paramCellFound {
		log.Error(ErrParametersCellMissing)
		return nil, ErrParametersCellMissing
	}
	return &nb, nil
}

// GenerateAndSave generates a notebook and writes it to outputPath.
func (g *Generator) GenerateAndSave(assignment params.Assignment, outputPath string) error {
	nb, err := g.Generate(assignment)
	if err != nil {
		return err
	}
	return notebook.Write(outputPath, nb)
}

// Substitute replaces {name} placeholders with assignment values. Doubled
// braces escape literal braces.
func Substitute(template string, assignment params.Assignment) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", errors.Wrapf(ErrUnresolvedParameter, "unterminated placeholder at offset %d", i)
			}
			name := template[i+1 : i+end]
			value, ok := assignment.Get(name)
			if !ok {
				return "", errors.Wrapf(ErrUnresolvedParameter, "parameter %q", name)
			}
			sb.WriteString(value.Render())
			i += end
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", errors.Wrapf(ErrUnresolvedParameter, "unmatched '}' at offset %d", i)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}

// OutputFilename derives the deterministic notebook filename for one
// assignment: the base name plus -<key><value> per entry, with the
// `_value` suffix stripped from keys.
func OutputFilename(baseName string, assignment params.Assignment) string {
	name := baseName
	for _, p := range assignment {
		name = fmt.Sprintf("%s-%s%s", name, strings.TrimSuffix(p.Name, "_value"), p.Value.Render())
	}
	return name + ".ipynb"
}

// OutputPath joins an output directory with the derived filename.
func OutputPath(outputDir string, baseName string, assignment params.Assignment) string {
	return filepath.Join(outputDir, OutputFilename(baseName, assignment))
}
