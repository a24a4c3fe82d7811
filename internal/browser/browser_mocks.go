package browser

import (
	"context"
	"fmt"
	"time"
)

type MockElement string

func (e MockElement) ID() string { return string(e) }

// Mock is an in-memory Driver for tests. Texts and Screenshots are queues
// keyed by element ID; each read consumes one entry and the last entry
// sticks, so a test can script an element's evolution over polls.
type Mock struct {
	ElementsBySelector map[string][]Element
	ChildrenBySelector map[string]map[string][]Element
	TextQueue          map[string][]string
	ScreenshotQueue    map[string][][]byte
	DataReceived       float64

	NavigatedTo []string
	Waited      []string
	Clicked     []string
	RunKeysSent []string
	Scripts     []string
	Throttled   []float64
	Closed      bool
}

var _ Driver = &Mock{}

func NewMock() *Mock {
	return &Mock{
		ElementsBySelector: make(map[string][]Element),
		ChildrenBySelector: make(map[string]map[string][]Element),
		TextQueue:          make(map[string][]string),
		ScreenshotQueue:    make(map[string][][]byte),
	}
}

func (m *Mock) Navigate(_ context.Context, url string) error {
	m.NavigatedTo = append(m.NavigatedTo, url)
	return nil
}

func (m *Mock) WaitVisible(_ context.Context, selector string, _ time.Duration) error {
	m.Waited = append(m.Waited, selector)
	if _, ok := m.ElementsBySelector[selector]; !ok {
		return fmt.Errorf("selector %q never became visible", selector)
	}
	return nil
}

func (m *Mock) Elements(_ context.Context, selector string) ([]Element, error) {
	return m.ElementsBySelector[selector], nil
}

func (m *Mock) ElementsWithin(_ context.Context, parent Element, selector string) ([]Element, error) {
	children, ok := m.ChildrenBySelector[parent.ID()]
	if !ok {
		return nil, nil
	}
	return children[selector], nil
}

func (m *Mock) Click(_ context.Context, el Element) error {
	m.Clicked = append(m.Clicked, el.ID())
	return nil
}

func (m *Mock) SendRunKeys(_ context.Context, el Element) error {
	m.RunKeysSent = append(m.RunKeysSent, el.ID())
	return nil
}

func (m *Mock) Text(_ context.Context, el Element) (string, error) {
	queue := m.TextQueue[el.ID()]
	if len(queue) == 0 {
		return "", nil
	}
	text := queue[0]
	if len(queue) > 1 {
		m.TextQueue[el.ID()] = queue[1:]
	}
	return text, nil
}

func (m *Mock) Screenshot(_ context.Context, el Element) ([]byte, error) {
	queue := m.ScreenshotQueue[el.ID()]
	if len(queue) == 0 {
		return nil, fmt.Errorf("no screenshot scripted for element %s", el.ID())
	}
	shot := queue[0]
	if len(queue) > 1 {
		m.ScreenshotQueue[el.ID()] = queue[1:]
	}
	return shot, nil
}

func (m *Mock) EvalScript(_ context.Context, script string) error {
	m.Scripts = append(m.Scripts, script)
	return nil
}

func (m *Mock) SetViewport(_ context.Context, _ int64, _ int64) error {
	return nil
}

func (m *Mock) EmulateThrottling(_ context.Context, downloadBytesPerSecond float64) error {
	m.Throttled = append(m.Throttled, downloadBytesPerSecond)
	return nil
}

func (m *Mock) DataReceivedBetween(_ time.Time, _ time.Time) float64 {
	return m.DataReceived
}

func (m *Mock) Close() error {
	m.Closed = true
	return nil
}
