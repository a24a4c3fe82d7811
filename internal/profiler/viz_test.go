package profiler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vizlab-ci/nbprofiler/internal/browser"
	ltime "github.com/vizlab-ci/nbprofiler/pkg/time"
)

func newTestVizElement(driver *browser.Mock, session *SessionMock) *VizElement {
	watch := &ltime.TestingWatch{Current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewVizElement(
		browser.MockElement("viz-1"), driver, ltime.NewAdvancingSleeper(watch),
		500*time.Millisecond, session)
}

func TestVizElementStable(t *testing.T) {
	driver := browser.NewMock()
	driver.ScreenshotQueue["viz-1"] = [][]byte{[]byte("same"), []byte("same")}
	session := &SessionMock{}

	viz := newTestVizElement(driver, session)
	assert.True(t, viz.IsStable(context.Background(), 2))
	assert.Equal(t, 2, session.Screenshots[2])
}

func TestVizElementUnstable(t *testing.T) {
	driver := browser.NewMock()
	driver.ScreenshotQueue["viz-1"] = [][]byte{[]byte("before"), []byte("after")}

	viz := newTestVizElement(driver, &SessionMock{})
	assert.False(t, viz.IsStable(context.Background(), 2))
}

func TestNilVizElementIsNotStable(t *testing.T) {
	viz := newTestVizElement(browser.NewMock(), &SessionMock{})
	viz.element = nil
	assert.False(t, viz.IsStable(context.Background(), 2))
}

func TestScreenshotFailureIsNotStable(t *testing.T) {
	// No screenshots scripted, so the driver errors on capture.
	viz := newTestVizElement(browser.NewMock(), &SessionMock{})
	assert.False(t, viz.IsStable(context.Background(), 2))
}
