package profiler

import (
	"bytes"
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vizlab-ci/nbprofiler/internal/browser"
	ltime "github.com/vizlab-ci/nbprofiler/pkg/time"
)

// VizElement wraps the rendered visualization widget once detected.
type VizElement struct {
	element  browser.Element
	driver   browser.Driver
	sleeper  ltime.Sleeper
	interval time.Duration
	session  Session
}

func NewVizElement(element browser.Element, driver browser.Driver, sleeper ltime.Sleeper, interval time.Duration, session Session) *VizElement {
	return &VizElement{
		element:  element,
		driver:   driver,
		sleeper:  sleeper,
		interval: interval,
		session:  session,
	}
}

// IsStable reports whether the widget has stopped re-rendering: two
// screenshots taken one interval apart must match byte for byte. Any
// screenshot failure reads as "not stable yet", never as a hard error, so
// callers re-poll.
func (v *VizElement) IsStable(ctx context.Context, cellIndex int) bool {
	if v == nil || v.element == nil {
		log.Debug("Viz element is absent, cannot be stable")
		return false
	}

	before, err := v.driver.Screenshot(ctx, v.element)
	if err != nil {
		log.Debugf("failed to take first screenshot: %s", err)
		return false
	}

	v.sleeper.Sleep(v.interval)

	after, err := v.driver.Screenshot(ctx, v.element)
	if err != nil {
		log.Debugf("failed to take second screenshot: %s", err)
		return false
	}

	if v.session != nil {
		v.session.LogScreenshots(cellIndex, [][]byte{before, after})
	}

	same := bytes.Equal(before, after)
	log.Debugf("screenshots_are_the_same: %t", same)
	return same
}
