package browser

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	log "github.com/sirupsen/logrus"
)

// Chrome drives a headless Chrome tab through the DevTools protocol.
type Chrome struct {
	cfg *Config

	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc

	mu       sync.Mutex
	received []dataEvent
}

type dataEvent struct {
	at    time.Time
	bytes float64
}

type chromeElement struct {
	node *cdp.Node
}

func (e chromeElement) ID() string {
	return strconv.FormatInt(int64(e.node.NodeID), 10)
}

var _ Driver = &Chrome{}

func NewChrome(cfg *Config) (*Chrome, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(int(cfg.ViewportWidth), int(cfg.ViewportHeight)),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	c := &Chrome{
		cfg:         cfg,
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	// Record page network traffic as it arrives. The receipt wall-clock
	// time is what the data-received window queries compare against.
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if dataReceived, ok := ev.(*network.EventDataReceived); ok {
			c.mu.Lock()
			c.received = append(c.received, dataEvent{
				at:    time.Now(),
				bytes: float64(dataReceived.DataLength),
			})
			c.mu.Unlock()
		}
	})

	if err := chromedp.Run(tabCtx, network.Enable()); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, err
	}
	return c, nil
}

func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := c.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(c.ctx, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	return c.run(ctx, chromedp.Navigate(url))
}

func (c *Chrome) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()
	return chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (c *Chrome) Elements(ctx context.Context, selector string) ([]Element, error) {
	var nodes []*cdp.Node
	err := c.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, err
	}
	return wrapNodes(nodes), nil
}

func (c *Chrome) ElementsWithin(ctx context.Context, parent Element, selector string) ([]Element, error) {
	node, err := unwrap(parent)
	if err != nil {
		return nil, err
	}
	var nodes []*cdp.Node
	err = c.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.FromNode(node), chromedp.AtLeast(0)))
	if err != nil {
		return nil, err
	}
	return wrapNodes(nodes), nil
}

func (c *Chrome) Click(ctx context.Context, el Element) error {
	node, err := unwrap(el)
	if err != nil {
		return err
	}
	return c.run(ctx, chromedp.MouseClickNode(node))
}

// SendRunKeys issues the run-and-advance shortcut (Shift+Enter) to the
// element, the same gesture a user executes a cell with.
func (c *Chrome) SendRunKeys(ctx context.Context, el Element) error {
	node, err := unwrap(el)
	if err != nil {
		return err
	}
	return c.run(ctx,
		chromedp.MouseClickNode(node),
		chromedp.KeyEventNode(node, kb.Enter, chromedp.KeyModifiers(input.ModifierShift)),
	)
}

func (c *Chrome) Text(ctx context.Context, el Element) (string, error) {
	node, err := unwrap(el)
	if err != nil {
		return "", err
	}
	var text string
	err = c.run(ctx, chromedp.Text([]cdp.NodeID{node.NodeID}, &text, chromedp.ByNodeID))
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *Chrome) Screenshot(ctx context.Context, el Element) ([]byte, error) {
	node, err := unwrap(el)
	if err != nil {
		return nil, err
	}
	var buf []byte
	err = c.run(ctx, chromedp.Screenshot([]cdp.NodeID{node.NodeID}, &buf, chromedp.ByNodeID))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (c *Chrome) EvalScript(ctx context.Context, script string) error {
	return c.run(ctx, chromedp.Evaluate(script, nil))
}

func (c *Chrome) SetViewport(ctx context.Context, width int64, height int64) error {
	return c.run(ctx, chromedp.EmulateViewport(width, height))
}

func (c *Chrome) EmulateThrottling(ctx context.Context, downloadBytesPerSecond float64) error {
	log.Debugf("Network throttling download_throughput=%f applied.", downloadBytesPerSecond)
	// -1 upload throughput means no upload throttling.
	return c.run(ctx, network.EmulateNetworkConditions(false, 0, downloadBytesPerSecond, -1))
}

func (c *Chrome) DataReceivedBetween(start time.Time, end time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := float64(0)
	for _, event := range c.received {
		if event.at.After(start) && event.at.Before(end) {
			total += event.bytes
		}
	}
	return total
}

func (c *Chrome) Close() error {
	c.cancelTab()
	c.cancelAlloc()
	log.Debug("Driver closed.")
	return nil
}

func wrapNodes(nodes []*cdp.Node) []Element {
	elements := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, chromeElement{node: node})
	}
	return elements
}

func unwrap(el Element) (*cdp.Node, error) {
	ce, ok := el.(chromeElement)
	if !ok {
		return nil, fmt.Errorf("element %s does not belong to this driver", el.ID())
	}
	return ce.node, nil
}
