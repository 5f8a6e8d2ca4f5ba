package collector

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Page is the part of playwright.Page needed to capture the post header.
type Page interface {
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
	Screenshot(options ...playwright.PageScreenshotOptions) ([]byte, error)
}

// DefaultHeaderBox is used when the article element cannot be measured.
var DefaultHeaderBox = playwright.Rect{X: 0, Y: 0, Width: 900, Height: 240}

const (
	maxHeaderWidth  = 800
	maxHeaderHeight = 220
)

const headerBoxScript = `(selector) => {
	const el = document.querySelector(selector);
	if (!el) return null;
	const r = el.getBoundingClientRect();
	return { x: r.x, y: r.y, width: r.width, height: r.height };
}`

// HeaderBox measures the element matched by selector and caps it to the area
// where the author line and timestamp are rendered.
func HeaderBox(page Page, selector string) playwright.Rect {
	raw, err := page.Evaluate(headerBoxScript, selector)
	if err != nil {
		return DefaultHeaderBox
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return DefaultHeaderBox
	}

	box := playwright.Rect{
		X:      number(m["x"]),
		Y:      number(m["y"]),
		Width:  min(number(m["width"]), maxHeaderWidth),
		Height: min(number(m["height"]), maxHeaderHeight),
	}
	if box.Width <= 0 || box.Height <= 0 {
		return DefaultHeaderBox
	}
	return box
}

// CaptureHeader screenshots the post header as PNG.
func CaptureHeader(page Page, selector string) ([]byte, error) {
	clip := HeaderBox(page, selector)
	buf, err := page.Screenshot(playwright.PageScreenshotOptions{
		Clip: &clip,
		Type: playwright.ScreenshotTypePng,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to capture header: %w", err)
	}
	return buf, nil
}

//playwright hands back whole numbers as int
func number(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
