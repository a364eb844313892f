// Package images rewrites catalog image URLs through a resizing proxy.
package images

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultProxy is the images.weserv.nl resizing service.
const DefaultProxy = "https://images.weserv.nl/"

// Context names where an image is displayed; each has its own size preset.
type Context string

const (
	Card       Context = "card"
	Hero       Context = "hero"
	Background Context = "background"
	Search     Context = "search"
	Screenshot Context = "screenshot"
	Default    Context = "default"
)

// Preset is the target size and quality for a Context.
type Preset struct {
	Width   int
	Height  int
	Quality int
}

var presets = map[Context]Preset{
	Card:       {Width: 400, Height: 300, Quality: 75},
	Hero:       {Width: 800, Height: 600, Quality: 90},
	Background: {Width: 1200, Height: 800, Quality: 90},
	Search:     {Width: 200, Height: 150, Quality: 60},
	Screenshot: {Width: 600, Height: 400, Quality: 75},
	Default:    {Width: 500, Height: 400, Quality: 75},
}

// PresetFor returns the preset for c, falling back to Default.
func PresetFor(c Context) Preset {
	if p, ok := presets[c]; ok {
		return p
	}
	return presets[Default]
}

// Optimizer builds proxy URLs.
type Optimizer struct {
	proxy string
}

// NewOptimizer returns an optimizer for proxy. An empty proxy uses DefaultProxy.
func NewOptimizer(proxy string) *Optimizer {
	if proxy == "" {
		proxy = DefaultProxy
	}
	if !strings.HasSuffix(proxy, "/") {
		proxy += "/"
	}
	return &Optimizer{proxy: proxy}
}

// URL returns raw rewritten through the proxy as webp at the preset size
// for c. An empty raw URL is returned unchanged.
func (o *Optimizer) URL(raw string, c Context) string {
	if raw == "" {
		return raw
	}
	p := PresetFor(c)
	return fmt.Sprintf("%s?url=%s&w=%d&h=%d&q=%d&output=webp",
		o.proxy, url.QueryEscape(raw), p.Width, p.Height, p.Quality)
}
