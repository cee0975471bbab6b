package decl

import "strings"

// Capabilities is the set of attribute-derived markers that override a
// member's default type mapping. Resolved once from attribute names at
// load time.
type Capabilities uint8

const (
	// CapRenderNode forces the UI framework's node type
	CapRenderNode Capabilities = 1 << iota
	// CapDomElement forces the global DOM element type
	CapDomElement
)

var attributeCapabilities = map[string]Capabilities{
	"rendernode": CapRenderNode,
	"domelement": CapDomElement,
}

// CapabilitiesFromAttributes resolves attribute names such as
// "RenderNode", "RenderNodeAttribute" or "Ui.DomElement" into a set.
func CapabilitiesFromAttributes(attrs []string) Capabilities {
	var caps Capabilities
	for _, attr := range attrs {
		name := strings.TrimSpace(attr)
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		name = strings.ToLower(name)
		name = strings.TrimSuffix(name, "attribute")
		caps |= attributeCapabilities[name]
	}
	return caps
}

// Has reports whether every flag in c2 is set
func (c Capabilities) Has(c2 Capabilities) bool {
	return c2 != 0 && c&c2 == c2
}
