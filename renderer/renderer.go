package renderer

import "github.com/ByLCY/noteraster/layout"

// Renderer paints laid-out lines into an encoded bitmap, for example a
// PNG byte slice. Implementations that can also measure text should
// additionally implement layout.Measurer so the layout stage wraps
// against real font metrics.
type Renderer interface {
	Render(lines []layout.Line, opts layout.Options) ([]byte, error)
}
