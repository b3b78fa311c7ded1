package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/noteraster/engine"
	"github.com/ByLCY/noteraster/layout"
	"github.com/ByLCY/noteraster/markdown"
	canvasrenderer "github.com/ByLCY/noteraster/renderer/canvas"
)

func main() {
	text := flag.String("text", "", "markdown text to render (takes precedence over -in)")
	input := flag.String("in", "", "path of a markdown file to render")
	output := flag.String("out", "output/note.png", "PNG output path")
	width := flag.Int("width", layout.DefaultWidth, "box width in px")
	height := flag.Int("height", layout.DefaultHeight, "box height in px")
	align := flag.String("align", "left", "horizontal alignment: left/center/right")
	family := flag.String("font", layout.DefaultFontFamily, "font family: handwriting/sans/mono")
	size := flag.String("size", "m", "font size step: s/m/l/xl")
	style := flag.String("style", "normal", "base text style: normal/bold/italic")
	color := flag.String("color", layout.DefaultTextColor, "text color as #rrggbb")
	debugPath := flag.String("debug", "", "layout debug JSON output path")
	flag.Parse()

	opts, err := buildOptions(*text, *input, *width, *height, *align, *family, *size, *style, *color)
	if err != nil {
		log.Fatalf("invalid options: %v", err)
	}
	if strings.TrimSpace(opts.Text) == "" {
		log.Fatalf("nothing to render: empty text (use -text or -in)")
	}

	if err := run(opts, *output, *debugPath); err != nil {
		log.Fatalf("render failed: %v", err)
	}
	fmt.Printf("wrote %s\n", *output)
}

func buildOptions(text, input string, width, height int, align, family, size, style, color string) (layout.Options, error) {
	if text == "" && input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return layout.Options{}, fmt.Errorf("read %s: %w", input, err)
		}
		text = string(data)
	}

	a, err := layout.ParseAlign(align)
	if err != nil {
		return layout.Options{}, err
	}
	s, err := layout.ParseSize(size)
	if err != nil {
		return layout.Options{}, err
	}
	ts, err := layout.ParseTextStyle(style)
	if err != nil {
		return layout.Options{}, err
	}

	return layout.Options{
		Text:       text,
		Width:      width,
		Height:     height,
		Align:      a,
		FontFamily: family,
		FontSize:   s,
		TextStyle:  ts,
		TextColor:  color,
	}.Normalized(), nil
}

// run wires the full pipeline: enqueue the render, resolve the resulting
// handle and write the bitmap to disk.
func run(opts layout.Options, outputPath, debugPath string) error {
	r := canvasrenderer.New()
	eng := engine.New(r)

	if debugPath != "" {
		lines := layout.BuildLines(markdown.Tokenize(opts.Text), opts, r)
		if err := writeDebug(lines, debugPath); err != nil {
			return err
		}
	}

	handle, err := eng.Render(context.Background(), opts)
	if err != nil {
		return err
	}
	data, ok := eng.Lookup(handle)
	if !ok {
		return fmt.Errorf("resource handle %s no longer resolves", handle)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

func writeDebug(lines []layout.Line, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("create debug directory: %w", err)
	}
	if err := layout.WriteDebugJSON(lines, debugPath); err != nil {
		return fmt.Errorf("write debug JSON: %w", err)
	}
	return nil
}
