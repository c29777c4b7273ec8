// Package preview renders a compiled dungeon HTML document in a headless
// browser and saves a screenshot, so a game can be sanity-checked visually
// without hand-opening the output file.
package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Options controls how the page is rendered before capture.
type Options struct {
	Width    int
	Height   int
	Wait     time.Duration
	FullPage bool
}

// DefaultOptions gives a viewport large enough to show the whole canvas and
// surrounding chrome, with a short settle time for the game's initial draw.
func DefaultOptions() Options {
	return Options{Width: 900, Height: 800, Wait: 300 * time.Millisecond}
}

// Screenshot launches a headless Chrome instance, opens htmlPath, and
// writes a PNG screenshot to outPath.
func Screenshot(htmlPath, outPath string, opts Options) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", htmlPath, err)
	}

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return fmt.Errorf("failed to launch headless chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + abs})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", abs, err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		return fmt.Errorf("failed to set viewport: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for load: %w", err)
	}
	if opts.Wait > 0 {
		time.Sleep(opts.Wait)
	}

	data, err := page.Screenshot(opts.FullPage, nil)
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
