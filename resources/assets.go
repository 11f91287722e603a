package resources

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	iconDir = "icons/"

	// AppIcon is the window and tray icon.
	AppIcon = "intervals.svg"
	// PausedIcon replaces AppIcon in the tray while paused.
	PausedIcon = "intervals_paused.svg"
)

//go:embed icons/*.svg
var iconFS embed.FS

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(fs embed.FS, resourcePath string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(resourcePath); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(resourcePath)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", resourcePath, err)
	}

	resource := fyne.NewStaticResource(path.Base(resourcePath), data)
	cache.Store(resourcePath, resource)
	return resource, nil
}
