package resources

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"fyne.io/fyne/v2"
)

// Embedded sprite file names.
const (
	SpriteWorkOpen    = "work-open.svg"
	SpriteWorkClosed  = "work-closed.svg"
	SpriteBreakOpen   = "break-open.svg"
	SpriteBreakClosed = "break-closed.svg"
	SpriteTransition  = "transition.svg"
)

// LogoApp is the application and tray icon.
const LogoApp = "logo.svg"

const (
	spriteDir = "sprites"
	logoDir   = "logo"
)

//go:embed sprites/*.svg logo/*.svg
var assets embed.FS

var (
	cacheMu sync.Mutex
	cache   = make(map[string]fyne.Resource)
)

// Sprite returns the embedded sprite fileName.
func Sprite(fileName string) (fyne.Resource, error) {
	return load(path.Join(spriteDir, fileName))
}

// MustSprite is Sprite for names known at compile time.
func MustSprite(fileName string) fyne.Resource {
	return must(Sprite(fileName))
}

// Logo returns the embedded logo fileName.
func Logo(fileName string) (fyne.Resource, error) {
	return load(path.Join(logoDir, fileName))
}

func MustLogo(fileName string) fyne.Resource {
	return must(Logo(fileName))
}

// Sprites is the full countdown sprite set.
type Sprites struct {
	WorkOpen, WorkClosed   fyne.Resource
	BreakOpen, BreakClosed fyne.Resource
	Transition             fyne.Resource
}

// LoadSprites loads every countdown sprite, failing on the first missing one.
func LoadSprites() (Sprites, error) {
	var sprites Sprites
	for _, entry := range []struct {
		name   string
		target *fyne.Resource
	}{
		{SpriteWorkOpen, &sprites.WorkOpen},
		{SpriteWorkClosed, &sprites.WorkClosed},
		{SpriteBreakOpen, &sprites.BreakOpen},
		{SpriteBreakClosed, &sprites.BreakClosed},
		{SpriteTransition, &sprites.Transition},
	} {
		resource, err := Sprite(entry.name)
		if err != nil {
			return Sprites{}, err
		}
		*entry.target = resource
	}
	return sprites, nil
}

func load(name string) (fyne.Resource, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if resource, ok := cache[name]; ok {
		return resource, nil
	}

	data, err := assets.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", name, err)
	}
	resource := fyne.NewStaticResource(name, data)
	cache[name] = resource
	return resource, nil
}

func must(resource fyne.Resource, err error) fyne.Resource {
	if err != nil {
		panic(err)
	}
	return resource
}
