package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	TransitionDuration time.Duration

	BlinkClosedDuration Range
	BlinkOpenDuration   Range
	BlinkInterval       Range
	DoubleBlinkChance   float64
	DoubleBlinkGap      Range
}

// Engine plays sprite loops for the countdown screen.
type Engine struct {
	mu           sync.Mutex
	config       Config
	visuals      VisualSpec
	updateSprite func(fyne.Resource)
	onScene      func(Scene)
	scene        Scene
	started      bool
	cancel       context.CancelFunc
	rng          *rand.Rand
}

// New creates a new animation engine.
func New(config Config, visuals VisualSpec, updateSprite func(fyne.Resource)) *Engine {
	return &Engine{
		config:       config,
		visuals:      visuals,
		updateSprite: updateSprite,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Show switches to scene. Entering a different scene plays the transition
// sprite first; showing the current scene again is a no-op.
func (engine *Engine) Show(ctx context.Context, scene Scene) {
	engine.mu.Lock()
	if engine.started && engine.scene == scene {
		engine.mu.Unlock()
		return
	}
	transition := engine.started
	engine.scene = scene
	engine.started = true
	engine.mu.Unlock()

	engine.notifySceneChange(scene)
	sprites := engine.visuals.For(scene)
	engine.start(ctx, func(runCtx context.Context) {
		if transition && engine.visuals.Transition != nil {
			engine.updateSprite(engine.visuals.Transition)
			if !sleepWithContext(runCtx, engine.config.TransitionDuration) {
				return
			}
		}
		engine.runBlink(runCtx, sprites)
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	engine.started = false
}

// SetOnSceneChange sets a callback that is fired when the active scene changes.
func (engine *Engine) SetOnSceneChange(handler func(Scene)) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.onScene = handler
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func (engine *Engine) notifySceneChange(scene Scene) {
	engine.mu.Lock()
	handler := engine.onScene
	engine.mu.Unlock()
	if handler != nil {
		handler(scene)
	}
}

func (engine *Engine) runBlink(ctx context.Context, sprites SceneSpec) {
	engine.updateSprite(sprites.Open)
	if sprites.Closed == nil {
		<-ctx.Done()
		return
	}
	for {
		if !sleepWithContext(ctx, engine.random(engine.config.BlinkInterval)) {
			return
		}
		if !engine.blinkOnce(ctx, sprites) {
			return
		}
		if engine.chance() <= engine.config.DoubleBlinkChance {
			if !sleepWithContext(ctx, engine.random(engine.config.DoubleBlinkGap)) {
				return
			}
			if !engine.blinkOnce(ctx, sprites) {
				return
			}
		}
	}
}

func (engine *Engine) blinkOnce(ctx context.Context, sprites SceneSpec) bool {
	if ctx.Err() != nil {
		return false
	}
	engine.updateSprite(sprites.Closed)
	if !sleepWithContext(ctx, engine.random(engine.config.BlinkClosedDuration)) {
		return false
	}
	engine.updateSprite(sprites.Open)
	return sleepWithContext(ctx, engine.random(engine.config.BlinkOpenDuration))
}

// random and chance serialize access to rng, which is not safe for concurrent use.
func (engine *Engine) random(value Range) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return value.Random(engine.rng)
}

func (engine *Engine) chance() float64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.rng.Float64()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
