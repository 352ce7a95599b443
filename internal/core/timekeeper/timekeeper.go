package timekeeper

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/model"
)

// Options wires the TimeKeeper to its collaborators. Nil fields fall back to
// inert implementations.
type Options struct {
	Store     Store
	Surface   Surface
	KeepAwake KeepAwake
	Clock     Clock
	Logger    *zap.SugaredLogger
}

// TimeKeeper drives the work/break countdown against a surface and a store.
type TimeKeeper struct {
	mu        sync.Mutex
	config    model.TimerConfig
	durations countdown.Durations
	store     Store
	surface   Surface
	awake     KeepAwake
	clock     Clock
	log       *zap.SugaredLogger

	state       countdown.State
	breakVisual bool
	awakeHeld   bool

	// generation invalidates scheduled callbacks whenever tick or pending is replaced.
	generation uint64
	tick       Timer
	pending    Timer
	// nextTick is the deadline the armed tick was scheduled for.
	nextTick   time.Time

	events        []chan Event
	registrations []func()
	closed        bool
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.TimerConfig, options Options) *TimeKeeper {
	config = config.Normalize()
	if options.Store == nil {
		options.Store = emptyStore{}
	}
	if options.Surface == nil {
		options.Surface = detachedSurface{}
	}
	if options.KeepAwake == nil {
		options.KeepAwake = noopKeepAwake{}
	}
	if options.Clock == nil {
		options.Clock = SystemClock()
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop().Sugar()
	}

	return &TimeKeeper{
		config:    config,
		durations: countdown.NewDurations(config.WorkDuration, config.BreakDuration),
		store:     options.Store,
		surface:   options.Surface,
		awake:     options.KeepAwake,
		clock:     options.Clock,
		log:       options.Logger,
	}
}

// Attach registers the play and stop triggers and the foreground callback.
// Close undoes every registration.
func (keeper *TimeKeeper) Attach(lifecycle Lifecycle) {
	registrations := []func(){
		keeper.surface.OnTrigger(TriggerPlay, keeper.OnPlay),
		keeper.surface.OnTrigger(TriggerStop, keeper.OnStop),
	}
	if lifecycle != nil {
		registrations = append(registrations, lifecycle.OnForeground(keeper.OnForeground))
	}

	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		for _, cancel := range registrations {
			cancel()
		}
		return
	}
	keeper.registrations = append(keeper.registrations, registrations...)
	keeper.mu.Unlock()
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Start publishes the initial display and, when resume on launch is enabled,
// continues a countdown persisted by a previous process.
func (keeper *TimeKeeper) Start(ctx context.Context) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || keeper.state.Phase != countdown.PhaseIdle {
		return
	}
	keeper.publishLocked()
	if !keeper.config.ResumeOnLaunch {
		return
	}

	record, ok, err := keeper.loadRecordLocked(ctx)
	if err != nil || !ok {
		return
	}
	now := keeper.clock.Now()
	keeper.state = countdown.Rehydrate(record, now, keeper.durations)
	keeper.log.Infow("resumed countdown",
		"mode", keeper.state.Mode,
		"remaining", keeper.state.Remaining,
	)
	keeper.setBreakVisualLocked(keeper.state.Mode == countdown.ModeBreak)
	keeper.changedLocked(now)
	keeper.continueLocked()
}

// OnPlay starts a fresh work segment. It is ignored while running.
func (keeper *TimeKeeper) OnPlay() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	if keeper.state.Running() {
		keeper.log.Debugw("play ignored", "phase", keeper.state.Phase)
		return
	}

	keeper.cancelScheduledLocked()
	now := keeper.clock.Now()
	keeper.state = keeper.state.Play(keeper.durations)
	keeper.saveRecordLocked(countdown.NewRecord(now, keeper.durations.Work))
	keeper.log.Infow("countdown started", "remaining", keeper.state.Remaining)

	keeper.setBreakVisualLocked(false)
	keeper.changedLocked(now)
	keeper.restoreLocked()
	keeper.continueLocked()
}

// OnStop ends the cycle from any phase.
func (keeper *TimeKeeper) OnStop() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}

	keeper.deleteRecordLocked()
	keeper.cancelScheduledLocked()
	keeper.state = keeper.state.Stop()
	keeper.log.Infow("countdown stopped", "mode", keeper.state.Mode)

	keeper.setBreakVisualLocked(false)
	keeper.changedLocked(keeper.clock.Now())
}

// OnForeground recomputes the remaining time from the wall clock and re-arms
// the tick. It is a no-op unless the countdown is running.
func (keeper *TimeKeeper) OnForeground() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || keeper.state.Phase != countdown.PhaseRunning {
		return
	}
	keeper.restoreLocked()
	keeper.continueLocked()
}

// Refresh republishes the current display, typically once the surface
// becomes ready.
func (keeper *TimeKeeper) Refresh() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || !keeper.surface.Ready() {
		return
	}
	keeper.surface.SetBool(InputBreak, keeper.breakVisual)
	keeper.publishLocked()
}

// Snapshot returns a copy of the current state.
func (keeper *TimeKeeper) Snapshot() countdown.State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Close cancels scheduled work, drops registrations, releases keep-awake and
// closes observers. Later callbacks are no-ops.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.cancelScheduledLocked()
	if keeper.awakeHeld {
		if err := keeper.awake.Release(); err != nil {
			keeper.log.Warnw("release keep-awake", "err", err)
		}
		keeper.awakeHeld = false
	}
	registrations := keeper.registrations
	keeper.registrations = nil
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, cancel := range registrations {
		cancel()
	}
	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) onTick(generation uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || generation != keeper.generation || keeper.state.Phase != countdown.PhaseRunning {
		return
	}
	keeper.tick = nil
	keeper.state = keeper.state.Tick()
	keeper.publishLocked()
	keeper.emitLocked(keeper.eventLocked(EventProgress, keeper.clock.Now()))
	keeper.scheduleLocked(keeper.nextTick.Add(keeper.config.TickInterval))
}

// continueLocked arms the next tick one interval from now, or starts the
// mode switch once the countdown reached zero.
func (keeper *TimeKeeper) continueLocked() {
	keeper.scheduleLocked(keeper.clock.Now().Add(keeper.config.TickInterval))
}

// scheduleLocked arms the tick for deadline. Successive ticks chain their
// deadlines so callback latency does not accumulate.
func (keeper *TimeKeeper) scheduleLocked(deadline time.Time) {
	if keeper.state.Phase != countdown.PhaseRunning {
		return
	}
	if keeper.state.Remaining == 0 {
		keeper.beginSwitchLocked()
		return
	}
	keeper.cancelScheduledLocked()
	keeper.nextTick = deadline
	delay := deadline.Sub(keeper.clock.Now())
	if delay < 0 {
		delay = 0
	}
	generation := keeper.generation
	keeper.tick = keeper.clock.AfterFunc(delay, func() {
		keeper.onTick(generation)
	})
}

func (keeper *TimeKeeper) beginSwitchLocked() {
	switching, ok := keeper.state.BeginSwitch()
	if !ok {
		return
	}
	keeper.cancelScheduledLocked()
	keeper.state = switching
	keeper.log.Infow("switching mode", "from", switching.Mode, "to", switching.Target)

	keeper.setBreakVisualLocked(switching.Target == countdown.ModeBreak)
	keeper.changedLocked(keeper.clock.Now())

	generation := keeper.generation
	keeper.pending = keeper.clock.AfterFunc(keeper.config.SettleDelay, func() {
		keeper.commitSwitch(generation)
	})
}

func (keeper *TimeKeeper) commitSwitch(generation uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || generation != keeper.generation || keeper.state.Phase != countdown.PhaseSwitching {
		return
	}

	now := keeper.clock.Now()
	keeper.saveRecordLocked(countdown.NewRecord(now, keeper.durations.For(keeper.state.Target)))
	keeper.state = keeper.state.CommitSwitch(keeper.durations)
	keeper.changedLocked(now)

	keeper.pending = keeper.clock.AfterFunc(keeper.config.ResumeDelay, func() {
		keeper.resumeAfterSwitch(generation)
	})
}

func (keeper *TimeKeeper) resumeAfterSwitch(generation uint64) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed || generation != keeper.generation || keeper.state.Phase != countdown.PhaseSwitching {
		return
	}
	keeper.pending = nil
	keeper.state = keeper.state.Resume()
	keeper.changedLocked(keeper.clock.Now())
	keeper.continueLocked()
}

// restoreLocked replaces the in-memory remaining time with the wall-clock
// value derived from the persisted record. An absent record falls back to the
// mode duration; a failed read or a record of the other mode keeps the
// in-memory value.
func (keeper *TimeKeeper) restoreLocked() {
	if keeper.state.Phase != countdown.PhaseRunning {
		return
	}
	record, ok, err := keeper.loadRecordLocked(context.Background())
	if err != nil {
		return
	}
	remaining := keeper.durations.For(keeper.state.Mode)
	if ok {
		if record.Duration != remaining {
			keeper.log.Warnw("ignoring countdown record of another mode",
				"mode", keeper.state.Mode,
				"duration", record.Duration,
			)
			return
		}
		remaining = record.RemainingAt(keeper.clock.Now())
	}
	restored := keeper.state.Restore(remaining, keeper.durations)
	if restored == keeper.state {
		return
	}
	keeper.state = restored
	keeper.publishLocked()
	keeper.emitLocked(keeper.eventLocked(EventProgress, keeper.clock.Now()))
}

func (keeper *TimeKeeper) cancelScheduledLocked() {
	if keeper.tick != nil {
		keeper.tick.Stop()
		keeper.tick = nil
	}
	if keeper.pending != nil {
		keeper.pending.Stop()
		keeper.pending = nil
	}
	keeper.generation++
}

// changedLocked runs the side effects shared by every phase or mode change.
func (keeper *TimeKeeper) changedLocked(now time.Time) {
	keeper.publishLocked()
	keeper.applyKeepAwakeLocked()
	keeper.emitLocked(keeper.eventLocked(EventStateChange, now))
}

// publishLocked writes the remaining time to the active mode's bindings.
func (keeper *TimeKeeper) publishLocked() {
	if !keeper.surface.Ready() {
		return
	}
	minutes, seconds := countdown.Display(keeper.state.Remaining)
	if keeper.state.Mode == countdown.ModeBreak {
		keeper.surface.SetString(OutputBreakMinutes, minutes)
		keeper.surface.SetString(OutputBreakSeconds, seconds)
		return
	}
	keeper.surface.SetString(OutputWorkMinutes, minutes)
	keeper.surface.SetString(OutputWorkSeconds, seconds)
}

func (keeper *TimeKeeper) setBreakVisualLocked(value bool) {
	keeper.breakVisual = value
	if keeper.surface.Ready() {
		keeper.surface.SetBool(InputBreak, value)
	}
}

func (keeper *TimeKeeper) applyKeepAwakeLocked() {
	want := keeper.config.KeepAwake && keeper.state.Running() && !keeper.state.Stopped()
	if want == keeper.awakeHeld {
		return
	}
	if want {
		if err := keeper.awake.Acquire(); err != nil {
			keeper.log.Warnw("acquire keep-awake", "err", err)
			return
		}
	} else if err := keeper.awake.Release(); err != nil {
		keeper.log.Warnw("release keep-awake", "err", err)
	}
	keeper.awakeHeld = want
}

func (keeper *TimeKeeper) storageContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, keeper.config.StorageTimeout)
}

// loadRecordLocked reads the persisted record. A malformed record is reported
// as absent; err is set only when the store itself failed.
func (keeper *TimeKeeper) loadRecordLocked(parent context.Context) (countdown.Record, bool, error) {
	ctx, cancel := keeper.storageContext(parent)
	defer cancel()

	data, ok, err := keeper.store.Get(ctx, countdown.StorageKey)
	if err != nil {
		keeper.storageErrorLocked("load", err)
		return countdown.Record{}, false, err
	}
	if !ok {
		return countdown.Record{}, false, nil
	}
	record, err := countdown.DecodeRecord(data)
	if err != nil {
		keeper.log.Warnw("discarding countdown record", "err", err)
		return countdown.Record{}, false, nil
	}
	return record, true, nil
}

func (keeper *TimeKeeper) saveRecordLocked(record countdown.Record) {
	data, err := record.Encode()
	if err != nil {
		keeper.storageErrorLocked("save", err)
		return
	}
	ctx, cancel := keeper.storageContext(context.Background())
	defer cancel()
	if err := keeper.store.Set(ctx, countdown.StorageKey, data); err != nil {
		keeper.storageErrorLocked("save", err)
		// the previous segment's record must not outlive a failed write
		keeper.deleteRecordLocked()
	}
}

func (keeper *TimeKeeper) deleteRecordLocked() {
	ctx, cancel := keeper.storageContext(context.Background())
	defer cancel()
	if err := keeper.store.Delete(ctx, countdown.StorageKey); err != nil {
		keeper.storageErrorLocked("delete", err)
	}
}

func (keeper *TimeKeeper) storageErrorLocked(op string, err error) {
	keeper.log.Warnw("countdown storage failed", "op", op, "err", err)
	event := keeper.eventLocked(EventStorageError, keeper.clock.Now())
	event.Message = err.Error()
	keeper.emitLocked(event)
}

func (keeper *TimeKeeper) eventLocked(kind EventType, now time.Time) Event {
	return Event{
		Type:      kind,
		Phase:     keeper.state.Phase,
		Mode:      keeper.state.Mode,
		Remaining: time.Duration(keeper.state.Remaining) * time.Second,
		Progress:  keeper.progressLocked(),
		At:        now,
	}
}

// progressLocked returns how much of the current segment has elapsed, in [0, 1].
func (keeper *TimeKeeper) progressLocked() float64 {
	if !keeper.state.Running() {
		return 0
	}
	total := keeper.durations.For(keeper.state.Mode)
	if total <= 0 {
		return 1
	}
	progress := float64(total-keeper.state.Remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
