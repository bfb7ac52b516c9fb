package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leomerlubo/wellflow/internal/model"
	"github.com/leomerlubo/wellflow/internal/store"
)

// App owns the user's profile, logs and fasting data for one device. Reads come
// from memory; every mutation is written through to the store before it returns.
type App struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	profile     model.UserProfile
	logs        []model.LogEntry
	fastingLogs []model.FastingSession
	fasting     model.FastingState
	lastReset   time.Time
}

type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(a *App) {
		if newID != nil {
			a.newID = newID
		}
	}
}

// NewApp builds an App with default records. Call Load to read persisted state.
func NewApp(st store.Store, opts ...Option) *App {
	a := &App{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.resetToDefaults()
	return a
}

// OpenApp is NewApp followed by Load.
func OpenApp(st store.Store, opts ...Option) (*App, error) {
	a := NewApp(st, opts...)
	if err := a.Load(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) resetToDefaults() {
	a.profile = DefaultProfile()
	a.logs = []model.LogEntry{}
	a.fastingLogs = []model.FastingSession{}
	a.fasting = model.FastingState{}
	a.lastReset = a.now()
}

// Load replaces in-memory state with the persisted records. A missing or
// unreadable record falls back to its default; only store failures are errors.
func (a *App) Load() error {
	a.resetToDefaults()

	if raw, ok, err := a.read(store.KeyProfile); err != nil {
		return err
	} else if ok {
		if p, err := decodeProfile(raw); err != nil {
			a.warnDefault(store.KeyProfile, err)
		} else {
			a.profile = p
		}
	}
	if raw, ok, err := a.read(store.KeyLogs); err != nil {
		return err
	} else if ok {
		if logs, err := decodeLogs(raw); err != nil {
			a.warnDefault(store.KeyLogs, err)
		} else {
			a.logs = logs
		}
	}
	if raw, ok, err := a.read(store.KeyFastingLogs); err != nil {
		return err
	} else if ok {
		if history, err := decodeFastingLogs(raw); err != nil {
			a.warnDefault(store.KeyFastingLogs, err)
		} else {
			a.fastingLogs = history
		}
	}
	if raw, ok, err := a.read(store.KeyFastingState); err != nil {
		return err
	} else if ok {
		if st, err := decodeFastingState(raw); err != nil {
			a.warnDefault(store.KeyFastingState, err)
		} else {
			a.fasting = st
		}
	}
	raw, ok, err := a.read(store.KeyLastReset)
	if err != nil {
		return err
	}
	if ok {
		if t, err := decodeLastReset(raw); err != nil {
			a.warnDefault(store.KeyLastReset, err)
		} else {
			a.lastReset = t
			return nil
		}
	}
	// First run: the marker defaults to now and is persisted right away.
	return a.persist(store.KeyLastReset, a.lastReset)
}

func (a *App) read(key string) ([]byte, bool, error) {
	raw, ok, err := a.store.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return raw, ok, nil
}

func (a *App) warnDefault(key string, err error) {
	a.logger.Warn("record unreadable, using default", slog.String("record", key), slog.String("error", err.Error()))
}

func (a *App) persist(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.store.Put(key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (a *App) Now() time.Time {
	return a.now()
}

func (a *App) Profile() model.UserProfile {
	p := a.profile
	if p.ManualDailyLimit != nil {
		limit := *p.ManualDailyLimit
		p.ManualDailyLimit = &limit
	}
	return p
}

// SaveProfile overwrites the whole profile.
func (a *App) SaveProfile(p model.UserProfile) error {
	normalized, err := NormalizeProfile(p)
	if err != nil {
		return err
	}
	if err := a.persist(store.KeyProfile, normalized); err != nil {
		return err
	}
	a.profile = normalized
	a.logger.Debug("profile saved", slog.String("name", normalized.Name))
	return nil
}

func (a *App) BMR() float64 {
	return ComputeBMR(a.profile, a.now())
}

func (a *App) DailyLimit() float64 {
	return EffectiveDailyLimit(a.profile, a.now())
}

// Logs returns the full collection, newest first.
func (a *App) Logs() []model.LogEntry {
	return append([]model.LogEntry(nil), a.logs...)
}

func (a *App) Today() DailyLedger {
	now := a.now()
	return Summarize(a.logs, now, EffectiveDailyLimit(a.profile, now))
}

func (a *App) AddLog(in LogInput) (model.LogEntry, error) {
	entry, err := NewLogEntry(in, a.newID(), a.now())
	if err != nil {
		return model.LogEntry{}, err
	}
	logs := PrependLog(a.logs, entry)
	if err := a.persist(store.KeyLogs, logs); err != nil {
		return model.LogEntry{}, err
	}
	a.logs = logs
	a.logger.Debug("log added", slog.String("id", entry.ID), slog.String("kind", string(entry.Kind)), slog.Float64("calories", entry.Calories))
	return entry, nil
}

// DeleteLog removes the entry with id. An unknown id is a no-op and reports false.
func (a *App) DeleteLog(id string) (bool, error) {
	logs, removed := RemoveLog(a.logs, id)
	if !removed {
		return false, nil
	}
	if err := a.persist(store.KeyLogs, logs); err != nil {
		return false, err
	}
	a.logs = logs
	a.logger.Debug("log deleted", slog.String("id", id))
	return true, nil
}

func (a *App) FastingState() model.FastingState {
	st := a.fasting
	if st.StartedAt != nil {
		started := *st.StartedAt
		st.StartedAt = &started
	}
	return st
}

// FastingHistory returns completed fasts, newest first.
func (a *App) FastingHistory() []model.FastingSession {
	return append([]model.FastingSession(nil), a.fastingLogs...)
}

func (a *App) StartFast(at time.Time) error {
	next, err := StartFast(a.fasting, at)
	if err != nil {
		return err
	}
	if err := a.persist(store.KeyFastingState, next); err != nil {
		return err
	}
	a.fasting = next
	a.logger.Debug("fast started", slog.Time("started_at", at))
	return nil
}

// EndFast closes the active fast and records it. It returns nil when no fast
// was active.
func (a *App) EndFast() (*model.FastingSession, error) {
	next, session := EndFast(a.fasting, a.now(), a.newID())
	if session == nil {
		return nil, nil
	}
	history := PrependSession(a.fastingLogs, *session)
	raw, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", store.KeyFastingLogs, err)
	}
	stateRaw, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", store.KeyFastingState, err)
	}
	if err := a.store.PutBatch([]store.Record{
		{Key: store.KeyFastingLogs, Value: raw},
		{Key: store.KeyFastingState, Value: stateRaw},
	}); err != nil {
		return nil, fmt.Errorf("save fast: %w", err)
	}
	a.fastingLogs = history
	a.fasting = next
	a.logger.Debug("fast ended", slog.String("id", session.ID), slog.Int64("duration_ms", session.DurationMs))
	return session, nil
}

func (a *App) FastProgress() (FastProgress, bool) {
	return Progress(a.fasting, a.now())
}

func (a *App) LastReset() time.Time {
	return a.lastReset
}

// CheckDayBoundary moves the day marker to now when the local calendar day has
// changed since the last check, and reports whether it did.
func (a *App) CheckDayBoundary() (bool, error) {
	now := a.now()
	if IsSameCalendarDay(now, a.lastReset) {
		return false, nil
	}
	if err := a.persist(store.KeyLastReset, now); err != nil {
		return false, err
	}
	a.logger.Info("day boundary crossed", slog.Time("previous", a.lastReset), slog.Time("now", now))
	a.lastReset = now
	return true, nil
}
