// Package language owns the current-locale state for one session and
// reconciles it against the URL, the locally persisted preference and
// the remote profile preference. It is the single writer of the
// current locale; everything else only reads.
package language

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/oliveapp/olive-server/internal/locale"
)

// State tracks the coordinator's initialization progress.
type State int

const (
	StateUninitialized State = iota
	StateResolving
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateSettled:
		return "settled"
	default:
		return "uninitialized"
	}
}

// AuthStatus exposes the caller's identity as an opaque flag plus the
// actor and space identifiers.
type AuthStatus interface {
	Authenticated() bool
	ActorID() string
	SpaceID() string
}

// PreferenceStore reads and writes the remote language preference.
// Lookups may fail; failures are treated as "preference absent".
// Writes carry the space so a first-time write can bootstrap the
// actor's profile.
type PreferenceStore interface {
	Language(ctx context.Context, actorID string) (locale.Locale, bool, error)
	SetLanguage(ctx context.Context, actorID, spaceID string, l locale.Locale) error
}

// LocalStore persists the last-resolved locale code on the client side
// (a cookie for the web app, a file for the CLI).
type LocalStore interface {
	Load() (string, bool)
	Store(code string)
}

// Navigator receives redirect decisions. Implementations must tolerate
// being called at most once per event.
type Navigator interface {
	Redirect(path string)
}

// Env bundles the per-event capabilities a navigation carries. Any
// field may be nil; nil members behave as absent/no-op.
type Env struct {
	Auth  AuthStatus
	Local LocalStore
	Nav   Navigator
}

// Coordinator resolves and owns the current locale for one session.
type Coordinator struct {
	mu       sync.Mutex
	state    State
	current  locale.Locale
	changing bool
	closed   bool

	prefs PreferenceStore
	log   zerolog.Logger
}

// NewCoordinator returns an unsettled coordinator. prefs may be nil
// when no remote preference source exists.
func NewCoordinator(prefs PreferenceStore, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		state:   StateUninitialized,
		current: locale.Default,
		prefs:   prefs,
		log:     log,
	}
}

// Current returns the locale resolved so far. Before settlement it is
// the default locale.
func (c *Coordinator) Current() locale.Locale {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// State returns the coordinator's lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close marks the session as torn down. A remote preference fetch that
// resolves afterwards is discarded instead of applied.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Resolve handles a navigation event for path. On the first event it
// runs the initialization priority chain; afterwards it applies the
// post-settlement reconciliation rules. It returns the locale the
// event should render with. Redirects, when needed, go through
// env.Nav. Events arriving while another is still resolving are
// ignored and see the default locale.
func (c *Coordinator) Resolve(ctx context.Context, path string, env Env) locale.Locale {
	c.mu.Lock()
	if c.closed {
		cur := c.current
		c.mu.Unlock()
		return cur
	}
	switch c.state {
	case StateSettled:
		defer c.mu.Unlock()
		return c.reconcileLocked(path, env)
	case StateResolving:
		cur := c.current
		c.mu.Unlock()
		return cur
	}
	c.state = StateResolving
	c.mu.Unlock()

	resolved, redirect, persist := c.initialize(ctx, path, env)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != StateResolving {
		// Session went away mid-resolution, or an explicit change
		// already settled the coordinator; drop the init result so it
		// cannot override the user's choice, persist a stale locale,
		// or issue a competing redirect.
		return c.current
	}
	c.current = resolved
	c.state = StateSettled
	if persist {
		c.persistLocal(env, resolved)
	}
	if redirect != "" && env.Nav != nil {
		env.Nav.Redirect(redirect)
	}
	return resolved
}

// initialize runs the strict priority chain: URL, remote preference,
// local preference, default. It returns the resolved locale, the
// redirect target ("" when the URL is already authoritative) and
// whether the result should be persisted locally. Runs without the
// lock held because the remote lookup may block; side effects are
// applied by the caller only if the result is still wanted.
func (c *Coordinator) initialize(ctx context.Context, path string, env Env) (locale.Locale, string, bool) {
	if l, ok := locale.ResolveFromPath(path); ok {
		return l, "", true
	}

	if l, ok := c.remotePreference(ctx, env); ok {
		return l, c.redirectTarget(path, l), true
	}

	if env.Local != nil {
		if code, ok := env.Local.Load(); ok {
			if l, valid := locale.Parse(code); valid {
				return l, c.redirectTarget(path, l), false
			}
			c.log.Debug().Str("value", code).Msg("ignoring malformed persisted locale")
		}
	}

	return locale.Default, "", false
}

// reconcileLocked applies the post-settlement rules: the URL wins when
// it encodes a locale; the settled state wins when the URL is bare.
// Suppressed for the one navigation following an explicit change so
// the change's own redirect is not fought over.
func (c *Coordinator) reconcileLocked(path string, env Env) locale.Locale {
	if c.changing {
		c.changing = false
		return c.current
	}

	if l, ok := locale.ResolveFromPath(path); ok {
		if l != c.current {
			c.current = l
			c.persistLocal(env, l)
		}
		return c.current
	}

	if !locale.IsDefault(c.current) && env.Nav != nil {
		env.Nav.Redirect(locale.BuildLocalizedPath(path, c.current))
	}
	return c.current
}

// ChangeLanguage is the explicit language switch. Invalid or unchanged
// locales are ignored. The remote write is best-effort: failures are
// logged and the UI proceeds. The caller is redirected to the
// localized equivalent of path.
func (c *Coordinator) ChangeLanguage(ctx context.Context, l locale.Locale, path string, env Env) {
	parsed, valid := locale.Parse(string(l))
	if !valid {
		return
	}
	l = parsed

	c.mu.Lock()
	if c.closed || l == c.current {
		c.mu.Unlock()
		return
	}
	c.current = l
	c.state = StateSettled
	c.changing = true
	c.mu.Unlock()

	c.persistLocal(env, l)
	if c.prefs != nil && env.Auth != nil && env.Auth.Authenticated() {
		if err := c.prefs.SetLanguage(ctx, env.Auth.ActorID(), env.Auth.SpaceID(), l); err != nil {
			c.log.Warn().Err(err).Str("locale", string(l)).Msg("remote language preference write failed")
		}
	}
	if env.Nav != nil {
		env.Nav.Redirect(locale.BuildLocalizedPath(path, l))
	}
}

// remotePreference consults the profile preference for authenticated
// callers. Errors and closed sessions read as "absent".
func (c *Coordinator) remotePreference(ctx context.Context, env Env) (locale.Locale, bool) {
	if c.prefs == nil || env.Auth == nil || !env.Auth.Authenticated() {
		return "", false
	}
	l, ok, err := c.prefs.Language(ctx, env.Auth.ActorID())
	if err != nil {
		c.log.Warn().Err(err).Msg("remote language preference lookup failed")
		return "", false
	}
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed || !ok {
		return "", false
	}
	if _, valid := locale.Parse(string(l)); !valid {
		return "", false
	}
	return l, true
}

// redirectTarget returns the localized equivalent of path, or "" when
// no redirect is needed (the default locale needs no prefix and the
// bare path is already correct).
func (c *Coordinator) redirectTarget(path string, l locale.Locale) string {
	if locale.IsDefault(l) {
		return ""
	}
	return locale.BuildLocalizedPath(path, l)
}

func (c *Coordinator) persistLocal(env Env, l locale.Locale) {
	if env.Local != nil {
		env.Local.Store(string(l))
	}
}
