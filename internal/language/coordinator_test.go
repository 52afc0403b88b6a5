package language

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliveapp/olive-server/internal/locale"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

// --- Fakes ---

type fakeAuth struct {
	authed bool
	actor  string
	space  string
}

func (f fakeAuth) Authenticated() bool { return f.authed }
func (f fakeAuth) ActorID() string     { return f.actor }
func (f fakeAuth) SpaceID() string     { return f.space }

type fakePrefs struct {
	mu       sync.Mutex
	lang     locale.Locale
	present  bool
	err      error
	setCalls []locale.Locale
	setErr   error
	block    chan struct{} // when non-nil, Language waits until closed
}

func (f *fakePrefs) Language(ctx context.Context, actorID string) (locale.Locale, bool, error) {
	if f.block != nil {
		<-f.block
	}
	return f.lang, f.present, f.err
}

func (f *fakePrefs) SetLanguage(ctx context.Context, actorID, spaceID string, l locale.Locale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls = append(f.setCalls, l)
	return f.setErr
}

type fakeLocal struct {
	val    string
	ok     bool
	stored []string
}

func (f *fakeLocal) Load() (string, bool) { return f.val, f.ok }
func (f *fakeLocal) Store(code string)    { f.stored = append(f.stored, code) }

type fakeNav struct{ targets []string }

func (f *fakeNav) Redirect(path string) { f.targets = append(f.targets, path) }

func env(auth AuthStatus, local *fakeLocal, nav *fakeNav) Env {
	e := Env{Auth: auth}
	if local != nil {
		e.Local = local
	}
	if nav != nil {
		e.Nav = nav
	}
	return e
}

func newTestCoordinator(prefs PreferenceStore) *Coordinator {
	return NewCoordinator(prefs, zerolog.Nop())
}

// --- Initialization priority chain ---

func TestInitializeURLWinsOverAllSources(t *testing.T) {
	prefs := &fakePrefs{lang: locale.French, present: true}
	local := &fakeLocal{val: "es", ok: true}
	nav := &fakeNav{}
	c := newTestCoordinator(prefs)

	got := c.Resolve(context.Background(), "/pt/home", env(fakeAuth{true, "a1", "s1"}, local, nav))

	assert.Equal(t, locale.Portuguese, got)
	assert.Equal(t, StateSettled, c.State())
	assert.Empty(t, nav.targets, "URL is already authoritative, no redirect")
	assert.Equal(t, []string{"pt"}, local.stored)
}

func TestInitializeRemotePreference(t *testing.T) {
	prefs := &fakePrefs{lang: locale.French, present: true}
	local := &fakeLocal{val: "es", ok: true}
	nav := &fakeNav{}
	c := newTestCoordinator(prefs)

	got := c.Resolve(context.Background(), "/home", env(fakeAuth{true, "a1", "s1"}, local, nav))

	assert.Equal(t, locale.French, got)
	require.Len(t, nav.targets, 1)
	assert.Equal(t, "/fr/home", nav.targets[0])
	assert.Equal(t, []string{"fr"}, local.stored)
}

func TestInitializeRemoteFailureFallsThroughToLocal(t *testing.T) {
	prefs := &fakePrefs{err: errors.New("network down")}
	local := &fakeLocal{val: "es", ok: true}
	nav := &fakeNav{}
	c := newTestCoordinator(prefs)

	got := c.Resolve(context.Background(), "/home", env(fakeAuth{true, "a1", "s1"}, local, nav))

	assert.Equal(t, locale.Spanish, got)
	require.Len(t, nav.targets, 1)
	assert.Equal(t, "/es/home", nav.targets[0])
}

func TestInitializeLocalPreferenceWhenUnauthenticated(t *testing.T) {
	local := &fakeLocal{val: "pt", ok: true}
	nav := &fakeNav{}
	c := newTestCoordinator(&fakePrefs{lang: locale.French, present: true})

	got := c.Resolve(context.Background(), "/lists", env(fakeAuth{false, "", ""}, local, nav))

	assert.Equal(t, locale.Portuguese, got)
	assert.Equal(t, []string{"/pt/lists"}, nav.targets)
}

func TestInitializeMalformedLocalValueFallsThroughToDefault(t *testing.T) {
	local := &fakeLocal{val: "zz-not-a-locale", ok: true}
	nav := &fakeNav{}
	c := newTestCoordinator(nil)

	got := c.Resolve(context.Background(), "/home", env(fakeAuth{false, "", ""}, local, nav))

	assert.Equal(t, locale.Default, got)
	assert.Empty(t, nav.targets)
}

func TestInitializeDefaultWhenNoSources(t *testing.T) {
	nav := &fakeNav{}
	c := newTestCoordinator(nil)

	got := c.Resolve(context.Background(), "/", env(nil, nil, nav))

	assert.Equal(t, locale.Default, got)
	assert.Equal(t, StateSettled, c.State())
	assert.Empty(t, nav.targets)
}

func TestInitializeRemoteDefaultLocaleNeedsNoRedirect(t *testing.T) {
	prefs := &fakePrefs{lang: locale.English, present: true}
	nav := &fakeNav{}
	c := newTestCoordinator(prefs)

	got := c.Resolve(context.Background(), "/home", env(fakeAuth{true, "a1", "s1"}, nil, nav))

	assert.Equal(t, locale.English, got)
	assert.Empty(t, nav.targets)
}

// --- Post-settlement reconciliation ---

func TestReconcileURLWins(t *testing.T) {
	local := &fakeLocal{}
	nav := &fakeNav{}
	c := newTestCoordinator(nil)
	e := env(nil, local, nav)

	c.Resolve(context.Background(), "/pt/home", e)
	got := c.Resolve(context.Background(), "/es/home", e)

	assert.Equal(t, locale.Spanish, got)
	assert.Equal(t, locale.Spanish, c.Current())
	assert.Empty(t, nav.targets)
	assert.Equal(t, []string{"pt", "es"}, local.stored)
}

func TestReconcileBareURLRedirectsToCurrent(t *testing.T) {
	nav := &fakeNav{}
	c := newTestCoordinator(nil)
	e := env(nil, &fakeLocal{}, nav)

	c.Resolve(context.Background(), "/pt/home", e)
	got := c.Resolve(context.Background(), "/calendar", e)

	assert.Equal(t, locale.Portuguese, got)
	assert.Equal(t, []string{"/pt/calendar"}, nav.targets)
}

func TestReconcileBareURLDefaultLocaleNoRedirect(t *testing.T) {
	nav := &fakeNav{}
	c := newTestCoordinator(nil)
	e := env(nil, &fakeLocal{}, nav)

	c.Resolve(context.Background(), "/home", e)
	c.Resolve(context.Background(), "/calendar", e)

	assert.Empty(t, nav.targets)
}

// --- Explicit change ---

func TestChangeLanguage(t *testing.T) {
	prefs := &fakePrefs{}
	local := &fakeLocal{}
	nav := &fakeNav{}
	c := newTestCoordinator(prefs)
	e := env(fakeAuth{true, "a1", "s1"}, local, nav)

	c.Resolve(context.Background(), "/home", e)
	c.ChangeLanguage(context.Background(), locale.Spanish, "/home", e)

	assert.Equal(t, locale.Spanish, c.Current())
	assert.Contains(t, local.stored, "es")
	assert.Equal(t, []locale.Locale{locale.Spanish}, prefs.setCalls)
	assert.Equal(t, []string{"/es/home"}, nav.targets)
}

func TestChangeLanguageInvalidIsNoOp(t *testing.T) {
	nav := &fakeNav{}
	c := newTestCoordinator(nil)
	e := env(nil, &fakeLocal{}, nav)

	c.Resolve(context.Background(), "/pt/home", e)
	c.ChangeLanguage(context.Background(), "zz", "/pt/home", e)

	assert.Equal(t, locale.Portuguese, c.Current())
	assert.Empty(t, nav.targets)
}

func TestChangeLanguageSameLocaleIsNoOp(t *testing.T) {
	prefs := &fakePrefs{}
	nav := &fakeNav{}
	c := newTestCoordinator(prefs)
	e := env(fakeAuth{true, "a1", "s1"}, &fakeLocal{}, nav)

	c.Resolve(context.Background(), "/pt/home", e)
	c.ChangeLanguage(context.Background(), locale.Portuguese, "/pt/home", e)

	assert.Empty(t, prefs.setCalls)
	assert.Empty(t, nav.targets)
}

func TestChangeLanguageRemoteWriteFailureIsNotFatal(t *testing.T) {
	prefs := &fakePrefs{setErr: errors.New("boom")}
	nav := &fakeNav{}
	c := newTestCoordinator(prefs)
	e := env(fakeAuth{true, "a1", "s1"}, &fakeLocal{}, nav)

	c.Resolve(context.Background(), "/home", e)
	c.ChangeLanguage(context.Background(), locale.French, "/home", e)

	assert.Equal(t, locale.French, c.Current())
	assert.Equal(t, []string{"/fr/home"}, nav.targets)
}

func TestChangeLanguageSuppressesNextReconciliation(t *testing.T) {
	nav := &fakeNav{}
	c := newTestCoordinator(nil)
	e := env(nil, &fakeLocal{}, nav)

	c.Resolve(context.Background(), "/home", e)
	c.ChangeLanguage(context.Background(), locale.Portuguese, "/home", e)
	require.Equal(t, []string{"/pt/home"}, nav.targets)

	// The redirected navigation lands with a bare path before the URL
	// catches up; reconciliation must not issue a second redirect.
	got := c.Resolve(context.Background(), "/home", e)
	assert.Equal(t, locale.Portuguese, got)
	assert.Len(t, nav.targets, 1)

	// The suppression covers exactly one navigation.
	c.Resolve(context.Background(), "/calendar", e)
	assert.Equal(t, []string{"/pt/home", "/pt/calendar"}, nav.targets)
}

func TestChangeLanguageCanonicalizesCase(t *testing.T) {
	local := &fakeLocal{}
	nav := &fakeNav{}
	c := newTestCoordinator(nil)
	e := env(nil, local, nav)

	c.Resolve(context.Background(), "/home", e)
	c.ChangeLanguage(context.Background(), "PT", "/home", e)

	assert.Equal(t, locale.Portuguese, c.Current())
	assert.Equal(t, []string{"pt"}, local.stored)
	assert.Equal(t, []string{"/pt/home"}, nav.targets)
}

// --- Concurrency and teardown ---

func TestNavigationDuringResolutionIsIgnored(t *testing.T) {
	prefs := &fakePrefs{lang: locale.Portuguese, present: true, block: make(chan struct{})}
	navA := &fakeNav{}
	navB := &fakeNav{}
	c := newTestCoordinator(prefs)

	done := make(chan locale.Locale, 1)
	go func() {
		done <- c.Resolve(context.Background(), "/home", env(fakeAuth{true, "a1", "s1"}, &fakeLocal{}, navA))
	}()

	// Wait until the first navigation is mid-resolution.
	require.Eventually(t, func() bool { return c.State() == StateResolving }, testWait, testTick)

	got := c.Resolve(context.Background(), "/es/home", env(fakeAuth{true, "a1", "s1"}, &fakeLocal{}, navB))
	assert.Equal(t, locale.Default, got, "competing navigation is ignored while resolving")
	assert.Empty(t, navB.targets)

	close(prefs.block)
	assert.Equal(t, locale.Portuguese, <-done)
	assert.Equal(t, []string{"/pt/home"}, navA.targets)
}

func TestChangeLanguageDuringResolutionWins(t *testing.T) {
	prefs := &fakePrefs{lang: locale.French, present: true, block: make(chan struct{})}
	localA := &fakeLocal{}
	navA := &fakeNav{}
	navB := &fakeNav{}
	c := newTestCoordinator(prefs)

	done := make(chan locale.Locale, 1)
	go func() {
		done <- c.Resolve(context.Background(), "/home", env(fakeAuth{true, "a1", "s1"}, localA, navA))
	}()
	require.Eventually(t, func() bool { return c.State() == StateResolving }, testWait, testTick)

	// The user picks Spanish while the remote fetch is still pending.
	c.ChangeLanguage(context.Background(), locale.Spanish, "/home", env(fakeAuth{true, "a1", "s1"}, &fakeLocal{}, navB))
	require.Equal(t, locale.Spanish, c.Current())
	require.Equal(t, []string{"/es/home"}, navB.targets)

	// The slower init result must not override the explicit choice,
	// persist its stale locale, or issue a second competing redirect.
	close(prefs.block)
	assert.Equal(t, locale.Spanish, <-done)
	assert.Equal(t, locale.Spanish, c.Current())
	assert.Empty(t, navA.targets)
	assert.Empty(t, localA.stored)
	assert.Equal(t, StateSettled, c.State())
}

func TestCloseDiscardsInFlightRemoteResult(t *testing.T) {
	prefs := &fakePrefs{lang: locale.Portuguese, present: true, block: make(chan struct{})}
	nav := &fakeNav{}
	c := newTestCoordinator(prefs)

	done := make(chan locale.Locale, 1)
	go func() {
		done <- c.Resolve(context.Background(), "/home", env(fakeAuth{true, "a1", "s1"}, &fakeLocal{}, nav))
	}()
	require.Eventually(t, func() bool { return c.State() == StateResolving }, testWait, testTick)

	c.Close()
	close(prefs.block)

	assert.Equal(t, locale.Default, <-done)
	assert.Empty(t, nav.targets, "closed session must not redirect")
	assert.NotEqual(t, StateSettled, c.State())
}

func TestResolveAfterCloseIsInert(t *testing.T) {
	nav := &fakeNav{}
	c := newTestCoordinator(nil)
	c.Close()

	got := c.Resolve(context.Background(), "/pt/home", env(nil, &fakeLocal{}, nav))

	assert.Equal(t, locale.Default, got)
	assert.Empty(t, nav.targets)
}
