package locale

import "testing"

func TestResolveFromPath(t *testing.T) {
	cases := []struct {
		path string
		want Locale
		ok   bool
	}{
		{"/pt/home", Portuguese, true},
		{"/es", Spanish, true},
		{"/PT/home", Portuguese, true},
		{"/pt/", Portuguese, true},
		{"/en/home", "", false}, // default locale carries no prefix
		{"/home", "", false},
		{"/", "", false},
		{"", "", false},
		{"/ptx/home", "", false}, // unknown prefix is a plain segment
		{"/profile/pt", "", false},
	}
	for _, c := range cases {
		got, ok := ResolveFromPath(c.path)
		if ok != c.ok || got != c.want {
			t.Errorf("ResolveFromPath(%q) = (%q, %v), want (%q, %v)", c.path, got, ok, c.want, c.ok)
		}
	}
}

func TestStripFromPath(t *testing.T) {
	cases := []struct{ path, want string }{
		{"/pt/home", "/home"},
		{"/pt", "/"},
		{"/pt/", "/"},
		{"/es/lists/abc", "/lists/abc"},
		{"/home", "/home"},
		{"/home/", "/home"},
		{"/", "/"},
		{"", "/"},
		{"home", "/home"},
		{"/ptx/home", "/ptx/home"},
	}
	for _, c := range cases {
		if got := StripFromPath(c.path); got != c.want {
			t.Errorf("StripFromPath(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestStripFromPathIdempotent(t *testing.T) {
	paths := []string{"/pt/home", "/es/", "/home", "/", "/calendar/2026-08-23"}
	for _, p := range paths {
		once := StripFromPath(p)
		if twice := StripFromPath(once); twice != once {
			t.Errorf("StripFromPath(%q): second application changed %q to %q", p, once, twice)
		}
	}
}

func TestBuildLocalizedPath(t *testing.T) {
	cases := []struct {
		path string
		l    Locale
		want string
	}{
		{"/home", Portuguese, "/pt/home"},
		{"/pt/home", Spanish, "/es/home"},
		{"/pt/home", English, "/home"},
		{"/", Portuguese, "/pt"},
		{"/home", English, "/home"},
		{"/es/", Portuguese, "/pt"},
	}
	for _, c := range cases {
		if got := BuildLocalizedPath(c.path, c.l); got != c.want {
			t.Errorf("BuildLocalizedPath(%q, %q) = %q, want %q", c.path, c.l, got, c.want)
		}
	}
}

func TestBuildLocalizedPathIdempotent(t *testing.T) {
	for _, l := range Supported {
		for _, p := range []string{"/", "/home", "/pt/lists", "/reminders/"} {
			once := BuildLocalizedPath(p, l)
			if twice := BuildLocalizedPath(once, l); twice != once {
				t.Errorf("BuildLocalizedPath(%q, %q): got %q then %q", p, l, once, twice)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, l := range Supported {
		for _, p := range []string{"/", "/home", "/lists/abc"} {
			built := BuildLocalizedPath(p, l)
			got, ok := ResolveFromPath(built)
			if IsDefault(l) {
				if ok {
					t.Errorf("ResolveFromPath(%q) resolved %q for default locale", built, got)
				}
				continue
			}
			if !ok || got != l {
				t.Errorf("ResolveFromPath(%q) = (%q, %v), want (%q, true)", built, got, ok, l)
			}
		}
	}
}

func TestParse(t *testing.T) {
	if l, ok := Parse("PT"); !ok || l != Portuguese {
		t.Fatalf("Parse(PT) = (%q, %v)", l, ok)
	}
	if _, ok := Parse("de"); ok {
		t.Fatal("Parse(de) should not match")
	}
	if _, ok := Parse(""); ok {
		t.Fatal("Parse empty should not match")
	}
}
