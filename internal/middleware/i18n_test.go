package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

type assertError string

func (e assertError) Error() string { return string(e) }

func TestDetectLocale(t *testing.T) {
	locales := NewLocales("en", []string{"en-IN", "hi"})
	tests := []struct {
		name    string
		setup   func(r *http.Request)
		country string
		want    string
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "hi")
				r.Header.Set("Accept-Language", "en-IN")
			},
			want: "hi",
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-IN,en;q=0.9")
			},
			want: "en-IN",
		},
		{
			name: "unsupported language falls back",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "ja-JP")
			},
			want: "en",
		},
		{
			name:    "country hint",
			country: "IN",
			want:    "en-IN",
		},
		{
			name: "default",
			want: "en",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			got := detectLocale(req, locales, tc.country)
			if got.String() != tc.want {
				t.Fatalf("detectLocale() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewLocalesSkipsInvalid(t *testing.T) {
	locales := NewLocales("not a tag!", []string{"", "hi"})
	if got := locales.Fallback().String(); got != "hi" {
		t.Fatalf("Fallback() = %q, want %q", got, "hi")
	}
	empty := NewLocales("", nil)
	if got := empty.Fallback(); got != language.English {
		t.Fatalf("Fallback() = %q, want en", got)
	}
}

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		resolver CountryLookup
		want     string
	}{
		{
			name: "header precedence",
			setup: func(r *http.Request) {
				r.Header.Set("X-Country-Code", "in")
				r.Header.Set("CF-IPCountry", "us")
			},
			want: "IN",
		},
		{
			name: "unknown cloudflare country ignored",
			setup: func(r *http.Request) {
				r.Header.Set("CF-IPCountry", "XX")
			},
			want: "",
		},
		{
			name: "resolver fallback",
			resolver: func(ip string) (string, error) {
				if ip != "203.0.113.4" {
					t.Fatalf("unexpected ip: %s", ip)
				}
				return "np", nil
			},
			want: "NP",
		},
		{
			name: "resolver error returns empty",
			resolver: func(ip string) (string, error) {
				return "", assertError("boom")
			},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			if tc.setup != nil {
				tc.setup(req)
			}
			got := ResolveCountry(req, tc.resolver)
			if got != tc.want {
				t.Fatalf("ResolveCountry() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestI18NStoresLocale(t *testing.T) {
	var got language.Tag
	h := I18N(NewLocales("en", []string{"hi"}), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "hi-IN")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got.String() != "hi" {
		t.Fatalf("locale = %q, want hi", got)
	}
	if rec.Header().Get("Content-Language") != "hi" {
		t.Fatalf("Content-Language = %q", rec.Header().Get("Content-Language"))
	}
}

func TestLocaleFromContext(t *testing.T) {
	ctx := context.Background()
	if got := LocaleFromContext(ctx); got != language.English {
		t.Fatalf("LocaleFromContext() default = %q, want en", got)
	}
	ctx = context.WithValue(ctx, LocaleKey, language.Hindi)
	if got := LocaleFromContext(ctx); got != language.Hindi {
		t.Fatalf("LocaleFromContext() with value = %q, want hi", got)
	}
}
