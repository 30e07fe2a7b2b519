package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// Locales matches request preferences against the locales the service
// renders. The fallback is always the first supported tag.
type Locales struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewLocales builds a matcher from BCP 47 strings. Unparseable entries are
// skipped; an empty result falls back to English.
func NewLocales(fallback string, supported []string) *Locales {
	tags := make([]language.Tag, 0, len(supported)+1)
	seen := make(map[string]struct{})
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		tag, err := language.Parse(s)
		if err != nil || tag == language.Und {
			return
		}
		if _, ok := seen[tag.String()]; ok {
			return
		}
		seen[tag.String()] = struct{}{}
		tags = append(tags, tag)
	}
	add(fallback)
	for _, s := range supported {
		add(s)
	}
	if len(tags) == 0 {
		tags = append(tags, language.English)
	}
	return &Locales{supported: tags, matcher: language.NewMatcher(tags)}
}

// Fallback returns the locale used when nothing better matches.
func (l *Locales) Fallback() language.Tag {
	return l.supported[0]
}

// Match returns the best supported tag for the candidates, in preference
// order, or the fallback when none is close enough.
func (l *Locales) Match(candidates ...language.Tag) language.Tag {
	if len(candidates) == 0 {
		return l.Fallback()
	}
	_, idx, conf := l.matcher.Match(candidates...)
	if conf == language.No {
		return l.Fallback()
	}
	return l.supported[idx]
}

func I18N(locales *Locales, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := ResolveCountry(r, lookup)
			locale := detectLocale(r, locales, country)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, country)
			}
			w.Header().Set("Content-Language", locale.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// detectLocale prefers an explicit X-Locale, then Accept-Language, then the
// fallback language in the caller's country.
func detectLocale(r *http.Request, locales *Locales, country string) language.Tag {
	if v := strings.TrimSpace(r.Header.Get("X-Locale")); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return locales.Match(tag)
		}
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		if tags, _, err := language.ParseAcceptLanguage(v); err == nil && len(tags) > 0 {
			return locales.Match(tags...)
		}
	}
	if country != "" {
		base, _ := locales.Fallback().Base()
		if region, err := language.ParseRegion(country); err == nil {
			if tag, err := language.Compose(base, region); err == nil {
				return locales.Match(tag)
			}
		}
	}
	return locales.Fallback()
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LocaleFromContext returns the negotiated locale, English when unset.
func LocaleFromContext(ctx context.Context) language.Tag {
	if v, ok := ctx.Value(LocaleKey).(language.Tag); ok {
		return v
	}
	return language.English
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ResolveCountry resolves a best-effort ISO country code for the given
// request: proxy headers first, then the GeoIP lookup.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	for _, key := range []string{"X-Country-Code", "CF-IPCountry", "X-Appengine-Country"} {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" && !strings.EqualFold(val, "XX") {
			return strings.ToUpper(val)
		}
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}
