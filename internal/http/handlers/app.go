package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
	"fundtrack/internal/snapshot"
)

// App carries the dependencies shared by every handler.
type App struct {
	Interns       domain.InternRepository
	Donations     domain.DonationRepository
	Announcements domain.AnnouncementRepository
	Loader        *snapshot.Loader
	Logger        zerolog.Logger
	DefaultGoal   decimal.Decimal
	// Now is the reference instant for every time-windowed figure.
	Now func() time.Time

	validate *validator.Validate
}

func NewApp(
	interns domain.InternRepository,
	donations domain.DonationRepository,
	announcements domain.AnnouncementRepository,
	loader *snapshot.Loader,
	defaultGoal decimal.Decimal,
	logger zerolog.Logger,
) *App {
	return &App{
		Interns:       interns,
		Donations:     donations,
		Announcements: announcements,
		Loader:        loader,
		Logger:        logger,
		DefaultGoal:   defaultGoal,
		Now:           time.Now,
		validate:      newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now().UTC()
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": msg},
	})
}

// decode reads a JSON body into dst and runs its validate tags.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := a.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %s", domain.ErrInvalidInput, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// fail maps domain errors onto the error envelope. Anything unrecognised is
// logged and reported as internal.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrMalformedDate):
		a.error(w, http.StatusBadRequest, "bad_request", errorMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusConflict, "conflict", "already exists")
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
		a.error(w, http.StatusInternalServerError, "internal", msg)
	}
}

// unavailable reports a failed snapshot fetch. The loader has already
// logged which collection failed.
func (a *App) unavailable(w http.ResponseWriter) {
	a.error(w, http.StatusServiceUnavailable, "fetch_failed", "could not load data, please retry")
}

func errorMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && strings.HasPrefix(msg, domain.ErrInvalidInput.Error()) {
		return msg[i+2:]
	}
	return msg
}
