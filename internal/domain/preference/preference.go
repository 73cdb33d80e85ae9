package preference

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ColorScheme is the light/dark choice of the wizard itself, not of the portfolio.
type ColorScheme string

const (
	SchemeLight ColorScheme = "light"
	SchemeDark  ColorScheme = "dark"
)

var (
	ErrInvalidScheme = errors.New("color scheme must be light or dark")
	ErrNotFound      = errors.New("preference not found")
)

type Preference struct {
	ClientID    uuid.UUID   `json:"client_id"`
	ColorScheme ColorScheme `json:"color_scheme"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func ParseScheme(s string) (ColorScheme, error) {
	switch c := ColorScheme(strings.ToLower(strings.TrimSpace(s))); c {
	case SchemeLight, SchemeDark:
		return c, nil
	}
	return "", ErrInvalidScheme
}

func (c ColorScheme) Toggle() ColorScheme {
	if c == SchemeDark {
		return SchemeLight
	}
	return SchemeDark
}

type Repository interface {
	Get(ctx context.Context, clientID uuid.UUID) (*Preference, error)
	Upsert(ctx context.Context, p *Preference) error
}
