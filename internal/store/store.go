// Package store persists per-session client state (cart, quote, discount
// flag, UI preferences) as opaque serialized text, the way the admin UI
// used to keep it in browser storage. State never expires on its own; it
// is written on every mutation and read back at session start.
package store

import (
	"context"
	"errors"
)

// Keys used by the admin UI. Values are opaque to the store.
const (
	KeyCart             = "cart"
	KeyQuoteItems       = "quoteItems"
	KeyDiscountApplied  = "discountApplied"
	KeyTheme            = "theme"
	KeySidebarCollapsed = "sidebarCollapsed"
)

var ErrNotFound = errors.New("store: key not found")

type Store interface {
	Get(ctx context.Context, session, key string) (string, error)
	Set(ctx context.Context, session, key, value string) error
	Delete(ctx context.Context, session, key string) error
}
