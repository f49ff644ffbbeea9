package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ErrMalformed marks a stored value that could not be decoded. Callers that
// treat storage as best-effort (cart, wishlist) read it as absence.
var ErrMalformed = errors.New("malformed stored value")

// ErrConflict is returned when an update keeps losing to concurrent writers.
var ErrConflict = errors.New("concurrent update conflict")

// Store is the session-scoped key/value store the storefront keeps its
// client state in. Values are JSON encoded.
type Store interface {
	// Get decodes the value under key into value. It reports false when the
	// key is absent.
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	// Update loads key into value, calls fn and writes value back, atomically
	// with respect to other writers of the same key. A missing or malformed
	// value reaches fn as found == false with value reset to its zero value.
	// An error from fn aborts the write.
	Update(ctx context.Context, key string, value any, fn func(found bool) error) error
	Ping(ctx context.Context) error
	Close() error
}

const (
	CartKey        = "cart"
	WishlistKey    = "wishlist"
	CurrentUserKey = "currentUser"
	AuthTokenKey   = "authToken"
	CheckoutKey    = "checkout"
)

func Key(sessionID, name string) string {
	return "session:" + sessionID + ":" + name
}

func decode(key string, data []byte, value any) error {
	if err := json.Unmarshal(data, value); err != nil {
		reset(value)
		return fmt.Errorf("%w: key %s: %v", ErrMalformed, key, err)
	}

	return nil
}

func encode(key string, value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	return data, nil
}

func reset(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v.Elem().SetZero()
	}
}
