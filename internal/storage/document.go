package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// SchemaVersion is written into every document envelope.
const SchemaVersion = 1

// ErrMalformed reports a document that cannot be decoded.
var ErrMalformed = errors.New("storage: malformed document")

type envelope struct {
	SchemaVersion *int            `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// Encode wraps v in a versioned envelope.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("storage: encode: %w", err)
	}
	version := SchemaVersion
	return json.Marshal(envelope{SchemaVersion: &version, Data: data})
}

// Decode unpacks raw into dest. Documents without an envelope are read as
// legacy (version 0) payloads.
func Decode(raw []byte, dest any) error {
	payload := bytes.TrimSpace(raw)
	if len(payload) > 0 && payload[0] == '{' {
		var env envelope
		if err := json.Unmarshal(payload, &env); err == nil && env.SchemaVersion != nil && env.Data != nil {
			if *env.SchemaVersion > SchemaVersion || *env.SchemaVersion < 0 {
				return fmt.Errorf("%w: unsupported schema version %d", ErrMalformed, *env.SchemaVersion)
			}
			payload = bytes.TrimSpace(env.Data)
		}
	}
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Document binds a key to a typed value with a default used whenever the
// stored value is missing or unreadable.
type Document[T any] struct {
	Key     string
	Default func() T
	Logger  *slog.Logger
}

// Load reads the document. Missing or malformed documents yield the default.
func (d Document[T]) Load(ctx context.Context, r Reader) (T, error) {
	raw, ok, err := r.Get(ctx, d.Key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("storage: load %s: %w", d.Key, err)
	}
	if !ok {
		return d.fallback(), nil
	}
	var value T
	if err := Decode(raw, &value); err != nil {
		d.logger().Warn("discarding unreadable document", slog.String("key", d.Key), slog.Any("error", err))
		return d.fallback(), nil
	}
	return value, nil
}

// Save replaces the whole document.
func (d Document[T]) Save(ctx context.Context, w Writer, value T) error {
	raw, err := Encode(value)
	if err != nil {
		return err
	}
	if err := w.Set(ctx, d.Key, raw); err != nil {
		return fmt.Errorf("storage: save %s: %w", d.Key, err)
	}
	return nil
}

// Remove deletes the document.
func (d Document[T]) Remove(ctx context.Context, w Writer) error {
	if err := w.Delete(ctx, d.Key); err != nil {
		return fmt.Errorf("storage: remove %s: %w", d.Key, err)
	}
	return nil
}

func (d Document[T]) fallback() T {
	if d.Default == nil {
		var zero T
		return zero
	}
	return d.Default()
}

func (d Document[T]) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
