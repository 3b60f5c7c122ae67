package store

import (
	"context"
	"encoding/json"
)

// ReadJSON reads key and decodes it into a T.
// Missing keys return ErrNotFound; undecodable values return a *StoreError.
func ReadJSON[T any](ctx context.Context, kv KeyValueStore, key string) (T, error) {
	var out T
	data, err := kv.Read(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, NewStoreError(key, "read", "failed to decode value", err)
	}
	return out, nil
}

// WriteJSON encodes v and writes it under key.
func WriteJSON(ctx context.Context, kv KeyValueStore, key string, v any) error {
	data, err := Marshal(key, v)
	if err != nil {
		return err
	}
	return kv.Write(ctx, key, data)
}

// Marshal encodes v for key, for use in batch entries.
func Marshal(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, NewStoreError(key, "write", "failed to encode value", err)
	}
	return data, nil
}

// JSONEntry builds a batch entry by encoding v.
func JSONEntry(key string, v any) (Entry, error) {
	data, err := Marshal(key, v)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Key: key, Value: data}, nil
}

// ValidateKey rejects empty keys.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}
