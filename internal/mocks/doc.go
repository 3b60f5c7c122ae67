// Package mocks provides shared test doubles.
//
// Mocks expose function fields for each interface method; when a field is
// nil the mock falls back to a default behaviour documented on the type.
//
//	kv := &mocks.MockKeyValueStore{
//	    WriteFn: func(ctx context.Context, key string, value []byte) error {
//	        return errors.New("disk full")
//	    },
//	}
package mocks
