// Package dataloader provides generic batching utilities for loading
// records, typically behind GraphQL resolvers.
//
// The helpers work with any DataLoader implementation, such as
// github.com/graph-gophers/dataloader/v7 or
// github.com/vikstrous/dataloadgen.
//
// # Basic Usage
//
// Define a batch function over a generated selection:
//
//	func userBatchFn(ctx context.Context, ids []int64) ([]*model.User, []error) {
//	    users, err := model.User{}.Select(drv).Where(user.IDField.In(ids...)).All(ctx)
//	    if err != nil {
//	        return nil, []error{err}
//	    }
//	    return dataloader.OrderByKeys(ids, users, func(u *model.User) int64 { return u.ID })
//	}
//
// # With graph-gophers/dataloader
//
//	loader := dataloader.NewBatchedLoader(userBatchFn)
//	user, err := loader.Load(ctx, userID)()
//
// # Key Extraction
//
// Use KeyFunc to extract keys from loaded records:
//
//	keyFn := func(u *model.User) int64 { return u.ID }
//	ordered := dataloader.OrderByKeys(ids, users, keyFn)
package dataloader

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record is not found in a batch result.
var ErrNotFound = errors.New("dataloader: record not found")

// KeyFunc extracts a key from a record.
type KeyFunc[K comparable, V any] func(V) K

// BatchFunc is a function that loads a batch of records by their keys.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, []error)

// OrderByKeys reorders records to match the order of requested keys.
// Missing records are represented as zero values with corresponding errors.
//
// This is essential for DataLoader because the result slice must:
//   - Have the same length as the input keys
//   - Have results in the same order as the input keys
//
// Example:
//
//	users, _ := model.User{}.Select(drv).Where(user.IDField.In(ids...)).All(ctx)
//	ordered, errs := OrderByKeys(ids, users, func(u *model.User) int64 { return u.ID })
func OrderByKeys[K comparable, V any](keys []K, values []V, keyFn KeyFunc[K, V]) ([]V, []error) {
	// Build lookup map
	lookup := make(map[K]V, len(values))
	for _, v := range values {
		lookup[keyFn(v)] = v
	}

	// Build ordered result
	result := make([]V, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		if v, ok := lookup[key]; ok {
			result[i] = v
		} else {
			errs[i] = ErrNotFound
		}
	}
	return result, errs
}

// OrderByKeysNoError reorders records to match the order of requested keys.
// Returns zero values for missing records without errors.
// Use this when missing records are acceptable (e.g., optional references).
func OrderByKeysNoError[K comparable, V any](keys []K, values []V, keyFn KeyFunc[K, V]) []V {
	result, _ := OrderByKeys(keys, values, keyFn)
	return result
}

// GroupByKey groups records by a key function.
// Useful for one-to-many references where multiple records share the same foreign key.
//
// Example:
//
//	// Load all posts for multiple users
//	posts, _ := model.Post{}.Select(drv).Where(post.UserIDField.In(userIDs...)).All(ctx)
//	grouped := GroupByKey(posts, func(p *model.Post) int64 { return p.UserID })
//	// grouped[userID] contains all posts for that user
func GroupByKey[K comparable, V any](values []V, keyFn KeyFunc[K, V]) map[K][]V {
	result := make(map[K][]V)
	for _, v := range values {
		key := keyFn(v)
		result[key] = append(result[key], v)
	}
	return result
}

// OrderGroupsByKeys reorders grouped records to match the order of requested keys.
// Returns a slice of slices where each inner slice contains records for that key.
//
// Example:
//
//	posts, _ := model.Post{}.Select(drv).Where(post.UserIDField.In(userIDs...)).All(ctx)
//	grouped := GroupByKey(posts, func(p *model.Post) int64 { return p.UserID })
//	ordered := OrderGroupsByKeys(userIDs, grouped)
//	// ordered[i] contains all posts for userIDs[i]
func OrderGroupsByKeys[K comparable, V any](keys []K, groups map[K][]V) [][]V {
	result := make([][]V, len(keys))
	for i, key := range keys {
		result[i] = groups[key]
	}
	return result
}

// PrimeCache primes a DataLoader cache with known values.
// This is useful after mutations to update the cache.
type CachePrimer[K comparable, V any] interface {
	Prime(key K, value V)
}

// PrimeMany primes multiple values into a cache.
func PrimeMany[K comparable, V any](cache CachePrimer[K, V], values []V, keyFn KeyFunc[K, V]) {
	for _, v := range values {
		cache.Prime(keyFn(v), v)
	}
}

// CacheClearer clears values from a DataLoader cache.
type CacheClearer[K comparable] interface {
	Clear(key K)
}

// ClearMany clears multiple keys from a cache.
func ClearMany[K comparable](cache CacheClearer[K], keys []K) {
	for _, key := range keys {
		cache.Clear(key)
	}
}

// ctxKey is the context key for storing DataLoaders.
type ctxKey struct{}

// WithLoaders injects DataLoaders into the context.
// This is useful for GraphQL resolvers or any context-based request handling.
//
// Example:
//
//	ctx := dataloader.WithLoaders(ctx, &Loaders{
//	    UserLoader: NewUserLoader(drv),
//	    PostLoader: NewPostLoader(drv),
//	})
//
// For HTTP middleware integration (chi, gorilla/mux, net/http):
//
//	func DataLoaderMiddleware(drv dialect.Driver) func(http.Handler) http.Handler {
//	    return func(next http.Handler) http.Handler {
//	        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	            loaders := &Loaders{
//	                UserLoader: NewUserLoader(drv),
//	                PostLoader: NewPostLoader(drv),
//	            }
//	            ctx := dataloader.WithLoaders(r.Context(), loaders)
//	            next.ServeHTTP(w, r.WithContext(ctx))
//	        })
//	    }
//	}
func WithLoaders[T any](ctx context.Context, loaders T) context.Context {
	return context.WithValue(ctx, ctxKey{}, loaders)
}

// For extracts DataLoaders from context.
//
// Example:
//
//	loaders := dataloader.For[*Loaders](ctx)
//	user, err := loaders.UserLoader.Load(ctx, userID)()
func For[T any](ctx context.Context) T {
	v, _ := ctx.Value(ctxKey{}).(T)
	return v
}

// BatchResult represents the result of a batch load operation.
type BatchResult[V any] struct {
	Value V
	Error error
}

// NewBatchResult creates a new BatchResult.
func NewBatchResult[V any](value V, err error) BatchResult[V] {
	return BatchResult[V]{Value: value, Error: err}
}

// Results converts separate value and error slices into BatchResult slice.
func Results[V any](values []V, errs []error) []BatchResult[V] {
	results := make([]BatchResult[V], len(values))
	for i := range values {
		var err error
		if i < len(errs) {
			err = errs[i]
		}
		results[i] = BatchResult[V]{Value: values[i], Error: err}
	}
	return results
}
