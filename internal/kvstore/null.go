package kvstore

import "context"

// Null is a Store whose reads always miss and whose writes are dropped. It is
// used when no durable slot is available.
type Null struct{}

// Get implements Store.
func (Null) Get(context.Context, string) (string, bool, error) { return "", false, nil }

// Set implements Store.
func (Null) Set(context.Context, string, string) error { return nil }

// Delete implements Store.
func (Null) Delete(context.Context, string) error { return nil }
