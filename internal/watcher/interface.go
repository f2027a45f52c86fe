package watcher

import "context"

// Watcher monitors a single file and reports changes to it.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// ReloadHandler is called once a burst of changes to the watched file settles.
type ReloadHandler func(ctx context.Context, filePath string) error
