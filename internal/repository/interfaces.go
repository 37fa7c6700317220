package repository

import "context"

// Collection names in the remote store.
const (
	CollectionProjects = "projects"
	CollectionHabits   = "habits"
)

// Subscriber delivers change notifications for a collection. The returned
// channel fires, without payload, whenever any record in the collection is
// inserted, updated, or deleted by any client (including this one); receivers
// must re-fetch. Delivery is at-least-once and unordered relative to local
// writes. The channel is closed when ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, collection string) (<-chan struct{}, error)
}

// Refresher triggers a full reload of the in-memory snapshot. Mutators call it
// after every successful write so the snapshot reflects server truth.
type Refresher interface {
	Refresh(ctx context.Context) error
}
