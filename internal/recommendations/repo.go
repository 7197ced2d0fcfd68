package recommendations

import "context"

// Repo persists generated recommendation sets.
type Repo interface {
	Insert(ctx context.Context, rec Record) error
}
