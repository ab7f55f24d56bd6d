package session

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrValidation wraps pre-flight validation failures. No remote call was
// made and no state changed when a coordinator error matches it.
var ErrValidation = errors.New("validation failed")

// Mutation describes exactly one entity create/update/delete.
//
// Validate runs first and short-circuits the remote call on failure. Kind
// and OwnerID feed the capability gate. Remote performs the store call; on
// success it is expected to have merged any server-assigned identity and
// timestamps into whatever Apply closes over. Apply reconciles the cached
// snapshot and runs only after Remote succeeds, so a failed mutation leaves
// the snapshot at its pre-mutation value.
type Mutation struct {
	Kind     EntityKind
	OwnerID  primitive.ObjectID
	Validate func() error
	Remote   func(ctx context.Context) error
	Apply    func(*Snapshot)
}

// Coordinator executes mutations against the remote store and keeps the
// gate's snapshot equal to the last-known-good remote state. It does not
// queue or coalesce concurrent mutations to the same entity; callers
// serialize those, and the remote store decides last-write-wins races.
type Coordinator struct {
	gate *Gate
}

// NewCoordinator returns a coordinator bound to one session gate.
func NewCoordinator(gate *Gate) *Coordinator {
	return &Coordinator{gate: gate}
}

// Create runs a single entity creation.
func (c *Coordinator) Create(ctx context.Context, m Mutation) error {
	return c.run(ctx, m)
}

// Update runs a single partial-field update. Apply must patch only the
// fields the mutation sent, leaving concurrently-changed fields alone.
func (c *Coordinator) Update(ctx context.Context, m Mutation) error {
	return c.run(ctx, m)
}

// Delete runs a single removal by identity.
func (c *Coordinator) Delete(ctx context.Context, m Mutation) error {
	return c.run(ctx, m)
}

func (c *Coordinator) run(ctx context.Context, m Mutation) error {
	if m.Validate != nil {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	actor, err := c.gate.Profile()
	if err != nil {
		return err
	}
	if err := Allow(actor, m.Kind, m.OwnerID); err != nil {
		return err
	}

	if err := m.Remote(ctx); err != nil {
		// Snapshot untouched; the failure surfaces once, to the caller.
		return err
	}

	if m.Apply != nil {
		c.gate.reconcile(m.OwnerID, m.Apply)
	}
	return nil
}
