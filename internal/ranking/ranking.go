// Package ranking maintains dense integer ranks for ordered containers: a
// board's columns and a column's cards. Ranks always form the contiguous
// sequence 1..n per container after a successful operation.
//
// The storage layer enforces uniqueness on (container, rank), so sibling
// ranks can never be rewritten naively in final order: swapping two adjacent
// items would transiently collide. Every renumbering therefore happens in two
// phases: first every affected item is parked on a distinct out-of-range
// sentinel rank, then each is written to its final value. Callers are
// expected to run each operation inside a single storage transaction so a
// mid-sequence failure rolls back both phases.
package ranking

import "context"

// BaseRank is the rank of the first item in a container.
const BaseRank = 1

// displacedBase is far below any real rank; phase one parks item i of the
// target list at displacedBase-i so the sentinels are mutually distinct.
const displacedBase = -100000

// Store is the persistence surface the ranker drives. Implementations scope
// SiblingIDs to one container and must honor the transaction carried by ctx.
type Store interface {
	// SiblingIDs returns the ids of the container's items in rank order.
	SiblingIDs(ctx context.Context, containerID string) ([]string, error)
	// SetRank rewrites one item's rank.
	SetRank(ctx context.Context, itemID string, rank int) error
	// Relocate moves an item to another container at the given rank.
	Relocate(ctx context.Context, itemID, containerID string, rank int) error
}

// Ranker applies reordering operations through a Store.
type Ranker struct {
	store Store
}

func NewRanker(store Store) *Ranker {
	return &Ranker{store: store}
}

// Reassign rewrites every item's rank to match its position in ids
// (BaseRank-based). ids must already be in the desired final order.
func (r *Ranker) Reassign(ctx context.Context, ids []string) error {
	// Phase 1: park every item on a distinct sentinel so no final write can
	// collide with a rank still held by a not-yet-updated sibling.
	for i, id := range ids {
		if err := r.store.SetRank(ctx, id, displacedBase-i); err != nil {
			return err
		}
	}
	// Phase 2: settle on the real ranks.
	for i, id := range ids {
		if err := r.store.SetRank(ctx, id, BaseRank+i); err != nil {
			return err
		}
	}
	return nil
}

// Move reorders one item within its container to the given index. Indices
// outside [0, n-1] are clamped, not rejected.
func (r *Ranker) Move(ctx context.Context, containerID, itemID string, toIndex int) error {
	ids, err := r.store.SiblingIDs(ctx, containerID)
	if err != nil {
		return err
	}
	ids = removeID(ids, itemID)
	ids = insertAt(ids, itemID, toIndex)
	return r.Reassign(ctx, ids)
}

// MoveAcross relocates an item from one container to another at the given
// index, renumbering both sides. If the containers are the same it reduces to
// Move. The caller has already verified both containers exist and share a
// board.
func (r *Ranker) MoveAcross(ctx context.Context, fromID, toID, itemID string, toIndex int) error {
	if fromID == toID {
		return r.Move(ctx, fromID, itemID, toIndex)
	}

	fromIDs, err := r.store.SiblingIDs(ctx, fromID)
	if err != nil {
		return err
	}
	toIDs, err := r.store.SiblingIDs(ctx, toID)
	if err != nil {
		return err
	}

	fromIDs = removeID(fromIDs, itemID)
	toIDs = removeID(toIDs, itemID)
	toIDs = insertAt(toIDs, itemID, toIndex)

	// Point the item at the destination first, parked on a sentinel rank.
	// Reassign's first phase writes displacedBase-0 .. displacedBase-(n-1)
	// for the destination, so the parking spot sits just below that range.
	if err := r.store.Relocate(ctx, itemID, toID, displacedBase-len(toIDs)); err != nil {
		return err
	}

	if err := r.Reassign(ctx, toIDs); err != nil {
		return err
	}
	return r.Reassign(ctx, fromIDs)
}

// Compact renumbers a container's remaining items 1..n after a deletion,
// closing the gap left by the removed rank.
func (r *Ranker) Compact(ctx context.Context, containerID string) error {
	ids, err := r.store.SiblingIDs(ctx, containerID)
	if err != nil {
		return err
	}
	return r.Reassign(ctx, ids)
}
