// Package committer implements the Golden Mutation Pattern for Spanner transactions.
//
// Repositories return mutations instead of applying them, use cases collect
// those mutations (aggregate rows plus outbox events) into a CommitPlan, and
// the plan is applied atomically at the end:
//
//	plan := committer.NewPlan()
//	plan.Add(orderRepo.InsertMut(order))
//	plan.AddMultiple(orderRepo.LineMuts(order))
//	plan.Add(outboxRepo.InsertMut(event))
//	return applier.Apply(ctx, plan)
//
// When the plan depends on rows that must be re-read inside the transaction
// (stock levels, for example), ApplyGuarded runs a Guard first and buffers
// whatever mutations it returns alongside the plan.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations for the Golden Mutation Pattern.
// It collects mutations from multiple sources and applies them atomically.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// RowReader is the read side of a read-write transaction.
// *spanner.ReadWriteTransaction satisfies it.
type RowReader interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
}

// Guard validates rows inside the transaction before the plan is written.
// It may return extra mutations derived from what it read. Returning an
// error aborts the commit and the error is handed back to the caller unchanged.
type Guard func(ctx context.Context, r RowReader) ([]*spanner.Mutation, error)

// Applier applies commit plans. Use cases depend on this instead of *Committer.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
	ApplyGuarded(ctx context.Context, plan *CommitPlan, guard Guard) error
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

var _ Applier = (*Committer)(nil)

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// ApplyGuarded runs guard and then buffers the plan inside one read-write
// transaction. The guard may run more than once if Spanner retries the
// transaction, so it must not have side effects outside the transaction.
func (c *Committer) ApplyGuarded(ctx context.Context, plan *CommitPlan, guard Guard) error {
	if guard == nil {
		return c.Apply(ctx, plan)
	}

	var guardErr error
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		guardErr = nil
		extra, err := guard(ctx, txn)
		if err != nil {
			guardErr = err
			return err
		}

		muts := make([]*spanner.Mutation, 0, plan.Count()+len(extra))
		muts = append(muts, plan.Mutations()...)
		for _, m := range extra {
			if m != nil {
				muts = append(muts, m)
			}
		}
		if len(muts) == 0 {
			return nil
		}
		return txn.BufferWrite(muts)
	})
	if guardErr != nil {
		return guardErr
	}
	if err != nil {
		return fmt.Errorf("failed to apply guarded commit plan: %w", err)
	}

	return nil
}
