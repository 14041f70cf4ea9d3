// Package validation implements the constraint pipeline evaluated before an entity write is
// committed: struct field rules, existence of referenced rows, and uniqueness of a scalar
// within a parent scope.
package validation

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every *Error.
var ErrInvalid = errors.New("validation failed")

// Entity names a table guarded by the pipeline.
type Entity string

const (
	EntityFacility Entity = "facility"
	EntitySection  Entity = "section"
	EntityCategory Entity = "category"
	EntityDetail   Entity = "detail"
	EntityDaily    Entity = "daily"
)

// Error reports the field and value that failed a rule.
type Error struct {
	Entity  Entity
	Field   string
	Value   any
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s %v: %s", e.Entity, e.Field, e.Value, e.Message)
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Probe describes a uniqueness lookup: rows of Entity whose Field equals Value, restricted
// to ScopeField = ScopeID when ScopeField is set, excluding the row with ExcludeID.
type Probe struct {
	Entity     Entity
	Field      string
	Value      any
	ScopeField string
	ScopeID    int64
	ExcludeID  int64
}

// Store answers the lookups the rules issue. Implementations must run against the same
// transaction as the write being validated.
type Store interface {
	Exists(ctx context.Context, entity Entity, id int64) (bool, error)
	CountOthers(ctx context.Context, probe Probe) (int64, error)
}

// Rule is a single named predicate. Check returns nil, a *Error, or a store failure.
type Rule struct {
	Name  string
	Check func(ctx context.Context, store Store) error
}

// Pipeline runs rules in order and stops at the first failure.
type Pipeline []Rule

// Run evaluates the pipeline against store.
func (p Pipeline) Run(ctx context.Context, store Store) error {
	for _, rule := range p {
		if err := rule.Check(ctx, store); err != nil {
			var verr *Error
			if errors.As(err, &verr) {
				return err
			}
			return fmt.Errorf("rule %s: %w", rule.Name, err)
		}
	}
	return nil
}

// Exists requires that id references a live row of target. A zero id passes; presence is
// the job of the field rules.
func Exists(owner Entity, field string, target Entity, id int64) Rule {
	return Rule{
		Name: fmt.Sprintf("%s.%s exists", owner, field),
		Check: func(ctx context.Context, store Store) error {
			if id == 0 {
				return nil
			}
			ok, err := store.Exists(ctx, target, id)
			if err != nil {
				return err
			}
			if !ok {
				return &Error{Entity: owner, Field: field, Value: id, Message: fmt.Sprintf("references a missing %s", target)}
			}
			return nil
		},
	}
}

// Unique requires that no other row shares probe's value within its scope.
func Unique(probe Probe) Rule {
	name := fmt.Sprintf("%s.%s unique", probe.Entity, probe.Field)
	if probe.ScopeField != "" {
		name += " within " + probe.ScopeField
	}
	return Rule{
		Name: name,
		Check: func(ctx context.Context, store Store) error {
			count, err := store.CountOthers(ctx, probe)
			if err != nil {
				return err
			}
			if count > 0 {
				msg := "must be unique"
				if probe.ScopeField != "" {
					msg = fmt.Sprintf("must be unique within %s %d", probe.ScopeField, probe.ScopeID)
				}
				return &Error{Entity: probe.Entity, Field: probe.Field, Value: probe.Value, Message: msg}
			}
			return nil
		},
	}
}
