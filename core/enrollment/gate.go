package enrollment

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/klabu/core"
	"github.com/trezcool/klabu/core/program"
)

// Outcome is the result of an enrollment attempt.
type Outcome int

const (
	NotAttempted Outcome = iota
	Pending
	Succeeded
	RejectedDuplicate
	RejectedFull
	RejectedNetwork
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case RejectedDuplicate:
		return "already enrolled"
	case RejectedFull:
		return "program is full"
	case RejectedNetwork:
		return "request failed"
	}
	return "not attempted"
}

type (
	// Repository is the backend's enrollment surface.
	Repository interface {
		Enroll(ctx context.Context, programID int) error
		// QueryMyClasses is the only source of truth for the enrolled set and
		// for up-to-date counts after a mutation.
		QueryMyClasses(ctx context.Context) ([]program.Program, error)
	}

	// Gate decides locally whether an enroll attempt may proceed to the
	// backend, and folds the backend's answer back into the local set.
	// The backend stays the final arbiter of capacity; the gate only stops
	// requests that are known to be pointless.
	Gate struct {
		mu       sync.Mutex
		repo     Repository
		log      core.Logger
		enrolled map[int]struct{}
		inflight map[int]struct{}
	}
)

func NewGate(repo Repository, log core.Logger) *Gate {
	return &Gate{
		repo:     repo,
		log:      log,
		enrolled: make(map[int]struct{}),
		inflight: make(map[int]struct{}),
	}
}

// Refresh re-derives the local enrolled set from the backend and returns the
// fetched classes. Call it after any mutating call rather than trusting
// optimistic local edits.
func (g *Gate) Refresh(ctx context.Context) ([]program.Program, error) {
	classes, err := g.repo.QueryMyClasses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetching my classes")
	}
	set := make(map[int]struct{}, len(classes))
	for _, c := range classes {
		set[c.ID] = struct{}{}
	}
	g.mu.Lock()
	g.enrolled = set
	g.mu.Unlock()
	return classes, nil
}

// Enrolled reports whether the local set has the given program.
func (g *Gate) Enrolled(programID int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.enrolled[programID]
	return ok
}

// EnrolledIDs returns the local enrolled set, sorted.
func (g *Gate) EnrolledIDs() []int {
	g.mu.Lock()
	ids := make([]int, 0, len(g.enrolled))
	for id := range g.enrolled {
		ids = append(ids, id)
	}
	g.mu.Unlock()
	sort.Ints(ids)
	return ids
}

// Attempt runs the local pre-checks and, if they pass, issues the enroll
// mutation. Duplicate and capacity rejections never hit the network; the
// capacity check uses last-known counts and callers should confirm with a
// re-fetch before presenting it as final. A second attempt for a program
// whose request is still in flight reports Pending without sending anything.
// On failure local state is left unchanged and the attempt is retryable.
func (g *Gate) Attempt(ctx context.Context, p program.Program) Outcome {
	g.mu.Lock()
	if _, ok := g.enrolled[p.ID]; ok {
		g.mu.Unlock()
		return RejectedDuplicate
	}
	if p.IsFull() {
		g.mu.Unlock()
		return RejectedFull
	}
	if _, ok := g.inflight[p.ID]; ok {
		g.mu.Unlock()
		return Pending
	}
	g.inflight[p.ID] = struct{}{}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.inflight, p.ID)
		g.mu.Unlock()
	}()

	if err := g.repo.Enroll(ctx, p.ID); err != nil {
		// the backend resolved a capacity race against us
		if errors.Cause(err) == core.ErrConflict {
			return RejectedFull
		}
		g.log.Warn("enroll attempt failed", errors.Wrap(err, "enrolling"), map[string]interface{}{"classId": p.ID})
		return RejectedNetwork
	}

	g.mu.Lock()
	g.enrolled[p.ID] = struct{}{}
	g.mu.Unlock()
	return Succeeded
}
