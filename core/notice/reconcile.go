package notice

import "github.com/trezcool/klabu/core/program"

// Resolution describes how a notice's program was (or was not) identified.
type Resolution int

const (
	// Resolved: exactly one program carried the notice's class title.
	Resolved Resolution = iota
	// Unresolved: no program matched; ClassID is 0.
	Unresolved
	// Ambiguous: several programs share the title. The first one in program
	// list order is kept so the output stays deterministic, but callers must
	// not treat the pick as truth.
	Ambiguous
)

func (r Resolution) String() string {
	switch r {
	case Unresolved:
		return "unresolved"
	case Ambiguous:
		return "ambiguous"
	}
	return "resolved"
}

// Reconciled is a Notice augmented with the program id re-derived from the
// program list.
type Reconciled struct {
	Notice
	ClassID    int // 0 when Unresolved
	Resolution Resolution
}

// Reconcile joins notices to programs by exact, case-sensitive title
// equality; the backend returns no stable foreign key for notices. The join
// tolerates a stale program list: unmatched notices come back Unresolved
// rather than erroring, and the caller simply re-runs when the list updates.
func Reconcile(notices []Notice, programs []program.Program) []Reconciled {
	out := make([]Reconciled, 0, len(notices))
	for _, n := range notices {
		rec := Reconciled{Notice: n, Resolution: Unresolved}
		for _, p := range programs {
			if p.Title != n.ClassTitle {
				continue
			}
			if rec.Resolution == Unresolved {
				rec.ClassID = p.ID
				rec.Resolution = Resolved
			} else {
				rec.Resolution = Ambiguous
				break
			}
		}
		out = append(out, rec)
	}
	return out
}
