// Package scheduling holds the pure pieces of the booking core: the
// interval overlap rule, the conflict suggestion engine, and the approval
// policy. It performs no I/O; the repository layer applies the same overlap
// rule in SQL when it re-checks inside a transaction.
package scheduling

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Production conflict detection runs in SQL so it
// happens under the repository's transaction locks; this function is the
// executable reference for those clauses (roomConflictQuery and
// participantConflictQuery in internal/repository/postgres) and must stay in
// sync with them:
//
//	b.start <= a.start && b.end > a.start  (a starts inside b)
//	b.start < a.end    && b.end >= a.end   (a ends inside b)
//	b.start >= a.start && b.end <= a.end   (b fully inside a)
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !bStart.After(aStart) && bEnd.After(aStart) {
		return true
	}
	if bStart.Before(aEnd) && !bEnd.Before(aEnd) {
		return true
	}
	if !bStart.Before(aStart) && !bEnd.After(aEnd) {
		return true
	}
	return false
}
