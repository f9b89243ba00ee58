package allocator

// MatchStatus classifies how well a pupil's roommates match their choices
type MatchStatus string

const (
	// StatusMutual means at least one roommate was chosen by the pupil and chose them back
	StatusMutual MatchStatus = "MUTUAL_OK"
	// StatusOneWay means the pupil chose a roommate who did not choose them back
	StatusOneWay MatchStatus = "ONE_WAY_OK"
	// StatusNoMatch means none of the pupil's roommates were on their list
	StatusNoMatch MatchStatus = "NO_MATCH"
)

// PupilEvaluation is the evaluation of a single pupil
type PupilEvaluation struct {
	Pupil string

	// Room is the index of the pupil's room in the allocation, -1 if unplaced
	Room int

	Status      MatchStatus
	MutualCount int
	OneWayCount int

	// BestRank is the best (lowest) rank on the pupil's list held by any roommate, 0 if none.
	// Reported only; scoring treats lists as sets.
	BestRank int
}

// Evaluation holds one row per pupil, in preference insertion order
type Evaluation []PupilEvaluation

// StatusCounts totals pupils per status
type StatusCounts struct {
	Mutual  int
	OneWay  int
	NoMatch int
}

// Evaluate classifies every pupil in prefs against the given allocation.
// Cost is proportional to the size of each pupil's room.
func Evaluate(prefs *Preferences, alloc Allocation) Evaluation {
	roomOf := alloc.RoomIndex()

	eval := make(Evaluation, 0, prefs.Len())
	for _, p := range prefs.Names() {
		row := PupilEvaluation{Pupil: p, Room: -1, Status: StatusNoMatch}

		idx, placed := roomOf[p]
		if placed {
			row.Room = idx
			for _, mate := range alloc[idx].Members {
				if mate == p {
					continue
				}
				rank := prefs.Rank(p, mate)
				if rank == 0 {
					continue
				}
				if prefs.Lists(mate, p) {
					row.MutualCount++
				} else {
					row.OneWayCount++
				}
				if row.BestRank == 0 || rank < row.BestRank {
					row.BestRank = rank
				}
			}
		}

		switch {
		case row.MutualCount >= 1:
			row.Status = StatusMutual
		case row.OneWayCount >= 1:
			row.Status = StatusOneWay
		}

		eval = append(eval, row)
	}
	return eval
}

// Counts totals the evaluation per status
func (e Evaluation) Counts() StatusCounts {
	var counts StatusCounts
	for _, row := range e {
		switch row.Status {
		case StatusMutual:
			counts.Mutual++
		case StatusOneWay:
			counts.OneWay++
		default:
			counts.NoMatch++
		}
	}
	return counts
}

// NoMatch returns the unmatched pupils, in evaluation order
func (e Evaluation) NoMatch() []PupilEvaluation {
	var rows []PupilEvaluation
	for _, row := range e {
		if row.Status == StatusNoMatch {
			rows = append(rows, row)
		}
	}
	return rows
}

// Lookup returns the evaluation row for a pupil
func (e Evaluation) Lookup(pupil string) (PupilEvaluation, bool) {
	for _, row := range e {
		if row.Pupil == pupil {
			return row, true
		}
	}
	return PupilEvaluation{}, false
}
