package feedback

// Outcome describes the result of a profile recomputation. None of these are
// errors: a user who has only clicked or down-voted keeps whatever profile
// existed before, and that must stay distinguishable from a failed update.
type Outcome string

const (
	// OutcomeUpdated means a new preference vector was computed and stored.
	OutcomeUpdated Outcome = "updated"
	// OutcomeNoChange means no like/save events exist in the window; the
	// previous profile (possibly none) is left untouched.
	OutcomeNoChange Outcome = "no_change"
	// OutcomeNoMaterial means qualifying events exist but none of their
	// documents resolve to an embedding anymore.
	OutcomeNoMaterial Outcome = "no_profile_material"
)
