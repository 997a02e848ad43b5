package activity

// Cascade routes a feature vector through up to three binary decision points
// and places the winning leaf model's scores into the 7-slot category vector.
// Slots not covered by the chosen leaf stay zero.
type Cascade struct {
	models Models
}

// NewCascade builds a cascade over the given model set.
func NewCascade(models Models) *Cascade {
	return &Cascade{models: models}
}

// Classify produces the per-sample category scores.
//
// Tie behavior at the decision points is fixed: an equal motion score takes
// the steady branch, an equal unsteady score takes the staircase branch.
func (c *Cascade) Classify(features FeatureVector) [NumCategories]float64 {
	var score [NumCategories]float64

	motion := c.models.Motion.Score(features)
	if motion[0] >= motion[1] {
		steady := c.models.Steady.Score(features)
		score[Sitting] = steady[0]
		score[Standing] = steady[1]
		score[Sleeping] = steady[2]
		return score
	}

	unsteady := c.models.Unsteady.Score(features)
	if unsteady[0] <= unsteady[1] {
		staircase := c.models.Staircase.Score(features)
		score[Downstairs] = staircase[0]
		score[Upstairs] = staircase[1]
		return score
	}

	surface := c.models.Surface.Score(features)
	score[Walking] = surface[0]
	score[Jogging] = surface[1]
	return score
}
