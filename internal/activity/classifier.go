package activity

// Classifier scores one feature vector. Implementations are pure and
// side-effect free from the caller's perspective: binary decision models
// return 2 scores, the steady leaf model returns 3.
type Classifier interface {
	Score(features FeatureVector) []float64
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(FeatureVector) []float64

func (f ClassifierFunc) Score(features FeatureVector) []float64 {
	return f(features)
}

// Models bundles the five scoring collaborators the cascade routes through.
// Swapping a trained model in means replacing one field; the routing logic
// never changes.
type Models struct {
	Motion    Classifier // steady vs unsteady, 2 scores
	Steady    Classifier // sitting/standing/sleeping, 3 scores
	Unsteady  Classifier // staircase vs surface, 2 scores
	Staircase Classifier // downstairs/upstairs, 2 scores
	Surface   Classifier // walking/jogging, 2 scores
}
