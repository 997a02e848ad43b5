package activity

import (
	"testing"
)

func fixed(scores ...float64) Classifier {
	return ClassifierFunc(func(FeatureVector) []float64 { return scores })
}

// panicky marks a model that must not be consulted on the taken branch.
func panicky(name string) Classifier {
	return ClassifierFunc(func(FeatureVector) []float64 {
		panic("unexpected call to " + name)
	})
}

func TestClassify_SteadyBranch(t *testing.T) {
	c := NewCascade(Models{
		Motion:    fixed(5, 2),
		Steady:    fixed(1, 2, 3),
		Unsteady:  panicky("unsteady"),
		Staircase: panicky("staircase"),
		Surface:   panicky("surface"),
	})

	got := c.Classify(FeatureVector{})
	want := [NumCategories]float64{Sitting: 1, Standing: 2, Sleeping: 3}
	if got != want {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestClassify_MotionTieTakesSteadyBranch(t *testing.T) {
	c := NewCascade(Models{
		Motion:    fixed(1, 1),
		Steady:    fixed(7, 0, 0),
		Unsteady:  panicky("unsteady"),
		Staircase: panicky("staircase"),
		Surface:   panicky("surface"),
	})

	got := c.Classify(FeatureVector{})
	if got[Sitting] != 7 {
		t.Fatalf("got=%v want sitting=7", got)
	}
}

func TestClassify_StaircaseBranch(t *testing.T) {
	c := NewCascade(Models{
		Motion:    fixed(1, 2),
		Steady:    panicky("steady"),
		Unsteady:  fixed(3, 4),
		Staircase: fixed(5, 6),
		Surface:   panicky("surface"),
	})

	got := c.Classify(FeatureVector{})
	want := [NumCategories]float64{Downstairs: 5, Upstairs: 6}
	if got != want {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestClassify_UnsteadyTieTakesStaircaseBranch(t *testing.T) {
	c := NewCascade(Models{
		Motion:    fixed(0, 1),
		Steady:    panicky("steady"),
		Unsteady:  fixed(2, 2),
		Staircase: fixed(1, 0),
		Surface:   panicky("surface"),
	})

	got := c.Classify(FeatureVector{})
	if got[Downstairs] != 1 {
		t.Fatalf("got=%v want downstairs=1", got)
	}
}

func TestClassify_SurfaceBranch(t *testing.T) {
	c := NewCascade(Models{
		Motion:    fixed(0, 1),
		Steady:    panicky("steady"),
		Unsteady:  fixed(5, 4),
		Staircase: panicky("staircase"),
		Surface:   fixed(8, 9),
	})

	got := c.Classify(FeatureVector{})
	want := [NumCategories]float64{Walking: 8, Jogging: 9}
	if got != want {
		t.Fatalf("got=%v want=%v", got, want)
	}
}
