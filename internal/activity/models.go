package activity

import (
	"math"
)

// Baseline threshold models. These are rough, hand-tuned stand-ins that keep
// the device useful until trained models are dropped in; anything that
// implements Classifier can replace them field by field.

const (
	// Gyro energy (deg/s, vector magnitude) separating steady postures from
	// locomotion.
	motionEnergyThreshold = 30.0

	// Gyro energy above which surface locomotion counts as jogging.
	jogEnergyThreshold = 150.0
)

func gyroEnergy(f FeatureVector) float64 {
	gx, gy, gz := f[6], f[7], f[8]
	return math.Sqrt(gx*gx + gy*gy + gz*gz)
}

// DefaultModels returns the baseline model set.
func DefaultModels() Models {
	return Models{
		Motion:    ClassifierFunc(scoreMotion),
		Steady:    ClassifierFunc(scoreSteady),
		Unsteady:  ClassifierFunc(scoreUnsteady),
		Staircase: ClassifierFunc(scoreStaircase),
		Surface:   ClassifierFunc(scoreSurface),
	}
}

// scoreMotion: steady wins when rotation energy stays under the threshold.
func scoreMotion(f FeatureVector) []float64 {
	return []float64{motionEnergyThreshold, gyroEnergy(f)}
}

// scoreSteady separates sitting/standing/sleeping by how gravity projects
// onto the sensor axes: upright trunk puts gravity on +Z, lying flat puts it
// on X/Y, sitting lands in between.
func scoreSteady(f FeatureVector) []float64 {
	gz := math.Abs(f[5])
	sitting := 1.0 - math.Abs(gz-0.6)
	standing := gz
	sleeping := 1.0 - gz
	return []float64{sitting, standing, sleeping}
}

// scoreUnsteady: pitched-forward gait suggests stairs; score[0] <= score[1]
// routes to the staircase leaf.
func scoreUnsteady(f FeatureVector) []float64 {
	stair := math.Abs(f[1]) / 90.0
	return []float64{1.0 - stair, stair}
}

// scoreStaircase splits by pitch sign: climbing pitches up, descending down.
func scoreStaircase(f FeatureVector) []float64 {
	pitch := f[1]
	return []float64{math.Max(-pitch, 0) / 90.0, math.Max(pitch, 0) / 90.0}
}

// scoreSurface splits walking from jogging on rotation energy.
func scoreSurface(f FeatureVector) []float64 {
	return []float64{jogEnergyThreshold, gyroEnergy(f)}
}
