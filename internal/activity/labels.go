package activity

// Activity category indices. The cascade writes its leaf scores into these
// slots, so the order is part of the model contract.
const (
	Walking = iota
	Jogging
	Downstairs
	Upstairs
	Sitting
	Standing
	Sleeping

	NumCategories
)

// Sentinel strings surfaced to callers instead of an activity label.
const (
	SentinelDeviceOff   = "Device OFF"
	SentinelSensorError = "Sensor Error"
)

var labels = [NumCategories]string{
	Walking:    "Walking",
	Jogging:    "Jogging",
	Downstairs: "Downstairs",
	Upstairs:   "Upstairs",
	Sitting:    "Sitting",
	Standing:   "Standing",
	Sleeping:   "Sleeping",
}

// Label maps a category index to its display string.
// Out-of-range indices map to "Unknown".
func Label(category int) string {
	if category < 0 || category >= NumCategories {
		return "Unknown"
	}
	return labels[category]
}
