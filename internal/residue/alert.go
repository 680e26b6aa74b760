package residue

// EvaluateAlert computes the alert state for a quantity/threshold pair.
// The boundary is inclusive: a quantity exactly at the threshold is an alert.
// transitioned reports an inactive-to-active flip, which is the only
// transition that triggers a notification.
func EvaluateAlert(currentQuantity, threshold float64, previousActive bool) (active, transitioned bool) {
	active = currentQuantity >= threshold
	transitioned = !previousActive && active
	return active, transitioned
}
