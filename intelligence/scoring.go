package intelligence

import "math"

// ParticipationScore derives a citizen's 0-10 score from their submitted and
// verified counters. Pure and idempotent: safe to recompute on every pass.
func ParticipationScore(submitted, verified int) float64 {
	if submitted == 0 {
		return 0
	}

	verificationRate := float64(verified) / float64(submitted) * 5
	activityBonus := math.Min(float64(submitted)/20, 3)
	score := math.Min(verificationRate+activityBonus+2, 10)

	return math.Round(score*10) / 10
}

// OfficerEfficiency derives a 0-100 completion rate from task counters.
func OfficerEfficiency(assigned, completed int) float64 {
	if assigned == 0 {
		return 0
	}
	return math.Round(float64(completed) / float64(assigned) * 100)
}
