package bot

// BotTuning holds the scoring knobs for the projection-based tiers.
type BotTuning struct {
	// OvershootPenalty multiplies every point past the target when the
	// advanced tier values an overshooting move.
	OvershootPenalty int

	// WinValue is assigned to any move whose projection reaches the target.
	WinValue int

	// NearTargetBonus is added when a projection lands at NearTargetFloor
	// or above; CloseTargetBonus likewise for CloseTargetFloor. The two
	// bonuses stack.
	NearTargetFloor  int
	NearTargetBonus  int
	CloseTargetFloor int
	CloseTargetBonus int
}

// DefaultTuning reproduces the tier balance the game shipped with.
var DefaultTuning = BotTuning{
	OvershootPenalty: 2,
	WinValue:         1000,
	NearTargetFloor:  40,
	NearTargetBonus:  50,
	CloseTargetFloor: 35,
	CloseTargetBonus: 25,
}
