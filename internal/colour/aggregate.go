package colour

// Aggregate combines per-colour verdicts into a palette verdict.
//
// More than two happy colours forming a majority (n/2, integer division)
// make the palette happy. Otherwise a single happy colour is enough, so a
// small palette is only sad when every colour is sad.
func Aggregate(verdicts []bool) bool {
	happy := 0
	for _, v := range verdicts {
		if v {
			happy++
		}
	}

	half := len(verdicts) / 2
	if happy > 2 && happy > half {
		return happy > half
	}
	return happy > 0
}
