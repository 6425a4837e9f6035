package normalize

// Interaction direction values (spec §3 Interaction: "direction ∈ {AtoB,
// BtoA, bidirectional}").
const (
	DirectionAToB        = "a_to_b"
	DirectionBToA        = "b_to_a"
	DirectionBidirectional = "bidirectional"
)
