package domain

// Route is a supported bridge corridor with its posted fee and latency.
type Route struct {
	ID       string
	SrcChain string
	DstChain string
	Token    string
	FeeBps   int
	Paused   bool
	P95Sec   int
}

// Validator is a member of the attestation set.
type Validator struct {
	ID     string
	Name   string
	Region string
	Quorum float64
	Missed float64
	Epoch  int
	Health string
}
