package domain

// SolverOutput is a per-model record in the clingo --outf=2 layout understood by
// visualization tools such as clingraph.
type SolverOutput struct {
	Solver string       `json:"Solver"`
	Input  []string     `json:"Input"`
	Call   []SolverCall `json:"Call"`
	Result string       `json:"Result"`
	Models ModelsInfo   `json:"Models"`
	Calls  int          `json:"Calls"`
	Time   TimeInfo     `json:"Time"`
}

// SolverCall groups the witnesses of one call.
type SolverCall struct {
	Witnesses []Witness `json:"Witnesses"`
}

// Witness holds the atoms of one model.
type Witness struct {
	Value []string `json:"Value"`
}

// ModelsInfo reports the model counter of a record.
type ModelsInfo struct {
	Number int    `json:"Number"`
	More   string `json:"More"`
}

// TimeInfo carries timing fields. They are never measured.
type TimeInfo struct {
	Total Placeholder `json:"Total"`
	Solve Placeholder `json:"Solve"`
	Model Placeholder `json:"Model"`
	Unsat Placeholder `json:"Unsat"`
	CPU   Placeholder `json:"CPU"`
}

// Placeholder is a timing value that always serializes as 0.000.
type Placeholder struct{}

// MarshalJSON implements json.Marshaler.
func (Placeholder) MarshalJSON() ([]byte, error) {
	return []byte("0.000"), nil
}

// UnmarshalJSON accepts any number.
func (*Placeholder) UnmarshalJSON([]byte) error {
	return nil
}

// NewSolverOutput wraps the atoms of a single model.
func NewSolverOutput(atoms []string) SolverOutput {
	if atoms == nil {
		atoms = []string{}
	}
	return SolverOutput{
		Solver: "",
		Input:  []string{""},
		Call:   []SolverCall{{Witnesses: []Witness{{Value: atoms}}}},
		Result: "SATISFIABLE",
		Models: ModelsInfo{Number: 1, More: "yes"},
		Calls:  1,
	}
}

// SieveReport summarises how evenly a sieve covered its target atoms.
type SieveReport struct {
	// Targets is n, the number of target atoms.
	Targets int `json:"targets"`
	// Models is the number of distinct models collected.
	Models int `json:"models"`
	// Frequency maps every target atom to the number of collected models containing it.
	Frequency map[string]int `json:"frequency"`
	// Population is the sum of all frequencies.
	Population int `json:"population"`
	// Entropy is the Shannon entropy of the frequency distribution in bits.
	Entropy float64 `json:"entropy"`
	// Diversity is the effective number of atoms, 2^Entropy.
	Diversity float64 `json:"diversity"`
	// Ratio is 1 - |n - Diversity| / n.
	Ratio float64 `json:"ratio"`
	// Coverage is the share of targets observed at least once.
	Coverage float64 `json:"coverage"`
	// Covered is false when the search stopped because a target was unreachable.
	Covered bool `json:"covered"`
}

// RelativeFrequency returns the share of collected models containing atom.
func (r *SieveReport) RelativeFrequency(atom string) float64 {
	if r.Models == 0 {
		return 0
	}
	return float64(r.Frequency[atom]) / float64(r.Models)
}
