package build

// Shell is a contiguous range of Chebyshev strata that qualify for a stage.
// Max < 0 means unbounded (the "3, 4, ..." outer shell).
type Shell struct {
	Min int
	Max int
}

// Contains reports whether stratum falls within the shell.
func (s Shell) Contains(stratum int) bool {
	return stratum >= s.Min && (s.Max < 0 || stratum <= s.Max)
}

// Overlaps reports whether two shells share any stratum, used by option
// validation to reject overlapping stage policies (§7 ConfigError).
func (s Shell) Overlaps(o Shell) bool {
	if s.Max >= 0 && o.Min > s.Max {
		return false
	}
	if o.Max >= 0 && s.Min > o.Max {
		return false
	}
	return true
}

// StagePolicy is one declared stage (L_i, R_i, alpha_i, shell_i): the
// beam-search list size used to collect the stage's candidates, the edge
// budget committed from it, the alpha-prune parameter, and the set of
// Chebyshev strata it draws from.
type StagePolicy struct {
	L     int
	R     int
	Alpha float64
	Shell Shell
}

// DefaultStagePolicy2D returns the shipped 2D defaults: shells of Chebyshev
// radius 1, 2, 3+, per-stage edge budget 3, list sizes 90/160/240, alpha 1.2
// for every stage (§4.6, scenario S1).
func DefaultStagePolicy2D() []StagePolicy {
	return []StagePolicy{
		{L: 90, R: 3, Alpha: 1.2, Shell: Shell{Min: 0, Max: 1}},
		{L: 160, R: 3, Alpha: 1.2, Shell: Shell{Min: 2, Max: 2}},
		{L: 240, R: 3, Alpha: 1.2, Shell: Shell{Min: 3, Max: -1}},
	}
}

// DefaultStagePolicy3D returns the shipped 3D defaults: the same shell
// structure as the 2D defaults, with per-stage edge budgets 10/10/5
// (§4.6, scenario S2). List sizes are not enumerated in the source this
// spec was distilled from; this preset uses 120/200/300, somewhat larger
// than the 2D list sizes, and they are exposed as ordinary configuration so
// callers are never stuck with this choice.
func DefaultStagePolicy3D() []StagePolicy {
	return []StagePolicy{
		{L: 120, R: 10, Alpha: 1.2, Shell: Shell{Min: 0, Max: 1}},
		{L: 200, R: 10, Alpha: 1.2, Shell: Shell{Min: 2, Max: 2}},
		{L: 300, R: 5, Alpha: 1.2, Shell: Shell{Min: 3, Max: -1}},
	}
}
