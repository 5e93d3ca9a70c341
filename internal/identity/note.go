package identity

import (
	"regexp"
	"strconv"
	"strings"
)

// Chunk grammar. Everything is matched on lower case; the pattern pipeline
// normalizes chunks before they reach the extractor.
var (
	// noteRe matches letter note names: "c4", "a#3", "eb-1".
	noteRe = regexp.MustCompile(`^([a-g])([#b])?(-?\d+)$`)
	// dynRe matches dynamics markings: "pp", "mp", "mf", "ff", "v3",
	// "vl2", "vel1", "l1".
	dynRe = regexp.MustCompile(`^(?:p+|mp|mf|f+|v(?:el|l)?\d+|l\d+)$`)
	// numRe matches bare numeric note indices.
	numRe = regexp.MustCompile(`^\d+$`)
	// rrRe matches round robin discriminators: "rr1", "rr2".
	rrRe = regexp.MustCompile(`^rr(\d+)$`)

	trailingNum = regexp.MustCompile(`\d+$`)
)

// Semitone of each natural note within an octave.
var noteNames = map[string]int{
	"c": 0, "d": 2, "e": 4, "f": 5, "g": 7, "a": 9, "b": 11,
}

// parseNoteName converts a letter note name chunk into a note index, where
// c5 maps to index 60. Returns false when the chunk is not a note name.
func parseNoteName(chunk string) (int, bool) {
	m := noteRe.FindStringSubmatch(chunk)
	if m == nil {
		return 0, false
	}

	index := noteNames[m[1]]
	switch m[2] {
	case "#":
		index++
	case "b":
		index--
	}

	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, false
	}

	return index + octave*12, true
}

// dynamicValue orders dynamics markings from soft to loud: pp < p < mp < mf
// < f < ff. Numbered markings ("v1", "l2") order by their number.
func dynamicValue(chunk string) int {
	switch {
	case chunk == "mp":
		return 0
	case chunk == "mf":
		return 1
	case strings.HasPrefix(chunk, "p"):
		return -len(chunk)
	case strings.HasPrefix(chunk, "f"):
		return len(chunk) + 1
	}

	n, _ := strconv.Atoi(trailingNum.FindString(chunk))

	return n
}
