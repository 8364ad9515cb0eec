package registry

import "fmt"

// Kind is the variant of game state machine a department is bound to
type Kind int

const (
	RingCipher Kind = iota
	MemorySequence
	ReflexGrid
	FallingCatch
	RhythmTimingLock
	OneMinutePitchBuilder
	ChaosOrganizer
	CreativeConstraintWriter
	VisualAnalysis
	SystemDecomposition
	SequenceOrdering
	RoleGuessing
	SpinStory
	TechChallenge
	PixelRunner
)

var KindNames = map[Kind]string{
	RingCipher:               "ring_cipher",
	MemorySequence:           "memory_sequence",
	ReflexGrid:               "reflex_grid",
	FallingCatch:             "falling_catch",
	RhythmTimingLock:         "rhythm_timing_lock",
	OneMinutePitchBuilder:    "one_minute_pitch",
	ChaosOrganizer:           "chaos_organizer",
	CreativeConstraintWriter: "creative_constraint",
	VisualAnalysis:           "visual_analysis",
	SystemDecomposition:      "system_decomposition",
	SequenceOrdering:         "sequence_ordering",
	RoleGuessing:             "role_guessing",
	SpinStory:                "spin_story",
	TechChallenge:            "tech_challenge",
	PixelRunner:              "pixel_runner",
}

var NameToKind = map[string]Kind{}

func init() {
	for k, name := range KindNames {
		NameToKind[name] = k
	}
}

// Kinds lists every kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(KindNames))
	for k := RingCipher; k <= PixelRunner; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	return KindNames[k]
}

// Valid reports whether k is one of the declared kinds
func (k Kind) Valid() bool {
	_, ok := KindNames[k]
	return ok
}

// ParseKind looks a kind up by its wire name
func ParseKind(name string) (Kind, error) {
	k, ok := NameToKind[name]
	if !ok {
		return 0, fmt.Errorf("unknown game kind %q", name)
	}
	return k, nil
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unknown game kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
