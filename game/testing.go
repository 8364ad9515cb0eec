package game

// ScriptedRand replays fixed draws. Intn and Float64 step through their
// scripts and repeat the last value once a script runs out; an empty script
// draws zero. Shuffle leaves the order alone unless ReverseShuffle is set.
type ScriptedRand struct {
	Ints           []int
	Floats         []float64
	ReverseShuffle bool

	ints, floats int
}

func (r *ScriptedRand) Intn(n int) int {
	if len(r.Ints) == 0 || n <= 0 {
		return 0
	}
	v := r.Ints[len(r.Ints)-1]
	if r.ints < len(r.Ints) {
		v = r.Ints[r.ints]
		r.ints++
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func (r *ScriptedRand) Float64() float64 {
	if len(r.Floats) == 0 {
		return 0
	}
	if r.floats < len(r.Floats) {
		v := r.Floats[r.floats]
		r.floats++
		return v
	}
	return r.Floats[len(r.Floats)-1]
}

func (r *ScriptedRand) Shuffle(n int, swap func(i, j int)) {
	if !r.ReverseShuffle {
		return
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}
