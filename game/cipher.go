package game

import (
	"math"
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
)

const (
	// a ring locks when released within this many degrees of north
	cipherTolerance = 15.0
	cipherWinDelay  = 500 * time.Millisecond
)

var cipherRadii = []int{150, 110, 70}

type Ring struct {
	Radius   int     `json:"radius"`
	Rotation float64 `json:"rotation"`
	Locked   bool    `json:"locked"`
}

type CipherBoard struct {
	Rings []Ring `json:"rings"`
}

type cipher struct {
	*Machine
	rings []Ring
}

func newCipher(env Env) *cipher {
	return &cipher{Machine: newMachine(env)}
}

func (g *cipher) Kind() registry.Kind {
	return registry.RingCipher
}

func (g *cipher) Start() {
	g.rings = make([]Ring, len(cipherRadii))
	for i, r := range cipherRadii {
		g.rings[i] = Ring{Radius: r, Rotation: float64(g.rand().Intn(360))}
	}
}

func (g *cipher) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}

	switch in.Action {
	case protocol.Rotate:
		ring, err := g.ring(in.Index)
		if err != nil {
			return err
		}
		if !ring.Locked {
			ring.Rotation += in.Delta
		}
		return nil

	case protocol.Release:
		ring, err := g.ring(in.Index)
		if err != nil {
			return err
		}
		if ring.Locked {
			return nil
		}
		if aligned(ring.Rotation) {
			ring.Rotation = math.Round(ring.Rotation/360) * 360
			ring.Locked = true
			g.checkLocks()
		}
		return nil
	}

	return unknownAction(g.Kind(), in.Action)
}

func (g *cipher) ring(i int) (*Ring, error) {
	if i < 0 || i >= len(g.rings) {
		return nil, invalidInput(g.Kind(), "no ring %d", i)
	}
	return &g.rings[i], nil
}

func (g *cipher) checkLocks() {
	for _, r := range g.rings {
		if !r.Locked {
			return
		}
	}
	g.status = Correct
	g.winAfter(cipherWinDelay)
}

func (g *cipher) locked() int {
	n := 0
	for _, r := range g.rings {
		if r.Locked {
			n++
		}
	}
	return n
}

func aligned(rotation float64) bool {
	norm := math.Mod(rotation, 360)
	if norm < 0 {
		norm += 360
	}
	return norm < cipherTolerance || norm > 360-cipherTolerance
}

func (g *cipher) View() View {
	rings := make([]Ring, len(g.rings))
	copy(rings, g.rings)
	return g.view(g, g.locked(), len(g.rings), CipherBoard{Rings: rings})
}
