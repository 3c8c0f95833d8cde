package ident

import (
	"fmt"
	"math/rand"
	"time"
)

// Source yields pseudo-random integers. *math/rand.Rand satisfies it,
// and tests can supply a deterministic implementation.
type Source interface {
	Intn(n int) int
}

const (
	maxStudentID = 999999
	maxSubjectID = 999

	minMark = 25
	maxMark = 100
)

// Generator allocates unique zero-padded numeric IDs and random marks.
type Generator struct {
	src Source
}

// New constructs a Generator. A nil source falls back to a time-seeded PRNG.
func New(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{src: src}
}

// StudentID samples a 6-digit ID not present in existing, retrying on
// collision. It fails only when the namespace is exhausted.
func (g *Generator) StudentID(existing map[string]struct{}) (string, error) {
	return g.generate(existing, maxStudentID, "%06d")
}

// SubjectID samples a 3-digit ID not present in existing.
func (g *Generator) SubjectID(existing map[string]struct{}) (string, error) {
	return g.generate(existing, maxSubjectID, "%03d")
}

// Mark returns a random mark in [25,100].
func (g *Generator) Mark() int {
	return minMark + g.src.Intn(maxMark-minMark+1)
}

// Pick returns a random index in [0,n). n must be positive.
func (g *Generator) Pick(n int) int {
	return g.src.Intn(n)
}

func (g *Generator) generate(existing map[string]struct{}, max int, format string) (string, error) {
	if len(existing) >= max {
		return "", fmt.Errorf("id namespace exhausted (%d values)", max)
	}
	for {
		id := fmt.Sprintf(format, g.src.Intn(max)+1)
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}
}
