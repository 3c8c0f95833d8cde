package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeForMarkBoundaries(t *testing.T) {
	cases := []struct {
		mark int
		want Grade
	}{
		{0, GradeZ},
		{25, GradeZ},
		{49, GradeZ},
		{50, GradeP},
		{64, GradeP},
		{65, GradeC},
		{74, GradeC},
		{75, GradeD},
		{84, GradeD},
		{85, GradeHD},
		{100, GradeHD},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, GradeForMark(tc.mark), "mark %d", tc.mark)
	}
}

func TestGradeForMarkFullRanges(t *testing.T) {
	for m := 0; m <= 49; m++ {
		assert.Equal(t, GradeZ, GradeForMark(m))
	}
	for m := 50; m <= 64; m++ {
		assert.Equal(t, GradeP, GradeForMark(m))
	}
	for m := 65; m <= 74; m++ {
		assert.Equal(t, GradeC, GradeForMark(m))
	}
	for m := 75; m <= 84; m++ {
		assert.Equal(t, GradeD, GradeForMark(m))
	}
	for m := 85; m <= 100; m++ {
		assert.Equal(t, GradeHD, GradeForMark(m))
	}
}

func TestGradeForMarkClampsOutOfRange(t *testing.T) {
	assert.Equal(t, GradeZ, GradeForMark(-10))
	assert.Equal(t, GradeHD, GradeForMark(150))
}
