package objective

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputeDiffDeletesUnclaimedRows(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	id3 := uuid.New()
	id4 := uuid.New()

	existing := []uuid.UUID{id1, id2, id3}
	incoming := []*uuid.UUID{&id1, &id4, nil}

	d := ComputeDiff(existing, incoming)

	assert.ElementsMatch(t, []uuid.UUID{id2, id3}, d.ToDelete)
}

func TestComputeDiffEmptyIncomingDeletesEverything(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()

	d := ComputeDiff([]uuid.UUID{id1, id2}, nil)

	assert.ElementsMatch(t, []uuid.UUID{id1, id2}, d.ToDelete)
}

func TestComputeDiffNoExistingRows(t *testing.T) {
	id := uuid.New()

	d := ComputeDiff(nil, []*uuid.UUID{&id, nil})

	assert.Empty(t, d.ToDelete)
}

func TestComputeDiffAllMatched(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()

	d := ComputeDiff([]uuid.UUID{id1, id2}, []*uuid.UUID{&id2, &id1})

	assert.Empty(t, d.ToDelete)
}
