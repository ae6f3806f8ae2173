package imaging

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/models"
)

type recordingReleaser struct {
	mu       sync.Mutex
	released []uuid.UUID
}

func (r *recordingReleaser) Release(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	r.released = append(r.released, id)
	r.mu.Unlock()
	return nil
}

func galleryWithSlots(t *testing.T, n int) (*Gallery, []uuid.UUID, *recordingReleaser) {
	t.Helper()
	releaser := &recordingReleaser{}
	g := NewGallery(DefaultMaxSlots, releaser)
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		_, err := g.Add(ids[i])
		require.NoError(t, err)
	}
	return g, ids, releaser
}

func assertSinglePrimary(t *testing.T, g *Gallery) {
	t.Helper()
	primaries := 0
	for _, slot := range g.Slots() {
		if slot.IsPrimary {
			primaries++
		}
	}
	if len(g.Slots()) == 0 {
		assert.Zero(t, primaries)
		return
	}
	assert.Equal(t, 1, primaries, "exactly one primary expected")
}

func TestGalleryFirstSlotBecomesPrimary(t *testing.T) {
	g, ids, _ := galleryWithSlots(t, 3)

	primary, ok := g.Primary()
	require.True(t, ok)
	assert.Equal(t, ids[0], primary.ImageID)
	assertSinglePrimary(t, g)
}

func TestGalleryRejectsOverflow(t *testing.T) {
	g, _, _ := galleryWithSlots(t, DefaultMaxSlots)

	_, err := g.Add(uuid.New())
	assert.ErrorIs(t, err, ErrGalleryFull)
	assert.Len(t, g.Slots(), DefaultMaxSlots)
}

func TestGallerySetPrimaryIsExclusive(t *testing.T) {
	g, ids, _ := galleryWithSlots(t, 4)

	require.NoError(t, g.SetPrimary(2))

	primary, ok := g.Primary()
	require.True(t, ok)
	assert.Equal(t, ids[2], primary.ImageID)
	assertSinglePrimary(t, g)

	assert.ErrorIs(t, g.SetPrimary(9), ErrSlotOutOfRange)
}

func TestGalleryReplaceReleasesDisplacedImage(t *testing.T) {
	g, ids, releaser := galleryWithSlots(t, 2)

	replacement := uuid.New()
	require.NoError(t, g.Replace(context.Background(), 1, replacement))

	slots := g.Slots()
	assert.Equal(t, replacement, slots[1].ImageID)
	assert.Contains(t, releaser.released, ids[1])
	assertSinglePrimary(t, g)
}

func TestGalleryRemovePromotesNewPrimaryBeforePersist(t *testing.T) {
	g, ids, releaser := galleryWithSlots(t, 3)

	// Pre-persist the primary can be removed; the flag moves forward.
	require.NoError(t, g.Remove(context.Background(), 0))

	primary, ok := g.Primary()
	require.True(t, ok)
	assert.Equal(t, ids[1], primary.ImageID)
	assert.Contains(t, releaser.released, ids[0])
	assertSinglePrimary(t, g)
}

func TestPersistedGalleryBlocksPrimaryRemoval(t *testing.T) {
	primaryID := uuid.New()
	otherID := uuid.New()
	g := PersistedGallery([]models.ProductImage{
		{ImageID: primaryID, IsPrimary: true},
		{ImageID: otherID},
	})

	assert.ErrorIs(t, g.Remove(context.Background(), 0), ErrPrimaryImageRequired)
	assert.Len(t, g.Slots(), 2)

	assert.ErrorIs(t, g.CanRemoveImage(primaryID), ErrPrimaryImageRequired)
	assert.NoError(t, g.CanRemoveImage(otherID))
}

func TestPersistedGalleryAllowsNonPrimaryRemoval(t *testing.T) {
	primaryID := uuid.New()
	otherID := uuid.New()
	g := PersistedGallery([]models.ProductImage{
		{ImageID: primaryID, IsPrimary: true},
		{ImageID: otherID},
	})

	require.NoError(t, g.Remove(context.Background(), 1))
	assert.Len(t, g.Slots(), 1)
	assertSinglePrimary(t, g)
}
