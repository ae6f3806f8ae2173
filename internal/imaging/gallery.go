package imaging

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"storeadmin/internal/models"
)

// DefaultMaxSlots bounds a product gallery.
const DefaultMaxSlots = 5

// Slot is one position in a product's ordered image gallery.
type Slot struct {
	ImageID   uuid.UUID `json:"image_id"`
	IsPrimary bool      `json:"is_primary"`
}

// Releaser lets the gallery drop preview handles it displaces; the preview
// store satisfies it.
type Releaser interface {
	Release(ctx context.Context, id uuid.UUID) error
}

// Gallery holds a bounded, ordered set of image slots with exactly one
// primary whenever any slot exists. A persisted gallery (built from a
// product that is already saved) additionally refuses to drop its primary
// slot, so the saved product can never end up without a designated primary.
type Gallery struct {
	mu        sync.Mutex
	slots     []Slot
	maxSlots  int
	persisted bool
	releaser  Releaser
}

// NewGallery starts an empty, pre-persist gallery. releaser may be nil.
func NewGallery(maxSlots int, releaser Releaser) *Gallery {
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlots
	}
	return &Gallery{maxSlots: maxSlots, releaser: releaser}
}

// PersistedGallery mirrors the image associations of a saved product.
func PersistedGallery(images []models.ProductImage) *Gallery {
	g := &Gallery{maxSlots: DefaultMaxSlots, persisted: true}
	if len(images) > g.maxSlots {
		g.maxSlots = len(images)
	}
	for _, img := range images {
		g.slots = append(g.slots, Slot{ImageID: img.ImageID, IsPrimary: img.IsPrimary})
	}
	return g
}

// Slots returns a copy of the current slot order.
func (g *Gallery) Slots() []Slot {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Slot, len(g.slots))
	copy(out, g.slots)
	return out
}

// Primary returns the slot currently flagged primary.
func (g *Gallery) Primary() (Slot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, slot := range g.slots {
		if slot.IsPrimary {
			return slot, true
		}
	}
	return Slot{}, false
}

// Add appends a slot and returns its index. The first slot added becomes
// the primary.
func (g *Gallery) Add(imageID uuid.UUID) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.slots) >= g.maxSlots {
		return -1, ErrGalleryFull
	}
	slot := Slot{ImageID: imageID, IsPrimary: len(g.slots) == 0}
	g.slots = append(g.slots, slot)
	return len(g.slots) - 1, nil
}

// Replace installs a new image id into slot index, keeping the primary
// flag, and releases the preview handle of the image it displaces.
func (g *Gallery) Replace(ctx context.Context, index int, imageID uuid.UUID) error {
	g.mu.Lock()
	if index < 0 || index >= len(g.slots) {
		g.mu.Unlock()
		return ErrSlotOutOfRange
	}
	old := g.slots[index].ImageID
	g.slots[index].ImageID = imageID
	g.mu.Unlock()

	if g.releaser != nil && old != uuid.Nil && old != imageID {
		_ = g.releaser.Release(ctx, old)
	}
	return nil
}

// Remove drops slot index. Removing the primary of a persisted gallery is
// rejected; pre-persist, removal is unconditional and the primary flag
// falls to the first remaining slot so the gallery never has zero primaries
// while slots exist.
func (g *Gallery) Remove(ctx context.Context, index int) error {
	g.mu.Lock()
	if index < 0 || index >= len(g.slots) {
		g.mu.Unlock()
		return ErrSlotOutOfRange
	}
	target := g.slots[index]
	if target.IsPrimary && g.persisted {
		g.mu.Unlock()
		return ErrPrimaryImageRequired
	}

	g.slots = append(g.slots[:index], g.slots[index+1:]...)
	if target.IsPrimary && len(g.slots) > 0 {
		g.slots[0].IsPrimary = true
	}
	g.mu.Unlock()

	if g.releaser != nil && target.ImageID != uuid.Nil {
		_ = g.releaser.Release(ctx, target.ImageID)
	}
	return nil
}

// SetPrimary promotes slot index and demotes the previous primary in one
// locked step; no caller can observe zero or two primaries.
func (g *Gallery) SetPrimary(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if index < 0 || index >= len(g.slots) {
		return ErrSlotOutOfRange
	}
	for i := range g.slots {
		g.slots[i].IsPrimary = i == index
	}
	return nil
}

// CanRemoveImage is the pre-flight check for deleting a persisted image
// association: the primary image of a product that still has images cannot
// be removed.
func (g *Gallery) CanRemoveImage(imageID uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.persisted || len(g.slots) == 0 {
		return nil
	}
	for _, slot := range g.slots {
		if slot.ImageID == imageID && slot.IsPrimary {
			return ErrPrimaryImageRequired
		}
	}
	return nil
}
