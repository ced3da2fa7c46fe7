// Package pharmacy provides the read-only pharmacy reference directory used
// across every report and the gap workflow for filtering and display.
package pharmacy

import (
	"context"
	"sync"
	"time"

	"rxconsole/pkg/logger"
)

// Ref is the minimal identity and display projection of a pharmacy.
type Ref struct {
	ID             int64  `json:"id"`
	CommercialName string `json:"commercial_name"`
	LegalName      string `json:"legal_name"`
	TaxID          string `json:"tax_id"`
	Active         bool   `json:"active"`
}

// Loader fetches the pharmacy list from the directory collaborator.
type Loader interface {
	ListPharmacies(ctx context.Context) ([]Ref, error)
}

// Directory caches the pharmacy list for the session. Loaded once, read-mostly
// behind an RWMutex; a refresh swaps the whole slice so in-flight report
// fetches, which reference pharmacies by id only, are never disturbed.
type Directory struct {
	loader Loader

	mu       sync.RWMutex
	refs     []Ref
	byID     map[int64]Ref
	loaded   bool
	loadedAt time.Time
}

// NewDirectory creates an unloaded directory.
func NewDirectory(loader Loader) *Directory {
	return &Directory{loader: loader}
}

// Load fetches the pharmacy list. A failure leaves the directory degraded:
// filtering by pharmacy is unavailable but everything else keeps working.
func (d *Directory) Load(ctx context.Context) error {
	refs, err := d.loader.ListPharmacies(ctx)
	if err != nil {
		logger.Warn(ctx, "pharmacy directory load failed, running degraded", "error", err)
		return err
	}

	byID := make(map[int64]Ref, len(refs))
	for _, r := range refs {
		byID[r.ID] = r
	}

	d.mu.Lock()
	d.refs = refs
	d.byID = byID
	d.loaded = true
	d.loadedAt = time.Now()
	d.mu.Unlock()

	logger.Info(ctx, "pharmacy directory loaded", "count", len(refs))
	return nil
}

// Refresh reloads the directory. Same semantics as Load.
func (d *Directory) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// All returns the cached pharmacy list.
func (d *Directory) All() []Ref {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Ref, len(d.refs))
	copy(out, d.refs)
	return out
}

// Get returns one pharmacy by id.
func (d *Directory) Get(id int64) (Ref, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.byID[id]
	return r, ok
}

// Available reports whether the directory has loaded successfully at least
// once this session.
func (d *Directory) Available() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}
