// Package refdata loads and caches the vendor/PO master data used by the
// cross-reference and fraud stages.
package refdata

import (
	"encoding/json"
	"os"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

// Provider supplies a reference data snapshot. An unavailable source must
// yield an empty dataset, not an error: validation fails open as "not found"
// and drives the score down instead of aborting.
type Provider interface {
	Load() (*models.ReferenceData, error)
}

// FileProvider reads reference data from a JSON file.
type FileProvider struct {
	path   string
	logger *zap.Logger
}

// NewFileProvider creates a provider for the given path.
func NewFileProvider(path string, logger *zap.Logger) *FileProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileProvider{path: path, logger: logger}
}

// Load reads and parses the file. A missing or malformed file is downgraded
// to an empty dataset with a warning.
func (p *FileProvider) Load() (*models.ReferenceData, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		p.logger.Warn("Reference data unavailable, using empty dataset",
			zap.String("path", p.path), zap.Error(err))
		return models.EmptyReferenceData(), nil
	}

	var ref models.ReferenceData
	if err := json.Unmarshal(data, &ref); err != nil {
		p.logger.Warn("Reference data malformed, using empty dataset",
			zap.String("path", p.path), zap.Error(err))
		return models.EmptyReferenceData(), nil
	}

	if ref.PurchaseOrders == nil {
		ref.PurchaseOrders = []models.PurchaseOrderRecord{}
	}
	if ref.ApprovedVendors == nil {
		ref.ApprovedVendors = []models.VendorRecord{}
	}
	if ref.BlacklistedVendors == nil {
		ref.BlacklistedVendors = []models.VendorRecord{}
	}

	p.logger.Info("Reference data loaded",
		zap.String("path", p.path),
		zap.Int("approved_vendors", len(ref.ApprovedVendors)),
		zap.Int("blacklisted_vendors", len(ref.BlacklistedVendors)),
		zap.Int("purchase_orders", len(ref.PurchaseOrders)))
	return &ref, nil
}

// Store caches the loaded snapshot. Readers get a consistent pointer while
// Reload swaps in a fresh snapshot atomically; the data itself is never
// mutated in place, so it is safe to share across concurrent validations.
type Store struct {
	provider Provider
	current  atomic.Pointer[models.ReferenceData]
	logger   *zap.Logger
}

// NewStore creates a store and performs the initial load.
func NewStore(provider Provider, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{provider: provider, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the active snapshot.
func (s *Store) Current() *models.ReferenceData {
	return s.current.Load()
}

// Reload loads a fresh snapshot and swaps it in. In-flight validations keep
// the snapshot they started with.
func (s *Store) Reload() error {
	ref, err := s.provider.Load()
	if err != nil {
		return err
	}
	if ref == nil {
		ref = models.EmptyReferenceData()
	}
	s.current.Store(ref)
	return nil
}
