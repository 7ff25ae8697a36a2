package service

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/agriance/contractgen/config"
	"github.com/agriance/contractgen/model"
)

// ContractStore is an in-memory registry of generated contracts. Only the
// normalized record and generation time are kept; the PDF is re-rendered on
// demand.
type ContractStore struct {
	contracts    map[string]*model.Contract
	byNumber     map[numberKey]string // tenant + contract number -> ID
	mu           sync.RWMutex
	maxContracts int // Maximum contracts to keep, 0 = unlimited
}

type numberKey struct {
	tenant, number string
}

func keyOf(c *model.Contract) numberKey {
	return numberKey{tenant: c.Tenant, number: c.ContractNumber}
}

// ErrDuplicateNumber is returned by SaveIfAbsent when the tenant already holds
// a contract under the same number.
var ErrDuplicateNumber = errors.New("contract number already exists")

var (
	globalStore *ContractStore
	storeOnce   sync.Once
)

// NewContractStore returns an empty store keeping at most maxContracts.
func NewContractStore(maxContracts int) *ContractStore {
	if maxContracts < 0 {
		maxContracts = 0
	}
	return &ContractStore{
		contracts:    make(map[string]*model.Contract),
		byNumber:     make(map[numberKey]string),
		maxContracts: maxContracts,
	}
}

// InitContractStore initializes the global contract store with configuration
func InitContractStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		globalStore = NewContractStore(cfg.MaxContracts)
		slog.Info("contract store initialized", "max_contracts", globalStore.maxContracts)
	})
}

// GetContractStore returns the global contract store
func GetContractStore() *ContractStore {
	storeOnce.Do(func() {
		globalStore = NewContractStore(100)
	})
	return globalStore
}

// Save adds or replaces a contract. A contract number is unique within its
// tenant; saving a second contract under the same number evicts the first.
func (s *ContractStore) Save(contract *model.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.contracts[contract.ID]; ok && s.byNumber[keyOf(prev)] == prev.ID {
		delete(s.byNumber, keyOf(prev))
	}
	if contract.ContractNumber != "" {
		if id, ok := s.byNumber[keyOf(contract)]; ok && id != contract.ID {
			s.remove(id)
		}
		s.byNumber[keyOf(contract)] = contract.ID
	}

	s.insert(contract)
}

// SaveIfAbsent adds a contract unless its tenant already holds one with the
// same contract number, in which case it returns ErrDuplicateNumber.
func (s *ContractStore) SaveIfAbsent(contract *model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contract.ContractNumber != "" {
		if id, ok := s.byNumber[keyOf(contract)]; ok && id != contract.ID {
			return ErrDuplicateNumber
		}
		s.byNumber[keyOf(contract)] = contract.ID
	}
	s.insert(contract)
	return nil
}

// insert must be called with the lock held.
func (s *ContractStore) insert(contract *model.Contract) {
	contract.UpdatedAt = time.Now()
	s.contracts[contract.ID] = contract
	s.cleanupIfNeeded()
}

func (s *ContractStore) Get(id string) *model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contracts[id]
}

// GetByNumber looks a contract up by its contract number within a tenant.
func (s *ContractStore) GetByNumber(tenant, number string) *model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNumber[numberKey{tenant: tenant, number: number}]
	if !ok {
		return nil
	}
	return s.contracts[id]
}

// GetByTenant returns the tenant's contracts, newest first.
func (s *ContractStore) GetByTenant(tenant string) []*model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Contract
	for _, c := range s.contracts {
		if c.Tenant == tenant {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *ContractStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// remove must be called with the lock held.
func (s *ContractStore) remove(id string) {
	if c, ok := s.contracts[id]; ok {
		if s.byNumber[keyOf(c)] == id {
			delete(s.byNumber, keyOf(c))
		}
		delete(s.contracts, id)
	}
}

func (s *ContractStore) UpdateStatus(id, status string, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contracts[id]; ok {
		c.Status = status
		c.ErrorMsg = errMsg
		c.UpdatedAt = time.Now()
	}
}

// MarkArchived records the archive location of a contract's PDF.
func (s *ContractStore) MarkArchived(id, objectName, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.contracts[id]; ok {
		c.ObjectName = objectName
		c.PDFURL = url
		c.Status = model.StatusArchived
		c.ErrorMsg = ""
		c.UpdatedAt = time.Now()
	}
}

// cleanupIfNeeded removes oldest contracts if store exceeds maxContracts
// Must be called with lock held
func (s *ContractStore) cleanupIfNeeded() {
	if s.maxContracts <= 0 {
		return // Unlimited
	}

	if len(s.contracts) <= s.maxContracts {
		return
	}

	contracts := make([]*model.Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		contracts = append(contracts, c)
	}
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].CreatedAt.Before(contracts[j].CreatedAt)
	})

	removeCount := len(contracts) - s.maxContracts
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old contract",
			"contract_id", contracts[i].ID,
			"contract_number", contracts[i].ContractNumber,
			"created_at", contracts[i].CreatedAt,
		)
		s.remove(contracts[i].ID)
	}
}

// Count returns the number of contracts in the store
func (s *ContractStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}
