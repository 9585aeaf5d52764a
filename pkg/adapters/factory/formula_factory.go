package factory

import (
	"sync"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services/formulas"
)

// FormulaBuilder defines the contract for creating a specific conversion formula
type FormulaBuilder func(source, target *domain.Unit, calc ports.Calculator) (ports.Formula, error)

// FormulaFactory is the registry for all available formula identifiers
type FormulaFactory struct {
	builders map[domain.FormulaID]FormulaBuilder
	mu       sync.RWMutex
}

var (
	instance *FormulaFactory
	once     sync.Once
)

// GetFormulaFactory returns the singleton instance
func GetFormulaFactory() *FormulaFactory {
	once.Do(func() {
		instance = NewFormulaFactory()
	})
	return instance
}

// NewFormulaFactory creates a new FormulaFactory instance with built-in formulas registered
// This constructor is useful for testing where you need isolated factory instances
func NewFormulaFactory() *FormulaFactory {
	f := &FormulaFactory{
		builders: make(map[domain.FormulaID]FormulaBuilder),
	}
	// Register built-in formulas
	f.Register(domain.FormulaRatio, buildRatioFormula)
	for _, id := range formulas.TemperatureFormulaIDs() {
		f.Register(id, temperatureBuilder(id))
	}
	return f
}

var _ ports.FormulaFactory = (*FormulaFactory)(nil)

// Register adds or overrides a formula builder
func (f *FormulaFactory) Register(id domain.FormulaID, builder FormulaBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[id] = builder
}

// Has reports whether a builder is registered for id
func (f *FormulaFactory) Has(id domain.FormulaID) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.builders[id]
	return ok
}

// CreateFormula instantiates a formula strategy based on its identifier
func (f *FormulaFactory) CreateFormula(id domain.FormulaID, source, target *domain.Unit, calc ports.Calculator) (ports.Formula, error) {
	f.mu.RLock()
	builder, ok := f.builders[id]
	f.mu.RUnlock()

	if !ok {
		return nil, domain.NewError(domain.KindBadUnit, "no builder registered for formula %q (%s -> %s)", id, source, target)
	}
	return builder(source, target, calc)
}

// buildRatioFormula (Built-in implementation)
func buildRatioFormula(source, target *domain.Unit, calc ports.Calculator) (ports.Formula, error) {
	formula, err := formulas.NewRatioFormula(source, target, calc)
	if err != nil {
		return nil, err
	}
	return formula, nil
}

func temperatureBuilder(id domain.FormulaID) FormulaBuilder {
	return func(source, target *domain.Unit, calc ports.Calculator) (ports.Formula, error) {
		formula, err := formulas.NewTemperatureFormula(id, source, target, calc)
		if err != nil {
			return nil, err
		}
		return formula, nil
	}
}
