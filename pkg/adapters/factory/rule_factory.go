package factory

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services/rules"
)

// RuleBuilder defines the contract for creating a specific request check
type RuleBuilder func(rule domain.CheckRule) (ports.RequestRule, error)

// RuleFactory is the registry for all available rule types
type RuleFactory struct {
	builders map[domain.RuleType]RuleBuilder
	mu       sync.RWMutex
}

var (
	ruleInstance *RuleFactory
	ruleOnce     sync.Once
)

// GetRuleFactory returns the singleton instance
func GetRuleFactory() *RuleFactory {
	ruleOnce.Do(func() {
		ruleInstance = NewRuleFactory()
	})
	return ruleInstance
}

// NewRuleFactory creates a new RuleFactory instance with built-in rules registered
func NewRuleFactory() *RuleFactory {
	f := &RuleFactory{
		builders: make(map[domain.RuleType]RuleBuilder),
	}
	// Register built-in rules
	f.Register(domain.RuleTypeRange, buildRangeRule)
	return f
}

// Register adds or overrides a rule builder
func (f *RuleFactory) Register(ruleType domain.RuleType, builder RuleBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[ruleType] = builder
}

// CreateRule instantiates a rule strategy based on configuration
func (f *RuleFactory) CreateRule(rule domain.CheckRule) (ports.RequestRule, error) {
	f.mu.RLock()
	builder, ok := f.builders[rule.Type]
	f.mu.RUnlock()

	if !ok {
		return nil, domain.NewError(domain.KindInvalidArgument, "no builder registered for rule type %q (rule %q)", rule.Type, rule.ID)
	}
	return builder(rule)
}

// CreateRules builds every enabled rule, highest priority first.
// Rules with equal priority keep their configured order.
func (f *RuleFactory) CreateRules(configs []domain.CheckRule) ([]ports.RequestRule, error) {
	enabled := make([]domain.CheckRule, 0, len(configs))
	for _, c := range configs {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool { return enabled[i].Priority > enabled[j].Priority })

	out := make([]ports.RequestRule, 0, len(enabled))
	for _, c := range enabled {
		r, err := f.CreateRule(c)
		if err != nil {
			return nil, fmt.Errorf("convert rule %s failed: %w", c.ID, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// buildRangeRule (Built-in implementation)
// min / max are optional; a missing bound is unbounded
func buildRangeRule(rule domain.CheckRule) (ports.RequestRule, error) {
	lo, hasMin, err := floatParam(rule.Parameters, "min")
	if err != nil {
		return nil, err
	}
	hi, hasMax, err := floatParam(rule.Parameters, "max")
	if err != nil {
		return nil, err
	}
	if !hasMin && !hasMax {
		return nil, domain.NewError(domain.KindInvalidArgument, "RANGE rule %q needs min and/or max", rule.ID)
	}
	if !hasMin {
		lo = math.Inf(-1)
	}
	if !hasMax {
		hi = math.Inf(1)
	}
	if lo > hi {
		return nil, domain.NewError(domain.KindInvalidArgument, "RANGE rule %q: min %g > max %g", rule.ID, lo, hi)
	}

	action := rule.Action
	if action == "" {
		action = domain.ActionReject
	}
	if action != domain.ActionReject && action != domain.ActionCorrect {
		return nil, domain.NewError(domain.KindInvalidArgument, "RANGE rule %q: unknown action %q", rule.ID, action)
	}
	return &rules.RangeRule{ID: rule.ID, UnitOf: rule.UnitOf, Min: lo, Max: hi, Action: action}, nil
}

func floatParam(params map[string]any, key string) (float64, bool, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	default:
		return 0, false, domain.NewError(domain.KindInvalidArgument, "parameter %q must be a number, got %T", key, v)
	}
}
