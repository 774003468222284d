package mockbackend

import (
	"sync"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

// Store keeps the single session profile in memory.
type Store struct {
	mu      sync.RWMutex
	profile *coach.Profile
	plan    coach.MealPlan
}

// NewStore constructs a store serving the given plan fixture.
func NewStore(plan coach.MealPlan) *Store {
	return &Store{plan: plan}
}

// Profile returns the stored profile, if any.
func (s *Store) Profile() (coach.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return coach.Profile{}, false
	}
	return *s.profile, true
}

// SaveProfile replaces the stored profile; only one profile is ever kept.
func (s *Store) SaveProfile(p coach.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
}

// MealPlan returns the plan fixture annotated with the stored dietary preference.
func (s *Store) MealPlan() coach.MealPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan := s.plan
	plan.Days = append([]coach.DayPlan(nil), s.plan.Days...)
	plan.ShoppingList = append([]string(nil), s.plan.ShoppingList...)
	plan.DietaryPreference = "mixed"
	if s.profile != nil && s.profile.DietaryPref != "" {
		plan.DietaryPreference = s.profile.DietaryPref
	}
	return plan
}
