package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// ErrUnknownView is returned for names that are not views.
var ErrUnknownView = errors.New("unknown view")

// View names one screen of the client.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewProfile   View = "profile"
	ViewMealPlan  View = "mealplan"
	ViewAnalyze   View = "analyze"
	ViewChat      View = "chat"
)

// Views lists every view in navigation order.
var Views = []View{ViewDashboard, ViewProfile, ViewMealPlan, ViewAnalyze, ViewChat}

// Activator is implemented by view-states that react to becoming visible.
type Activator interface {
	Activate(ctx context.Context) error
}

// Parse resolves a view name, ignoring case and surrounding space.
func Parse(name string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Views {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// Router keeps exactly one active view. Switching never resets the other views.
type Router struct {
	mu      sync.Mutex
	logger  *slog.Logger
	hooks   map[View]Activator
	active  View
	started bool
}

// NewRouter builds a router on the dashboard. hooks maps views to the states
// activated when they are shown; views without a hook keep their state untouched.
func NewRouter(logger *slog.Logger, hooks map[View]Activator) *Router {
	copied := make(map[View]Activator, len(hooks))
	for view, hook := range hooks {
		copied[view] = hook
	}
	return &Router{
		logger: logger.With("component", "navigation.router"),
		hooks:  copied,
		active: ViewDashboard,
	}
}

// Active returns the visible view.
func (r *Router) Active() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Start mounts the initial view and returns its activation.
func (r *Router) Start() func(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
	return r.activation(r.active)
}

// Switch makes view active and returns the activation to run, or nil when there is
// nothing to do. Switching to the view already shown is a no-op.
func (r *Router) Switch(view View) (func(ctx context.Context) error, error) {
	if _, err := Parse(string(view)); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started && view == r.active {
		return nil, nil
	}
	r.logger.Debug("switch view", "from", r.active, "to", view)
	r.active = view
	r.started = true
	return r.activation(view), nil
}

// Next switches to the following view, wrapping around.
func (r *Router) Next() func(ctx context.Context) error {
	return r.step(1)
}

// Prev switches to the preceding view, wrapping around.
func (r *Router) Prev() func(ctx context.Context) error {
	return r.step(len(Views) - 1)
}

func (r *Router) step(offset int) func(ctx context.Context) error {
	current := r.Active()
	idx := 0
	for i, v := range Views {
		if v == current {
			idx = i
		}
	}
	activate, _ := r.Switch(Views[(idx+offset)%len(Views)])
	return activate
}

func (r *Router) activation(view View) func(ctx context.Context) error {
	hook, ok := r.hooks[view]
	if !ok || hook == nil {
		return nil
	}
	return hook.Activate
}
