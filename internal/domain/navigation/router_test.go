package navigation

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouterStartsOnDashboard(t *testing.T) {
	dashboard := &countingActivator{}
	router := NewRouter(newTestLogger(), map[View]Activator{ViewDashboard: dashboard})

	require.Equal(t, ViewDashboard, router.Active())
	activate := router.Start()
	require.NotNil(t, activate)
	require.NoError(t, activate(context.Background()))
	require.Equal(t, 1, dashboard.count)
}

func TestSwitchReturnsActivationOfTarget(t *testing.T) {
	dashboard := &countingActivator{}
	mealPlan := &countingActivator{}
	router := NewRouter(newTestLogger(), map[View]Activator{ViewDashboard: dashboard, ViewMealPlan: mealPlan})
	router.Start()

	activate, err := router.Switch(ViewMealPlan)
	require.NoError(t, err)
	require.NoError(t, activate(context.Background()))
	require.Equal(t, ViewMealPlan, router.Active())

	activate, err = router.Switch(ViewMealPlan)
	require.NoError(t, err)
	require.Nil(t, activate)

	activate, err = router.Switch(ViewChat)
	require.NoError(t, err)
	require.Nil(t, activate)

	activate, err = router.Switch(ViewDashboard)
	require.NoError(t, err)
	require.NoError(t, activate(context.Background()))

	require.Equal(t, 1, mealPlan.count)
	require.Equal(t, 1, dashboard.count)
}

func TestSwitchRejectsUnknownView(t *testing.T) {
	router := NewRouter(newTestLogger(), nil)

	_, err := router.Switch(View("settings"))
	require.ErrorIs(t, err, ErrUnknownView)
	require.Equal(t, ViewDashboard, router.Active())
}

func TestNextAndPrevWrap(t *testing.T) {
	router := NewRouter(newTestLogger(), nil)
	router.Start()

	router.Prev()
	require.Equal(t, ViewChat, router.Active())
	router.Next()
	require.Equal(t, ViewDashboard, router.Active())
	router.Next()
	require.Equal(t, ViewProfile, router.Active())
}

func TestParse(t *testing.T) {
	view, err := Parse(" MealPlan ")
	require.NoError(t, err)
	require.Equal(t, ViewMealPlan, view)

	_, err = Parse("settings")
	require.ErrorIs(t, err, ErrUnknownView)
}

type countingActivator struct {
	count int
}

func (c *countingActivator) Activate(ctx context.Context) error {
	c.count++
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
