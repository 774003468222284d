package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	bodyStyle      = lipgloss.NewStyle().PaddingLeft(1)
)

var tabTitles = map[string]string{
	"dashboard": "Dashboard",
	"profile":   "Profile",
	"mealplan":  "Meal Plan",
	"analyze":   "Analyze Image",
	"chat":      "Health Insights (AI)",
}
