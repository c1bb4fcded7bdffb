// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Maps loan and reservation states to colored inline badges

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/loanstatus"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// ReservationBadge renders a badge for a reservation status
func ReservationBadge(status string) string {
	level := StatusNeutral
	switch status {
	case client.ReservationAtiva:
		level = StatusOK
	case client.ReservationPendente:
		level = StatusInfo
	case client.ReservationCancelada:
		level = StatusCritical
	case client.ReservationAtendida, client.ReservationFinalizada:
		level = StatusNeutral
	}
	return Badge(strings.ToUpper(status), level)
}

// AvailabilityBadge renders a badge for catalog availability
func AvailabilityBadge(disponivel bool) string {
	if disponivel {
		return Badge("DISPONÍVEL", StatusOK)
	}
	return Badge("EMPRESTADO", StatusNeutral)
}

// LoanBadge renders a badge for a derived loan status
func LoanBadge(s loanstatus.Status) string {
	switch {
	case s.Overdue:
		return Badge("ATRASADO", StatusCritical)
	case s.DaysRemaining == 0:
		return Badge("VENCE HOJE", StatusWarning)
	default:
		return Badge("EM DIA", StatusOK)
	}
}
