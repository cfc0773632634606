package output

import (
	"github.com/fatih/color"

	"github.com/pankaj-dahiya-devops/cloud-audit/internal/models"
)

// palette holds the colours used by the reporters. Every colour is forced on
// or off explicitly so output does not depend on the global color.NoColor.
type palette struct {
	ok, misconfig, unknown, warning, header, critical, high, medium, low, plain *color.Color
}

func newPalette(colored bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	plain := color.New()
	plain.DisableColor()
	return palette{
		ok:        mk(color.FgGreen),
		misconfig: mk(color.FgRed, color.Bold),
		unknown:   mk(color.FgYellow),
		warning:   mk(color.FgYellow, color.Bold),
		header:    mk(color.FgCyan, color.Bold),
		critical:  mk(color.FgRed, color.Bold),
		high:      mk(color.FgRed),
		medium:    mk(color.FgYellow),
		low:       mk(color.FgBlue),
		plain:     plain,
	}
}

func (p palette) status(s models.Status) *color.Color {
	switch s {
	case models.StatusOK:
		return p.ok
	case models.StatusMisconfig:
		return p.misconfig
	case models.StatusUnknown:
		return p.unknown
	default:
		return p.plain
	}
}

func (p palette) severity(s models.Severity) *color.Color {
	switch s {
	case models.SeverityCritical:
		return p.critical
	case models.SeverityHigh:
		return p.high
	case models.SeverityMedium:
		return p.medium
	case models.SeverityLow:
		return p.low
	default:
		return p.plain
	}
}
