package trainer

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// Transport prefixes of session keys.
const (
	TransportWeb      = "web"
	TransportTelegram = "telegram"
	TransportCLI      = "cli"
)

// SessionKey returns the daily session key of subject on transport.
func SessionKey(transport, subject string, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", transport, subject, day.Format("20060102"))
}

// flatten renders turns as one line per message for the review prompt.
func flatten(turns []domain.Turn, learnerName string) string {
	lines := lo.Map(turns, func(t domain.Turn, _ int) string {
		speaker := "Trainer"
		if t.Role == domain.RoleUser {
			speaker = learnerName
		}
		return speaker + ": " + strings.TrimSpace(t.Text)
	})
	return strings.Join(lines, "\n")
}
