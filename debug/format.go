package debug

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"

	"xtouch-bridge/theme"
)

// ConsoleFormatter renders entries as `[time] BADGE category message`
// with a colored level badge
type ConsoleFormatter struct{}

func (f *ConsoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	category, _ := entry.Data[categoryField].(string)
	if category == "" {
		category = "-"
	}

	ts := entry.Time.Format("15:04:05.000")
	fmt.Fprintf(&b, "[%s] %s %s %s\n",
		ts,
		badge(entry.Level),
		theme.Category.Render(fmt.Sprintf("%-10s", category)),
		entry.Message,
	)
	return b.Bytes(), nil
}

func badge(level logrus.Level) string {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return theme.ErrorBadge.Render("ERROR  ")
	case logrus.WarnLevel:
		return theme.WarningBadge.Render("WARNING")
	case logrus.InfoLevel:
		return theme.InfoBadge.Render("INFO   ")
	default:
		return theme.DebugBadge.Render("DEBUG  ")
	}
}
