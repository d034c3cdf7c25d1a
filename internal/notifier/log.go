package notifier

import (
	"log/slog"

	"github.com/abhigl/jobscout/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes new postings to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each posting via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each posting. Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(postings []model.JobPosting) error {
	for _, p := range postings {
		n.logger.Info("new posting",
			"source", p.Source,
			"company", p.Company,
			"title", p.Title,
			"location", p.Location,
			"url", p.URL,
		)
	}
	return nil
}
