package doulatui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tOgg1/doula/internal/api"
	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

// TimelineClient loads the timeline for a user.
type TimelineClient interface {
	FetchTimeline(ctx context.Context, userID int) ([]models.TimelineEvent, error)
}

type timelineLoadedMsg struct {
	generation uint64
	userID     int
	events     []models.TimelineEvent
	err        error
}

// timelineFetcher issues timeline requests as commands. Each request gets a
// new generation; only the result for the latest generation is accepted.
// All methods run on the Update goroutine.
type timelineFetcher struct {
	client     TimelineClient
	logger     zerolog.Logger
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

func newTimelineFetcher(client TimelineClient, logger zerolog.Logger) *timelineFetcher {
	return &timelineFetcher{client: client, logger: logger}
}

// fetchCmd supersedes any in-flight request and returns the command for a new one.
func (f *timelineFetcher) fetchCmd(userID int) tea.Cmd {
	if f.closed {
		return nil
	}
	f.cancelInFlight()
	f.generation++
	generation := f.generation

	logger := logging.WithUser(f.logger, userID)
	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logger))
	f.cancel = cancel
	client := f.client
	logger.Debug().Uint64("generation", generation).Msg("fetching timeline")

	return func() tea.Msg {
		events, err := client.FetchTimeline(ctx, userID)
		return timelineLoadedMsg{generation: generation, userID: userID, events: events, err: err}
	}
}

// accept reports whether msg belongs to the current request. Failures that
// are accepted are logged here, once per request.
func (f *timelineFetcher) accept(msg timelineLoadedMsg) bool {
	if f.closed || msg.generation != f.generation {
		f.logger.Debug().Uint64("generation", msg.generation).Msg("discarding stale timeline result")
		return false
	}
	f.cancelInFlight()
	if msg.err != nil {
		logger := logging.WithUser(f.logger, msg.userID)
		logger.Error().
			Err(msg.err).
			Str("kind", api.Classify(msg.err).String()).
			Msg("timeline fetch failed")
	}
	return true
}

func (f *timelineFetcher) cancelInFlight() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// Close cancels the in-flight request; later results are discarded.
func (f *timelineFetcher) Close() {
	f.closed = true
	f.cancelInFlight()
}
