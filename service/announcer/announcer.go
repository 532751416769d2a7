package announcer

import (
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain/listing"
)

// Announcer posts auction outcomes to a public channel. Failures are
// reported but callers treat announcements as best effort
type Announcer interface {
	AnnounceSettled(c ctx.Ctx, l *listing.Listing, outcome *listing.SettleOutcome) error
}
