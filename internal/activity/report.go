package activity

import (
	"github.com/relabs-tech/activity_recognizer/internal/gps"
)

// Report is the message published after every prediction batch and rendered
// by the web UI and console. Activity carries either a label or one of the
// sentinel strings, forwarded verbatim.
type Report struct {
	Status   string   `json:"status"`
	Activity string   `json:"activity"`
	Time     string   `json:"time"` // RFC3339
	Fix      *gps.Fix `json:"fix,omitempty"`
}
