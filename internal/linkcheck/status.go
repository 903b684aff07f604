// Package linkcheck probes bookmark URLs and classifies how they answer.
package linkcheck

// LinkStatus is the health classification of one probe.
type LinkStatus string

const (
	// Checking is the state before any probe result is known.
	Checking   LinkStatus = "checking"
	Online     LinkStatus = "online"
	Redirected LinkStatus = "redirected"
	Offline    LinkStatus = "offline"
	Timeout    LinkStatus = "timeout"
	Error      LinkStatus = "error"
)

// Result is what one probe reports. It is also the JSON body of the
// check-status endpoint.
type Result struct {
	Status LinkStatus `json:"status"`

	// StatusCode is set for online, redirected and offline.
	StatusCode int `json:"statusCode,omitempty"`

	// FinalURL is the Location of a redirect, or the probed URL when none was sent.
	FinalURL string `json:"finalUrl,omitempty"`

	// Message describes an error result.
	Message string `json:"message,omitempty"`
}

// Pending is the result shown while a probe has not completed.
func Pending() Result { return Result{Status: Checking} }

// IsTerminal reports whether r is a completed probe.
func (r Result) IsTerminal() bool {
	return r.Status != Checking && r.Status != ""
}
