package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// Markers the DataStar client attaches to backend actions.
const (
	DataStarRequestHeader = "Datastar-Request"
	DataStarAcceptHeader  = "text/event-stream"
	DataStarQueryParam    = "datastar"
)

// Element patch modes accepted by WithPatchMode.
const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r came from the DataStar client: the
// Datastar-Request header, an event-stream Accept header, or signals in
// the query string.
func IsDataStar(r *http.Request) bool {
	switch {
	case r.Header.Get(DataStarRequestHeader) == "true":
		return true
	case strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader):
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// NewSSE starts a DataStar event stream on w.
func NewSSE(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	return datastar.NewSSE(w, r)
}
