package catalog

import (
	"encoding/json"
	"encoding/xml"
	"log/slog"
	"net/http"

	"github.com/marketbay/catalog-server/models"
)

// StatusResponse is the JSON body of every write operation: a success or
// failure flag, a human message, and field-level errors when validation
// blocked the write.
type StatusResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Errors  models.ValidationErrors `json:"errors,omitempty"`
}

// WriteJSON encodes v, wrapped as a JSONP invocation when the request
// carries a callback parameter. The callback name comes from the query
// string only and is never part of the payload.
func WriteJSON(w http.ResponseWriter, r *http.Request, v any) {
	WriteJSONStatus(w, r, http.StatusOK, v)
}

// WriteJSONStatus is WriteJSON with an explicit status code.
func WriteJSONStatus(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if name := r.URL.Query().Get("callback"); name != "" {
		body = WrapCallback(body, name)
		w.Header().Set("Content-Type", "application/javascript")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("write response", "err", err)
	}
}

// WriteXML writes v as an XML document with the standard declaration.
func WriteXML(w http.ResponseWriter, v any) {
	writeXMLAs(w, v, "application/xml")
}

// WriteFeed writes an RSS feed.
func WriteFeed(w http.ResponseWriter, feed Feed) {
	writeXMLAs(w, feed, "application/rss+xml")
}

func writeXMLAs(w http.ResponseWriter, v any, contentType string) {
	body, err := xml.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(append([]byte(xml.Header), body...)); err != nil {
		slog.Error("write response", "err", err)
	}
}
