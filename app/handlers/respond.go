package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"hackblog/app/views"
)

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		sendJSON(w, status, map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}

var mobileAgents = []string{"Mobi", "Android", "iPhone", "iPad", "iPod"}

// layoutFor picks the page layout from ?layout=, falling back to narrow
// for mobile user agents.
func layoutFor(r *http.Request) string {
	switch l := r.URL.Query().Get("layout"); l {
	case views.LayoutWide, views.LayoutNarrow:
		return l
	}
	ua := r.UserAgent()
	for _, m := range mobileAgents {
		if strings.Contains(ua, m) {
			return views.LayoutNarrow
		}
	}
	return views.LayoutWide
}
