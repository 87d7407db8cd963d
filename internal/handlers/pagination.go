package handlers

import (
	"net/http"
	"strconv"
)

// parsePage reads the 1-based "page" query parameter. Missing, malformed
// and non-positive values select the first page.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
