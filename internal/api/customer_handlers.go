package api

import (
	"net/http"
	"strings"

	"github.com/lumenretail/marketing-agent/internal/customers"
)

// CustomerStats returns aggregate customer database statistics.
func (h *Handlers) CustomerStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.customers.Statistics())
}

// ListCustomers queries the customer database. Filters: segment,
// interests (comma-separated), location, email_opt_in.
func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var list []*customers.Customer
	switch {
	case q.Get("segment") != "":
		list = h.customers.BySegment(customers.Segment(q.Get("segment")))
	case q.Get("interests") != "":
		list = h.customers.ByInterests(strings.Split(q.Get("interests"), ","))
	case q.Get("location") != "":
		list = h.customers.ByLocation(q.Get("location"))
	case q.Get("email_opt_in") == "true":
		list = h.customers.WithEmailOptIn()
	default:
		list = h.customers.All()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(list),
		"customers": list,
	})
}
