package exports

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salescrm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{
	"id", "name", "email", "phone", "company", "source", "status",
	"priority", "budget", "agent", "notes", "created_at", "updated_at",
	"last_contact",
}

// Handler streams lead exports as CSV.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new export handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ExportLeadsCSV writes all leads matching the query filter as a CSV
// download. Query params: status, from, to (inclusive/exclusive dates).
func (h *Handler) ExportLeadsCSV(c *gin.Context) {
	filter := Filter{
		Status: strings.ToLower(strings.TrimSpace(c.Query("status"))),
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD", nil)
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD", nil)
			return
		}
		// Exclusive upper bound: include the whole "to" day.
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	rows, err := h.repo.ListLeads(c.Request.Context(), filter)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to export leads", nil)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="leads.csv"`)
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(csvHeader)
	for _, row := range rows {
		_ = writer.Write(toCSVRecord(row))
	}
	writer.Flush()
}

func toCSVRecord(row LeadRow) []string {
	budget := ""
	if row.Budget != nil {
		budget = strconv.FormatFloat(*row.Budget, 'f', 2, 64)
	}
	lastContact := ""
	if row.LastContact != nil {
		lastContact = row.LastContact.UTC().Format(time.RFC3339)
	}

	return []string{
		row.ID.String(),
		row.Name,
		row.Email,
		derefStr(row.Phone),
		derefStr(row.Company),
		derefStr(row.Source),
		row.Status,
		derefStr(row.Priority),
		budget,
		derefStr(row.AgentName),
		derefStr(row.Notes),
		row.CreatedAt.UTC().Format(time.RFC3339),
		row.UpdatedAt.UTC().Format(time.RFC3339),
		lastContact,
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
