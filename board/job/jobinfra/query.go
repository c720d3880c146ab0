package jobinfra

import (
	"strings"

	"github.com/Abraxas-365/nerdyjobs/board/job"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere translates a query into a WHERE clause with ? placeholders.
// The clause is empty when the query has no conditions.
func buildWhere(q job.Query) (string, []any) {
	var conditions []string
	var args []any

	switch q.Approval {
	case job.OnlyApproved:
		conditions = append(conditions, "approved = ?")
		args = append(args, true)
	case job.OnlyPending:
		conditions = append(conditions, "approved = ?")
		args = append(args, false)
	}

	// search_text is job.Job.SearchText, lowercased in Go when the row is
	// written, so matching does not depend on the database's LOWER()
	for _, w := range q.Words {
		conditions = append(conditions, `search_text LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(w))+"%")
	}

	if q.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, string(q.Type))
	}

	if q.Location != "" {
		conditions = append(conditions, "location = ?")
		args = append(args, q.Location)
	}

	if q.Remote {
		conditions = append(conditions, "location_type = ?")
		args = append(args, string(job.LocationRemote))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
