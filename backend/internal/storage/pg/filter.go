package pg

import (
	"strconv"
	"strings"
	"time"

	"github.com/itchan-dev/threadboard/shared/domain"
)

type whereBuilder struct {
	conds []string
	args  []any
}

// arg registers a bind parameter and returns its placeholder
func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *whereBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *whereBuilder) sql() string {
	return strings.Join(b.conds, " AND ")
}

var searchColumns = []struct {
	field  domain.SearchField
	column string
}{
	{domain.SearchTitle, "title"},
	{domain.SearchContent, "content"},
	{domain.SearchWriter, "writer"},
}

// boardListFilter builds the WHERE clause shared by the count and page queries.
func boardListFilter(req domain.BoardListRequest) (string, []any) {
	b := &whereBuilder{}
	b.where("NOT is_deleted")

	if req.HasKeyword() {
		pattern := b.arg("%" + escapeLike(req.Keyword) + "%")
		var ors []string
		for _, sc := range searchColumns {
			if req.Fields.Has(sc.field) {
				ors = append(ors, sc.column+" ILIKE "+pattern)
			}
		}
		b.where("(" + strings.Join(ors, " OR ") + ")")
	}
	if req.From != nil {
		b.where("created_at >= " + b.arg(startOfDay(*req.From)))
	}
	if req.To != nil {
		// inclusive end date: everything before the next midnight
		b.where("created_at < " + b.arg(startOfDay(*req.To).AddDate(0, 0, 1)))
	}
	return b.sql(), b.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
