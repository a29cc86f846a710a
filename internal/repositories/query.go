package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/jackc/pgx/v5"
)

type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) eq(column string, v *string) {
	if v == nil {
		return
	}
	w.args = append(w.args, *v)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// setClause builds the SET list of a partial update. Placeholders are
// numbered from 1; the caller appends the id argument last.
type setClause struct {
	sets []string
	args []any
}

// add appends "column = $n<cast>".
func (s *setClause) add(column, cast string, v any) {
	s.args = append(s.args, v)
	s.sets = append(s.sets, fmt.Sprintf("%s = $%d%s", column, len(s.args), cast))
}

func (s *setClause) String() string {
	return strings.Join(append(s.sets, "updated_at = now()"), ", ")
}

func (s *setClause) next() int {
	return len(s.args) + 1
}

// mapErr turns pgx results into the store error taxonomy.
func mapErr(op, entity, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(entity, id)
	}
	return apperr.Persistence(op, err)
}

func campaignRef(id, name, brand, status *string) *models.CampaignRef {
	if id == nil {
		return nil
	}
	ref := &models.CampaignRef{ID: *id}
	if name != nil {
		ref.CampaignName = *name
	}
	if brand != nil {
		ref.BrandName = *brand
	}
	if status != nil {
		ref.Status = *status
	}
	return ref
}

func influencerRef(id, name, handle, platform *string) *models.InfluencerRef {
	if id == nil {
		return nil
	}
	ref := &models.InfluencerRef{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	if handle != nil {
		ref.Handle = *handle
	}
	if platform != nil {
		ref.Platform = *platform
	}
	return ref
}
