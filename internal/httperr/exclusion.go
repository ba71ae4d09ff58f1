package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// 23P01 = exclusion_violation. A constraint de exclusão no banco é a
// autoridade final contra double-booking; aqui traduzimos a violação
// de volta para um conflito de negócio.
const pgExclusionViolation = "23P01"

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}
