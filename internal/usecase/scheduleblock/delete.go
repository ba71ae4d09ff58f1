package scheduleblock

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

const (
	ScopeSingle = "single"
	ScopeFuture = "future"
	ScopeAll    = "all"
)

type DeleteBlockInput struct {
	BarbershopID uint
	UserID       uint
	BlockID      uint
	Scope        string
}

type DeleteScheduleBlock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteScheduleBlock(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteScheduleBlock {
	return &DeleteScheduleBlock{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove bloqueios com a mesma semântica de escopo dos grupos
// recorrentes. Bloqueio avulso só suporta o escopo single implícito.
func (uc *DeleteScheduleBlock) Execute(
	ctx context.Context,
	in DeleteBlockInput,
) error {

	block, err := uc.repo.GetBlock(ctx, in.BarbershopID, in.BlockID)
	if err != nil {
		return httperr.ErrBusiness("block_not_found")
	}

	scope := in.Scope
	if scope == "" {
		scope = ScopeSingle
	}

	// Resolve o gerador da família: o próprio pai ou o pai do filho
	parentID := block.ID
	if block.ParentBlockID != nil {
		parentID = *block.ParentBlockID
	} else if !block.IsRecurring {
		scope = ScopeSingle
	}

	switch scope {
	case ScopeSingle:
		if err := uc.repo.DeleteBlock(ctx, block.ID); err != nil {
			return err
		}

	case ScopeFuture:
		from := block.Date
		if err := uc.repo.DeleteFamily(ctx, in.BarbershopID, parentID, &from); err != nil {
			return err
		}

	case ScopeAll:
		if err := uc.repo.DeleteFamily(ctx, in.BarbershopID, parentID, nil); err != nil {
			return err
		}

	default:
		return httperr.ErrBusiness("invalid_scope")
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.UserID,
		Action:       "schedule_block_deleted",
		Entity:       "schedule_block",
		EntityID:     &in.BlockID,
		Metadata:     map[string]any{"scope": scope},
	})

	return nil
}
