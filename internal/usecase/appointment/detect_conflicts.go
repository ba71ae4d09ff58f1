package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
)

// detectConflicts valida o lote inteiro de datas candidatas contra as
// duas fontes independentes: agendamentos do barbeiro e bloqueios
// administrativos. Tudo-ou-nada: uma colisão em qualquer candidata
// rejeita o lote antes de qualquer escrita.
//
// allowOverlap tolera apenas conflito agendamento×agendamento
// (double-booking intencional); bloqueio nunca é sobreponível.
func detectConflicts(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	barberID uint,
	dates []time.Time,
	durationMin int,
	allowOverlap bool,
	excludeID uint,
) error {

	var conflicts []domain.Conflict

	for _, date := range dates {
		start := date
		end := date.Add(time.Duration(durationMin) * time.Minute)

		// A janela de busca recua a duração máxima possível: um
		// agendamento que começou antes do candidato ainda pode
		// avançar sobre ele.
		fetchFrom := start.Add(-time.Duration(domain.MaxOverrideDurationMin) * time.Minute)

		existing, err := repo.ListScheduledInWindow(ctx, barberID, fetchFrom, end, excludeID)
		if err != nil {
			return err
		}
		for i := range existing {
			ap := existing[i]
			if !domain.Overlaps(ap.StartTime, ap.EndTime(), start, end) {
				continue
			}
			conflicts = append(conflicts, domain.Conflict{
				Date:          date,
				Kind:          domain.ConflictAppointment,
				AppointmentID: ap.ID,
				ClientName:    ap.Client.Name,
				Start:         ap.StartTime,
				End:           ap.EndTime(),
			})
		}

		blocks, err := repo.ListBlocksForDay(ctx, barbershopID, date)
		if err != nil {
			return err
		}
		for i := range blocks {
			block := blocks[i]
			if !domain.AppliesTo(&block, barberID) {
				continue
			}

			blockStart, blockEnd := domain.BlockInterval(&block, date)
			if !domain.Overlaps(blockStart, blockEnd, start, end) {
				continue
			}

			conflicts = append(conflicts, domain.Conflict{
				Date:    date,
				Kind:    domain.ConflictBlock,
				BlockID: block.ID,
				Reason:  block.Reason,
				Start:   blockStart,
				End:     blockEnd,
			})
		}
	}

	if len(conflicts) == 0 {
		return nil
	}

	report := &domain.ConflictError{Conflicts: conflicts}
	if allowOverlap && !report.HasBlockConflict() {
		return nil
	}
	return report
}
