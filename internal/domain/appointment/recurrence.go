package appointment

import "time"

// ===============================
// Recurrence
// ===============================

type RecurrenceType string

const (
	RecurrenceNone     RecurrenceType = "none"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

// Teto duro contra geração desenfreada por entrada malformada
const MaxOccurrences = 52

// RecurrenceSpec governa apenas a geração de datas; o que persiste é o
// conjunto de agendamentos ligados por um grupo.
type RecurrenceSpec struct {
	Type     RecurrenceType
	Interval int
	EndDate  *time.Time
	Count    int
}

func (s RecurrenceSpec) recurring() bool {
	switch s.Type {
	case RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	// tipo desconhecido degrada para data única
	return false
}

// advance aplica o passo da recorrência:
// semanal = +7×intervalo dias, quinzenal = +14 dias fixo,
// mensal = +intervalo meses.
func (s RecurrenceSpec) advance(t time.Time) time.Time {
	interval := s.Interval
	if interval <= 0 {
		interval = 1
	}

	switch s.Type {
	case RecurrenceWeekly:
		return t.AddDate(0, 0, 7*interval)
	case RecurrenceBiweekly:
		return t.AddDate(0, 0, 14)
	case RecurrenceMonthly:
		return t.AddDate(0, interval, 0)
	}
	return t
}

// Occurrences expande data inicial + regra em uma lista ordenada e
// deduplicada de ocorrências, começando pela data inicial.
func Occurrences(start time.Time, spec RecurrenceSpec) []time.Time {
	if !spec.recurring() {
		return []time.Time{start}
	}

	max := 0
	switch {
	case spec.Count > 0:
		max = spec.Count
		if max > MaxOccurrences {
			max = MaxOccurrences
		}

	case spec.EndDate != nil:
		for cur := start; !cur.After(*spec.EndDate) && max < MaxOccurrences; cur = spec.advance(cur) {
			max++
		}

	default:
		// sem contagem e sem data final não há limite definido
		return []time.Time{start}
	}

	dates := make([]time.Time, 0, max)
	seen := make(map[int64]struct{}, max)

	for cur := start; len(dates) < max; cur = spec.advance(cur) {
		if spec.EndDate != nil && cur.After(*spec.EndDate) {
			break
		}
		if _, dup := seen[cur.Unix()]; dup {
			continue
		}
		seen[cur.Unix()] = struct{}{}
		dates = append(dates, cur)
	}

	return dates
}
