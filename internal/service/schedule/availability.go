package schedule

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// Hold слот, удерживаемый за записью листа ожидания
type Hold struct {
	EntryID   int64
	StartTime types.TimeString
	Holes     domain.Holes
}

// HoldsFromEntries собирает живые на момент now удержания.
// exceptEntryID исключается: запись не конфликтует со своим же удержанием при подтверждении.
func HoldsFromEntries(entries []*domain.WaitlistEntry, now time.Time, exceptEntryID int64) []Hold {
	holds := make([]Hold, 0)
	for _, e := range entries {
		if e.ID == exceptEntryID || !e.IsHolding(now) || e.OfferedStart == nil {
			continue
		}
		holes := domain.Holes9
		if e.OfferedHoles != nil {
			holes = *e.OfferedHoles
		}
		holds = append(holds, Hold{EntryID: e.ID, StartTime: *e.OfferedStart, Holes: holes})
	}
	return holds
}

// occupancy занятые моменты даты по типу занятости
type occupancy struct {
	starts map[int]struct{}
	turns  map[int]struct{}
	held   map[int]struct{}
}

func buildOccupancy(day domain.DaySchedule, bookings []*domain.Booking, holds []Hold) occupancy {
	occ := occupancy{
		starts: make(map[int]struct{}),
		turns:  make(map[int]struct{}),
		held:   make(map[int]struct{}),
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		instants := b.OccupiedInstants(day.TurnDurationMinutes)
		occ.starts[instants[0].Minutes()] = struct{}{}
		if len(instants) > 1 {
			occ.turns[instants[1].Minutes()] = struct{}{}
		}
	}

	for _, h := range holds {
		for _, at := range domain.OccupiedInstants(h.StartTime, h.Holes, day.TurnDurationMinutes) {
			occ.held[at.Minutes()] = struct{}{}
		}
	}

	return occ
}

func (o occupancy) has(set map[int]struct{}, t types.TimeString) bool {
	_, ok := set[t.Minutes()]
	return ok
}

// CheckAvailability решает, можно ли занять start на holes лунок.
//
// Моменты занятости: старт для 9 лунок, старт и старт+turn для 18.
// Конфликт - точное совпадение моментов на сетке, частичные пересечения не моделируются.
func CheckAvailability(day domain.DaySchedule, start types.TimeString, holes domain.Holes, bookings []*domain.Booking, holds []Hold) error {
	if !day.IsOpen() {
		return ErrCourseClosed
	}
	if !holes.IsValid() {
		return ErrInvalidHoles
	}
	if !IsOnGrid(day, start) {
		return ErrInvalidTimeSlot
	}
	if holes == domain.Holes18 && start.IsAfter(LatestStart(day, holes)) {
		return ErrTooLateForDuration
	}

	occ := buildOccupancy(day, bookings, holds)

	// 1. Прямой конфликт по старту
	if occ.has(occ.starts, start) {
		return &ConflictError{Rule: RuleDirect, At: start}
	}
	// 3. На запрошенный старт возвращается чужой 18-луночный раунд
	if occ.has(occ.turns, start) {
		return &ConflictError{Rule: RuleIncomingTurn, At: start}
	}

	instants := domain.OccupiedInstants(start, holes, day.TurnDurationMinutes)
	if holes == domain.Holes18 && len(instants) > 1 {
		turn := instants[1]
		// 2. Свой возврат попадает на чужой старт (или чужой возврат)
		if occ.has(occ.starts, turn) || occ.has(occ.turns, turn) {
			return &ConflictError{Rule: RuleTurnCollision, At: turn}
		}
	}

	for _, at := range instants {
		if occ.has(occ.held, at) {
			return &ConflictError{Rule: RuleHeld, At: at}
		}
	}

	return nil
}
