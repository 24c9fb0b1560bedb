package schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

var (
	// ErrInvalidTemplate возвращается, если шаблон нельзя развернуть в сетку стартов
	ErrInvalidTemplate = errors.New("schedule: invalid operating template")

	// ErrCourseClosed возвращается для закрытых и экстренно закрытых дат
	ErrCourseClosed = errors.New("schedule: course is closed on this date")

	// ErrInvalidHoles возвращается для класса раунда, отличного от 9 и 18
	ErrInvalidHoles = errors.New("schedule: holes must be 9 or 18")

	// ErrInvalidTimeSlot возвращается, если время не лежит на сетке стартов
	ErrInvalidTimeSlot = errors.New("schedule: start time is not on the tee sheet")

	// ErrSlotTaken возвращается при конфликте занятых моментов
	ErrSlotTaken = errors.New("schedule: slot taken")

	// ErrTooLateForDuration возвращается, если 18 лунок не успеют завершиться до закрытия
	ErrTooLateForDuration = errors.New("schedule: too late to start an 18-hole round")

	// ErrPeakWindowFull возвращается, если пиковое окно заполнено
	ErrPeakWindowFull = errors.New("schedule: peak window is full")

	// ErrOverflowLocked возвращается для слота overflow-окна, пока предыдущее окно не заполнено
	ErrOverflowLocked = errors.New("schedule: overflow window is locked")
)

// ConflictRule какое правило занятости сработало
type ConflictRule string

const (
	// RuleDirect старт уже занят другим стартом
	RuleDirect ConflictRule = "direct"
	// RuleTurnCollision возврат 18 лунок попадает на чужой старт
	RuleTurnCollision ConflictRule = "turn_collision"
	// RuleIncomingTurn на запрошенный старт возвращается чужой раунд
	RuleIncomingTurn ConflictRule = "incoming_turn"
	// RuleHeld момент удерживается за записью листа ожидания
	RuleHeld ConflictRule = "held"
)

// ConflictError конфликт занятости; errors.Is(err, ErrSlotTaken) == true
type ConflictError struct {
	Rule ConflictRule
	At   types.TimeString
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s at %s", ErrSlotTaken, e.Rule, e.At)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotTaken
}

// PeakFullError заполненное окно; errors.Is(err, ErrPeakWindowFull) == true
type PeakFullError struct {
	WindowID string
	Count    int
	Limit    int
}

func (e *PeakFullError) Error() string {
	return fmt.Sprintf("%v: window=%s %d/%d", ErrPeakWindowFull, e.WindowID, e.Count, e.Limit)
}

func (e *PeakFullError) Unwrap() error {
	return ErrPeakWindowFull
}
