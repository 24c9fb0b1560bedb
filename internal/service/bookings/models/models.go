package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// Actor кто выполняет действие: владелец бронирования или персонал поля
type Actor struct {
	UserID int64 `json:"userId"`
	Staff  bool  `json:"staff"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListByDateRequest запрос стартового листа даты
type ListByDateRequest struct {
	Date            time.Time `json:"date"`
	Status          *string   `json:"status,omitempty"`
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListByDateRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	date := r.Date
	filter := domain.BookingsFilter{
		Date:            &date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "07:30"
	Holes           int    `json:"holes"`
	PlayerCount     int    `json:"playerCount"`
	Status          string `json:"status"`
	Privileged      bool   `json:"privileged"`
	WaitlistEntryID *int64 `json:"waitlistEntryId,omitempty"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	CheckedInAt *string `json:"checkedInAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		Holes:           int(b.Holes),
		PlayerCount:     b.PlayerCount,
		Status:          string(b.Status),
		Privileged:      b.Privileged,
		WaitlistEntryID: b.WaitlistEntryID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}
	if b.CheckedInAt != nil {
		checkedInStr := b.CheckedInAt.Format(time.RFC3339)
		resp.CheckedInAt = &checkedInStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusConfirmed, domain.StatusCheckedIn, domain.StatusCancelled:
		return s, nil
	}

	return "", ErrInvalidStatus
}
