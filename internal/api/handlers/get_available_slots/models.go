package get_available_slots

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TeeTimeService/internal/usecase/get_available_slots"
)

// TeeSheetResponse HTTP response model
type TeeSheetResponse struct {
	Date        string             `json:"date"`
	Status      string             `json:"status"`
	IsHoliday   bool               `json:"isHoliday"`
	Holes       int                `json:"holes"`
	Slots       []TeeSlot          `json:"slots"`
	PeakWindows []PeakWindowStatus `json:"peakWindows"`
}

// TeeSlot стартовое время и его состояние
type TeeSlot struct {
	StartTime       string  `json:"startTime"`
	State           string  `json:"state"`
	Available       bool    `json:"available"`
	PeakWindowID    *string `json:"peakWindowId,omitempty"`
	SuggestWaitlist bool    `json:"suggestWaitlist"`
}

// PeakWindowStatus заполненность пикового окна
type PeakWindowStatus struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Booked         int    `json:"booked"`
	MaxGroups      int    `json:"maxGroups"`
	Reserved       int    `json:"reserved"`
	Full           bool   `json:"full"`
	PrivilegedFull bool   `json:"privilegedFull"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(userID int64, dateStr, holesStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	holes := domain.Holes9
	if holesStr != "" {
		n, err := strconv.Atoi(holesStr)
		if err != nil {
			return nil, fmt.Errorf("%w: holes=%q", handlers.ErrInvalidParam, holesStr)
		}
		holes = domain.Holes(n)
	}

	return &getAvailableSlots.Request{
		UserID: userID,
		Date:   date,
		Holes:  holes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response, holes domain.Holes) *TeeSheetResponse {
	slots := make([]TeeSlot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = TeeSlot{
			StartTime:       s.StartTime.String(),
			State:           string(s.State),
			Available:       s.Available,
			SuggestWaitlist: s.SuggestWaitlist,
		}
		if s.PeakWindowID != "" {
			id := s.PeakWindowID
			slots[i].PeakWindowID = &id
		}
	}

	return &TeeSheetResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		Status:      string(resp.Status),
		IsHoliday:   resp.IsHoliday,
		Holes:       int(holes),
		Slots:       slots,
		PeakWindows: FromWindowStatuses(resp.PeakWindows),
	}
}

// FromWindowStatuses конвертирует заполненность окон
func FromWindowStatuses(windows []getAvailableSlots.PeakWindowStatus) []PeakWindowStatus {
	out := make([]PeakWindowStatus, len(windows))
	for i, w := range windows {
		out[i] = PeakWindowStatus{
			ID:             w.ID,
			Name:           w.Name,
			Start:          w.Start.String(),
			End:            w.End.String(),
			Booked:         w.Booked,
			MaxGroups:      w.MaxGroups,
			Reserved:       w.Reserved,
			Full:           w.Full,
			PrivilegedFull: w.PrivilegedFull,
		}
	}
	return out
}
