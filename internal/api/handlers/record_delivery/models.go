package record_delivery

// DeliveryReport отчет шлюза уведомлений о доставке предложения
type DeliveryReport struct {
	Sent *bool `json:"sent" validate:"required"`
}
