package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusAwaiting AppointmentStatus = "awaiting" // Заявка оставлена, ждёт решения владельца
	AppointmentStatusBooked   AppointmentStatus = "booked"   // Записан на конкретные дату и время
	AppointmentStatusDeclined AppointmentStatus = "declined" // Отклонена владельцем
)

// IsTerminal возвращает true для статусов, после которых запись не меняется.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusDeclined
}

type Appointment struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Username    string            `json:"username"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	PhoneNumber string            `json:"phone_number"`
	Date        *time.Time        `json:"date"` // nil пока владелец не назначил дату
	TimeOfDay   string            `json:"time_of_day"`
	RequestedAt time.Time         `json:"requested_at"`
	Comments    string            `json:"comments"`
	Status      AppointmentStatus `json:"status"`

	// ID сообщения-уведомления в чате владельца, чтобы редактировать его
	// после решения по заявке. 0 если уведомление не отправлялось.
	NotifyMessageID int `json:"notify_message_id"`
}
