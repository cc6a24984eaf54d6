package handlers

// Кнопки главного меню. Точный текст кнопки — ключ маршрутизации.
const (
	// Меню владельца
	BtnBookClient  = "📝 Записать клиента"
	BtnShowRecords = "📋 Отобразить записи"
	BtnShowUsers   = "👥 Посмотреть пользователей"
	BtnCalendar    = "🗓 Календарь"

	// Меню клиента
	BtnProcedures   = "💆‍♀️ Виды процедур"
	BtnBookSelf     = "📅 Записаться на процедуру"
	BtnLeaveRequest = "📞 Узнать о свободных слотах"
	BtnSocialMedia  = "🌐 Другие соц сети"

	// Кнопка отправки контакта
	BtnSendPhone = "📞 Отправить номер телефона"
)

// Подписи действий для статистики посещений
const (
	ActionStart        = "start"
	ActionProcedures   = "procedures"
	ActionBooking      = "booking"
	ActionPhoneRequest = "phone_request"
	ActionSocialMedia  = "social_media"
)
