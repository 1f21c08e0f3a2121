package propertyservice

// Property модель объекта размещения из PropertyService.
// Бронирующему сервису нужен только снимок данных для проверки доступности
// и расчёта цены, полная карточка объекта остаётся в каталоге.
type Property struct {
	ID              int64   `json:"id"`
	HostID          int64   `json:"host_id"`
	Title           string  `json:"title"`
	Status          string  `json:"status"` // active, pending_approval, suspended
	MaxGuests       int     `json:"max_guests"`
	NightlyRate     string  `json:"nightly_rate"` // decimal as string
	CleaningFee     string  `json:"cleaning_fee"`
	SecurityDeposit string  `json:"security_deposit"`
	AvailableFrom   string  `json:"available_from"` // YYYY-MM-DD
	AvailableTo     string  `json:"available_to"`
	MinimumStay     int     `json:"minimum_stay"`
	MaximumStay     *int    `json:"maximum_stay,omitempty"`
}

// ErrorResponse модель ошибки от PropertyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
