package offer

import "errors"

var (
	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("offer.repository: offer not found")

	// ErrDuplicateCode возвращается при создании оффера с существующим кодом
	ErrDuplicateCode = errors.New("offer.repository: offer code already exists")

	// ErrUsageLimitReached возвращается, когда лимит использований исчерпан
	ErrUsageLimitReached = errors.New("offer.repository: offer usage limit reached")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("offer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("offer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("offer.repository: failed to scan row")
)
