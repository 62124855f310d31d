package omisepay

import "errors"

var (
	// ErrAuthorizeDeclined возвращается, когда платежная система отклонила
	// авторизацию холда (недостаточно средств, карта заблокирована и т.п.)
	ErrAuthorizeDeclined = errors.New("omisepay: authorization declined")

	// ErrHoldNotFound возвращается, когда холд по ссылке не найден
	ErrHoldNotFound = errors.New("omisepay: hold not found")

	// ErrAmountMismatch возвращается при попытке захватить сумму, отличную
	// от авторизованной
	ErrAmountMismatch = errors.New("omisepay: capture amount differs from authorized amount")

	// ErrGateway возвращается при прочих ошибках платежного шлюза
	ErrGateway = errors.New("omisepay: gateway error")
)
