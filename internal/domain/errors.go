package domain

import "errors"

// ResponseCodeOK — единственный response_code, означающий успех order_find.
const ResponseCodeOK = "100"

var (
	// ErrAPI — сервис ответил, но response_code не равен "100".
	ErrAPI = errors.New("API Error")

	// ErrTransport — сам вызов сервиса не удался (сеть, HTTP-статус, разбор ответа).
	ErrTransport = errors.New("order search transport error")
)
