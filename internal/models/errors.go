package models

import "errors"

var (
	// ErrAuthentication отсутствует или неверен заголовок Authorization, токен
	// не прошёл проверку или по нему не найден пользователь.
	ErrAuthentication = errors.New("authentication error")
	// ErrDataStore любая ошибка чтения или записи в хранилище.
	ErrDataStore = errors.New("data store error")
	// ErrCustomerNotFound у пользователя нет клиента в платёжном провайдере.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrUnknownPlan запрошен тариф, для которого не настроена цена.
	ErrUnknownPlan = errors.New("unknown plan")
)
