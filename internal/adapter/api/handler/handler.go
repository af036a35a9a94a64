package handler

import (
	"sproutswap/internal/usecase"
)

var (
	exchangeHandler     *ExchangeHandler
	chatHandler         *ChatHandler
	notificationHandler *NotificationHandler
	accountHandler      *AccountHandler
	contactHandler      *ContactHandler
)

func Setup(
	exchangeUseCase *usecase.ExchangeUseCase,
	chatUseCase *usecase.ChatUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	accountUseCase *usecase.AccountUseCase,
	contactUseCase *usecase.ContactUseCase,
) {
	exchangeHandler = NewExchangeHandler(exchangeUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	accountHandler = NewAccountHandler(accountUseCase)
	contactHandler = NewContactHandler(contactUseCase)
}

func GetExchangeHandler() *ExchangeHandler {
	return exchangeHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetAccountHandler() *AccountHandler {
	return accountHandler
}

func GetContactHandler() *ContactHandler {
	return contactHandler
}
