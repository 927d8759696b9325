package handler

import (
	"griyapasar/internal/usecase"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	providerHandler     *ProviderHandler
	propertyHandler     *PropertyHandler
	projectHandler      *ProjectHandler
	notificationHandler *NotificationHandler
	chatHandler         *ChatHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	providerUseCase *usecase.ProviderUseCase,
	propertyUseCase *usecase.PropertyUseCase,
	projectUseCase *usecase.ProjectUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	chatUseCase *usecase.ChatUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	providerHandler = NewProviderHandler(providerUseCase)
	propertyHandler = NewPropertyHandler(propertyUseCase)
	projectHandler = NewProjectHandler(projectUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	chatHandler = NewChatHandler(chatUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProviderHandler() *ProviderHandler {
	return providerHandler
}

func GetPropertyHandler() *PropertyHandler {
	return propertyHandler
}

func GetProjectHandler() *ProjectHandler {
	return projectHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}
