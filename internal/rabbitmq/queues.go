package rabbitmq

const (
	CONFIRMATION_MAIL_QUEUE   = "notifications.confirmation_link"
	RESET_PASSWORD_MAIL_QUEUE = "notifications.reset_password_link"
)
