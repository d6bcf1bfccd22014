package fresco

import "time"

type APIConfig struct {
	BaseURL     string        `env:"FRESCO_API_BASE_URL,default=http://localhost:8080"`
	PageSize    int           `env:"FRESCO_PAGE_SIZE,default=12"`
	HTTPTimeout time.Duration `env:"FRESCO_HTTP_TIMEOUT,default=10s"`
}

type AuthConfig struct {
	CognitoClientID   string `env:"COGNITO_CLIENT_ID"`
	CognitoUserPoolID string `env:"COGNITO_USER_POOL_ID"`
	SessionPath       string `env:"FRESCO_SESSION_PATH,default=.fresco/session.json"`
	EventLogPath      string `env:"FRESCO_EVENT_LOG_PATH"`
}

type ExportConfig struct {
	Path            string `env:"FRESCO_EXPORT_PATH,default=shopping-list.txt"`
	S3Bucket        string `env:"FRESCO_EXPORT_S3_BUCKET"`
	S3Key           string `env:"FRESCO_EXPORT_S3_KEY,default=shopping-list.txt"`
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"SLACK_CHANNEL,default=#groceries"`
}
