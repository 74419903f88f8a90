package email

// Email - одно исходящее письмо
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
}

// TemplateData - данные для шаблонов писем
type TemplateData map[string]interface{}

// Sender отправляет готовое письмо
type Sender interface {
	Send(email *Email) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// Enabled - без хоста и отправителя письма не отправляются
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.FromEmail != ""
}
