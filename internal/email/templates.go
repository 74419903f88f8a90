package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const TemplatePaymentReceipt = "payment_receipt"

const paymentReceiptTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.SiteName}}</h2>
  <p>Zdravo {{.Name}},</p>
  <p>Vaša uplata je uspješno primljena.</p>
  <table cellpadding="4">
    <tr><td>Stavka:</td><td><strong>{{.Item}}</strong></td></tr>
    <tr><td>Iznos:</td><td>{{.Amount}} {{.Currency}}</td></tr>
    <tr><td>Broj sesije:</td><td>{{.SessionID}}</td></tr>
  </table>
  <p>Hvala na povjerenju!</p>
</body>
</html>`

// TemplateManager хранит распарсенные html-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	// встроенный шаблон валиден, ошибка тут невозможна
	_ = tm.AddTemplate(TemplatePaymentReceipt, paymentReceiptTemplate)
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
