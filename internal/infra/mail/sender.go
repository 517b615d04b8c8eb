package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

var alertTemplate = template.Must(template.New("lead_alert").Parse(`
<h2>New lead waiting for review</h2>
<p><strong>{{.ContactName}}</strong>{{if .Position}}, {{.Position}}{{end}}{{if .Company}} at {{.Company}}{{end}}</p>
{{if .HasScore}}<p>Relevance score: {{.Score}}/100</p>{{end}}
<p>Open your inbox to review the drafted outreach message.</p>
`))

type alertData struct {
	ContactName string
	Company     string
	Position    string
	HasScore    bool
	Score       int
}

// SendNewLeadAlert emails the lead's owner that a new lead landed in their
// inbox.
func (s *EmailSender) SendNewLeadAlert(to, contactName, company, position string, score *int) error {
	data := alertData{
		ContactName: contactName,
		Company:     company,
		Position:    position,
	}
	if score != nil {
		data.HasScore = true
		data.Score = *score
	}

	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render alert template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", contactName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}
