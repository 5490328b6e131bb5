package mailer

import (
	"bytes"
	"html/template"
)

// Inquiry is the contact form content sent to the site owner.
type Inquiry struct {
	Name            string
	Email           string
	Production      string
	Role            string
	Timeline        string
	Message         string
	ResumeRequested bool
}

const notProvided = "Not provided"

var bodyTemplate = template.Must(template.New("body").Parse(`
<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Production/Project:</strong> {{.Production}}</p>
<p><strong>Role/Opportunity:</strong> {{.Role}}</p>
<p><strong>Timeline:</strong> {{.Timeline}}</p>
<p><strong>Message:</strong> {{.Message}}</p>
{{- if .ResumeRequested}}
<p><strong>Professional Materials Package Requested:</strong> Yes</p>
{{- end}}
`))

func orDefault(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}

// Subject names the sender, or "Unknown" when the name is empty.
func Subject(in Inquiry) string {
	name := in.Name
	if name == "" {
		name = "Unknown"
	}
	return "New Contact Form Submission from " + name
}

// ComposeBody renders the HTML email body. Field values are escaped.
func ComposeBody(in Inquiry) (string, error) {
	view := Inquiry{
		Name:            orDefault(in.Name),
		Email:           orDefault(in.Email),
		Production:      orDefault(in.Production),
		Role:            orDefault(in.Role),
		Timeline:        orDefault(in.Timeline),
		Message:         orDefault(in.Message),
		ResumeRequested: in.ResumeRequested,
	}
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
