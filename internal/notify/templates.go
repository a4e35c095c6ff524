package notify

import "strings"

// Template is a notification body with {{placeholder}} fields.
type Template struct {
	Subject string
	Body    string
}

var (
	confirmationTemplate = Template{
		Subject: "Your appointment is confirmed",
		Body: "Dear {{patient_name}}, your appointment with {{doctor_name}} " +
			"on {{date}} at {{time}} is confirmed. Reason: {{reason}}. " +
			"If you need to change it, please call the clinic.",
	}
	cancellationTemplate = Template{
		Subject: "Your appointment was cancelled",
		Body: "Dear {{patient_name}}, your appointment with {{doctor_name}} " +
			"on {{date}} at {{time}} has been cancelled. {{cancellation_note}}",
	}
	reminderTemplate = Template{
		Subject: "Appointment reminder",
		Body: "Dear {{patient_name}}, this is a reminder of your appointment " +
			"with {{doctor_name}} on {{date}} at {{time}}.",
	}
)

// Render substitutes every {{key}} in the template with its value.
func (t Template) Render(data map[string]string) (subject, body string) {
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	r := strings.NewReplacer(pairs...)
	return r.Replace(t.Subject), r.Replace(t.Body)
}
