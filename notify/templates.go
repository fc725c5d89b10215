package notify

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/princinho/stonevitrine/models"
)

var newMessageTmpl = template.Must(template.New("new_message").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`<h2>Vous avez reçu un nouveau message de contact</h2>
<p><strong>Nom:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Sujet:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
<hr>
<p>Ce message a été envoyé depuis le formulaire de contact de votre site vitrine.</p>
`))

func NewMessagePayload(m models.Message) (Payload, error) {
	var buf bytes.Buffer
	if err := newMessageTmpl.Execute(&buf, m); err != nil {
		return Payload{}, err
	}
	return Payload{Subject: "Nouveau message: " + m.Subject, HTML: buf.String()}, nil
}

// WeeklyReport is the digest sent by the weekly job.
type WeeklyReport struct {
	SiteName            string
	From, To            time.Time
	NewMessages         int64
	UnreadMessages      int64
	PendingTestimonials int64
	Projects            int64
	Collections         int64
	TotalLikes          int64
}

var weeklyReportTmpl = template.Must(template.New("weekly_report").Parse(`<h2>Rapport hebdomadaire {{.SiteName}}</h2>
<p>Du {{.From.Format "02/01/2006"}} au {{.To.Format "02/01/2006"}}</p>
<ul>
<li>Nouveaux messages: {{.NewMessages}}</li>
<li>Messages non lus: {{.UnreadMessages}}</li>
<li>Témoignages en attente: {{.PendingTestimonials}}</li>
<li>Projets: {{.Projects}} ({{.TotalLikes}} j'aime)</li>
<li>Collections: {{.Collections}}</li>
</ul>
`))

func WeeklyReportPayload(r WeeklyReport) (Payload, error) {
	var buf bytes.Buffer
	if err := weeklyReportTmpl.Execute(&buf, r); err != nil {
		return Payload{}, err
	}
	return Payload{Subject: "Rapport hebdomadaire: " + r.SiteName, HTML: buf.String()}, nil
}
