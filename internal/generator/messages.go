package generator

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/noopejs/go-rgen/internal/models"
	"github.com/noopejs/go-rgen/internal/naming"
)

const messageTemplates = `
{{- define "conflict" }}{{ .Unit }} for {{ kebab .Name }} already exists, override?{{ end }}
{{- define "unit.start" }}Generating {{ .Unit.Label | lower }} {{ camel .Name }}...{{ end }}
{{- define "unit.done" }}{{ .Unit.Label }} {{ camel .Name }} generated.{{ end }}
{{- define "app.start" }}Generating app {{ kebab .Name }}...{{ end }}
{{- define "app.done" }}Your app {{ kebab .Name }} has been generated successfully.{{ end }}
{{- define "install.start" }}Installing dependencies for {{ kebab .Name }}...{{ end }}
{{- define "install.done" }}Dependencies installed!{{ end }}
{{- define "install.fail" }}An error occurred while installing dependencies.{{ end }}
{{- define "interrupted" }}Generation process interrupted.{{ end }}
{{- define "next" }}cd {{ kebab .Name }}
{{ .DevCommand | default "npm run dev" }}{{ end }}
`

var messages = template.Must(template.New("messages").Funcs(funcMap()).Parse(messageTemplates))

type messageData struct {
	Unit       models.UnitType
	Name       string
	DevCommand string
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["kebab"] = naming.Kebab
	funcs["camel"] = naming.Camel
	funcs["capitalized"] = naming.CapitalizedCamel
	funcs["regular"] = naming.Regularize
	return funcs
}

func message(name string, data messageData) string {
	var buf bytes.Buffer
	if err := messages.ExecuteTemplate(&buf, name, data); err != nil {
		// templates are static; a failure here is a programming error
		panic(err)
	}
	return buf.String()
}
