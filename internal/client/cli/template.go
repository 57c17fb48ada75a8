package cli

const productListTemplate = `{{range .}}
{{.Name}}  {{if .ExchangeFor}}TROC{{else}}{{price .Price .Currency}}{{end}}{{if not .IsAvailable}}  [unavailable]{{end}}
  Slug:     {{.Slug}}
{{- if .BusinessName}}
  Shop:     {{.BusinessName}}
{{- end}}
{{- if .Location}}
  Location: {{.Location}}
{{- end}}
{{- if .ExchangeFor}}
  Exchange: {{.ExchangeFor}}
{{- end}}
{{- if not .UpdatedAt.IsZero}}
  Updated:  {{ago .UpdatedAt}}
{{- end}}
{{end}}`

const businessTemplate = `
=== {{.Name}} ===

Slug:        {{.Slug}}
{{- if .BusinessType}}
Type:        {{.BusinessType}}
{{- end}}
{{- if .Description}}
Description: {{.Description}}
{{- end}}
{{- if .OwnerPhone}}
WhatsApp:    {{contact .OwnerPhone}}
{{- end}}
Products:    {{.ProductCount}}
Shop URL:    {{shopURL .Slug}}
`

const productTemplate = `
=== Product Details ===

Name:        {{.Name}}
Slug:        {{.Slug}}
{{- if .ExchangeFor}}
Exchange:    {{.ExchangeFor}}
{{- else}}
Price:       {{price .Price .Currency}}
{{- end}}
Available:   {{if .IsAvailable}}yes{{else}}no{{end}}
{{- if .Location}}
Location:    {{.Location}}
{{- end}}
{{- if .Description}}
Description: {{.Description}}
{{- end}}
`
