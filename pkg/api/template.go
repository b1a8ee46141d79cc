package api

import (
	"html/template"

	"tablero/pkg/board"
)

type boardPage struct {
	Title   string
	Message string
	Error   string
	Stages  []string
	Columns []boardColumn
}

type boardColumn struct {
	Stage string
	Cards []board.Record
}

var boardTemplate = template.Must(template.New("board").Funcs(template.FuncMap{
	"created": createdLabel,
}).Parse(boardHTML))

// createdLabel formats the creation timestamp for display when it
// parsed, and passes the raw cell text through unchanged when it did
// not.
func createdLabel(rec board.Record) string {
	if rec.CreatedAt.IsZero() {
		return rec.Created
	}
	return rec.CreatedAt.Format("02/01/2006 15:04")
}

const boardHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: sans-serif; margin: 1rem 2rem; background: #f5f5f5; }
  header p { color: #555; }
  .flash { padding: .6rem 1rem; border-radius: 4px; margin-bottom: 1rem; }
  .flash.ok { background: #e2f5e2; border: 1px solid #7bc47b; }
  .flash.error { background: #fdecea; border: 1px solid #e57373; }
  .board { display: flex; gap: 1rem; align-items: flex-start; overflow-x: auto; }
  .column { background: #ebebeb; border-radius: 6px; padding: .5rem; min-width: 14rem; flex: 1; }
  .column h2 { font-size: 1rem; text-align: center; }
  .card { background: #fff; border: 1px solid #ddd; border-radius: 4px; padding: .6rem; margin-bottom: .6rem; }
  .card .id { font-weight: bold; }
  .card .meta { color: #777; font-size: .8rem; }
  .card form { margin-top: .4rem; }
</style>
</head>
<body>
<header>
  <h1>📋 {{.Title}}</h1>
  <p>Gestiona el flujo de solicitudes moviendo las tarjetas entre etapas.</p>
</header>
{{if .Message}}<div class="flash ok">{{.Message}}</div>{{end}}
{{if .Error}}<div class="flash error">{{.Error}}</div>{{end}}
<div class="board">
{{- range .Columns}}
  <div class="column">
    <h2>{{.Stage}}</h2>
    {{- $stage := .Stage}}
    {{- range .Cards}}
    <div class="card">
      <div class="id">#{{.ID}}</div>
      <div><strong>{{.Title}}</strong></div>
      <div class="meta">Solicitante: {{.Requester}}</div>
      {{- if .Priority}}
      <div class="meta">Prioridad: {{.Priority}}</div>
      {{- end}}
      {{- if .Created}}
      <div class="meta">Creado: {{created .}}</div>
      {{- end}}
      <form method="post" action="/tickets/{{.ID}}/move">
        <input type="hidden" name="from" value="{{$stage}}">
        <label>Mover a:
          <select name="stage">
            {{- range $.Stages}}
            <option value="{{.}}"{{if eq . $stage}} selected{{end}}>{{.}}</option>
            {{- end}}
          </select>
        </label>
        <button type="submit">Mover</button>
      </form>
    </div>
    {{- end}}
  </div>
{{- end}}
</div>
</body>
</html>
`
