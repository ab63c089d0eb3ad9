package site

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#0f172a;color:#e2e8f0;font-size:14px}
nav{display:flex;gap:12px;padding:8px 16px;background:#1e293b;border-bottom:1px solid #334155;position:sticky;top:0;z-index:10}
nav a{color:#94a3b8;text-decoration:none;padding:2px 8px;border-radius:4px}
nav a.active{background:#334155;color:#f8fafc}
.hint{margin:8px 16px;padding:8px 12px;background:#1e3a8a;border-radius:6px;display:flex;gap:12px;align-items:center}
.hint button{background:#f8fafc;color:#0f172a;border:0;border-radius:4px;padding:2px 10px;cursor:pointer}
.grid{display:grid;position:relative}
.head{position:sticky;top:0;background:#1e293b;font-weight:600;display:flex;align-items:center;justify-content:center;border-bottom:1px solid #334155}
.day{writing-mode:vertical-rl;transform:rotate(180deg);display:flex;align-items:center;justify-content:center;font-weight:700;border-bottom:1px solid #334155;background:#111827}
.time{font-size:12px;color:#94a3b8;padding:2px 6px;border-top:1px solid #1e293b}
.cell{position:relative;border-top:1px solid #1e293b;border-left:1px solid #1e293b}
.ev{position:absolute;overflow:hidden;border-radius:4px;padding:2px 4px;color:#fff;border:1px solid #0f172a;z-index:1}
.ev .t{font-weight:600}
.ev .m{opacity:.8}
.text-xs{font-size:10px}
.text-sm{font-size:12px}
.text-base{font-size:14px}
.list{padding:16px;max-width:720px}
.list h2{margin:16px 0 8px;font-size:16px}
.list li{list-style:none;display:flex;gap:12px;padding:6px 0;border-bottom:1px solid #1e293b}
.list .when{min-width:110px;color:#94a3b8}
.badge{display:inline-block;padding:0 6px;border-radius:8px;font-size:11px;color:#fff}
.dropped{margin:16px;color:#fca5a5;font-size:12px}
</style>
</head>
<body>
<nav>
<a href="/"{{if eq .View "grid"}} class="active"{{end}}>Raster</a>
<a href="/?view=list"{{if eq .View "list"}} class="active"{{end}}>Liste</a>
<a href="/schedule.ics">Kalender</a>
</nav>
{{template "content" .}}
{{if .Dropped}}<p class="dropped">{{.Dropped}} Veranstaltung(en) konnten nicht eingeordnet werden.</p>{{end}}
</body>
</html>{{end}}`

const tmplGrid = `
{{define "content"}}
{{if not .HintDismissed}}
<div class="hint" id="zoom-hint">
<span>Zum Zoomen zwei Finger spreizen oder Strg/Cmd + Mausrad verwenden.</span>
<button type="button" onclick="fetch('/prefs/zoom-hint',{method:'POST'}).then(function(){document.getElementById('zoom-hint').remove()})">OK</button>
</div>
{{end}}
<div class="grid" style="{{.Template}}">
<div class="head" style="grid-row:1;grid-column:1 / span {{.LabelColumns}}"></div>
{{range .Venues}}<div class="head" style="grid-row:1;grid-column:{{.Column}}">{{.Label}}</div>
{{end}}
{{range .Days}}<div class="day" style="grid-row:{{.RowStart}} / {{.RowEnd}};grid-column:1">{{.Day}}</div>
{{end}}
{{range .Rows}}<div class="time" style="grid-row:{{.Row}};grid-column:{{$.TimeColumn}}" data-slot="{{.Slot}}">{{.Label}}</div>
{{range .Cells}}<div class="cell" style="grid-row:{{.Row}};grid-column:{{.Column}}">
{{range .Events}}<div class="ev text-{{.Box.Text}}" style="{{.Box.Style}};background:{{typeColor .Event.Event.Type}}" data-id="{{.Event.Event.ID}}" data-lane="{{.Event.Lane}}" data-lanes="{{.Event.TotalLanes}}">
<div class="t">{{.Event.Event.Title}}</div>
<div class="m">{{.Event.Event.TimeOrDefault}}</div>
</div>
{{end}}</div>
{{end}}{{end}}
</div>
{{end}}`

const tmplList = `
{{define "content"}}
<div class="list">
{{range .Groups}}<h2>{{.Day}}</h2>
<ul>
{{range .Events}}<li data-id="{{.Event.ID}}"><span class="when">{{.Event.TimeOrDefault}}</span><span><strong>{{.Event.Title}}</strong> &middot; {{venueLabel .Event.Venue}}{{if .Event.Type}} <span class="badge" style="background:{{typeColor .Event.Type}}">{{.Event.Type}}</span>{{end}}</span></li>
{{end}}</ul>
{{else}}<p>Noch keine Veranstaltungen.</p>
{{end}}
</div>
{{end}}`
