package web

// Page templates for the web dashboard. Kept as one parse unit so every
// page shares the header and footer.
const pageTemplates = `
{{define "header"}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>NextStep: {{.Title}}</title>
<style>
  :root {
    --bg: #100F0F; --surface: #1C1B1A; --border: #403E3C;
    --text: #FFFCF0; --muted: #878580; --dim: #575653;
    --accent: #3AA99F; --green: #879A39; --orange: #DA702C; --red: #D14D41;
  }
  * { box-sizing: border-box; }
  body { background: var(--bg); color: var(--text); font-family: "Helvetica Neue", Arial, sans-serif;
         margin: 0; padding: 0 0 3rem; }
  nav { background: var(--surface); border-bottom: 1px solid var(--border); padding: 0.8rem 1.5rem; }
  nav a { color: var(--muted); text-decoration: none; margin-right: 1.2rem; }
  nav a.active, nav a:hover { color: var(--accent); }
  nav .brand { color: var(--text); font-weight: bold; margin-right: 2rem; }
  main { max-width: 860px; margin: 0 auto; padding: 1.5rem; }
  h1 { font-size: 1.4rem; } h2 { font-size: 1.1rem; color: var(--accent); margin-top: 2rem; }
  .cards { display: flex; gap: 1rem; flex-wrap: wrap; }
  .card { background: var(--surface); border: 1px solid var(--border); border-radius: 8px;
          padding: 1rem 1.4rem; min-width: 150px; }
  .card .num { font-size: 1.6rem; font-weight: bold; }
  .card .label { color: var(--muted); font-size: 0.85rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 0.8rem; }
  th, td { border-bottom: 1px solid var(--border); padding: 0.5rem 0.7rem; text-align: left; }
  th { color: var(--muted); font-weight: normal; font-size: 0.85rem; }
  td.num, th.num { text-align: right; }
  .bar { background: var(--border); border-radius: 4px; height: 8px; width: 140px; display: inline-block; }
  .bar span { background: var(--accent); border-radius: 4px; height: 8px; display: block; }
  form.inline { display: inline; }
  label { display: block; color: var(--muted); margin: 0.8rem 0 0.2rem; }
  input, select { background: var(--bg); color: var(--text); border: 1px solid var(--border);
                  border-radius: 4px; padding: 0.45rem 0.6rem; }
  button { background: var(--accent); color: var(--bg); border: none; border-radius: 4px;
           padding: 0.5rem 1rem; margin-top: 1rem; cursor: pointer; font-weight: bold; }
  button.danger { background: var(--red); color: var(--text); margin: 0; padding: 0.25rem 0.6rem; }
  .notice { background: var(--surface); border-left: 3px solid var(--green); padding: 0.7rem 1rem;
            margin: 1rem 0; }
  .warn { border-left-color: var(--orange); }
  .error { border-left-color: var(--red); }
  .muted { color: var(--muted); }
  .overdue { color: var(--red); }
</style>
</head>
<body>
<nav>
  <a class="brand" href="/">NextStep</a>
  <a href="/" {{if eq .Title "Dashboard"}}class="active"{{end}}>Dashboard</a>
  <a href="/suggest" {{if eq .Title "Instant Mode"}}class="active"{{end}}>Instant Mode</a>
  <a href="/log" {{if eq .Title "Log a Session"}}class="active"{{end}}>Log a Session</a>
  <a href="/sessions" {{if eq .Title "Sessions"}}class="active"{{end}}>Sessions</a>
  <a href="/subjects" {{if eq .Title "Subjects"}}class="active"{{end}}>Subjects</a>
</nav>
<main>
{{if .Notice}}<div class="notice">{{.Notice}}</div>{{end}}
{{if .Error}}<div class="notice error">{{.Error}}</div>{{end}}
{{end}}

{{define "footer"}}
</main>
</body>
</html>
{{end}}

{{define "dashboard"}}
{{template "header" .}}
<h1>Study Dashboard</h1>
{{if eq .Stats.TotalSessions 0}}
  <div class="notice warn">No sessions logged yet. <a href="/log">Log a session</a> to get started.</div>
{{else}}
<div class="cards">
  <div class="card"><div class="num">{{.Stats.TotalSessions}}</div><div class="label">Total sessions</div></div>
  <div class="card"><div class="num">{{.TotalTime}}</div><div class="label">Time studied</div></div>
  <div class="card"><div class="num">{{.Stats.StreakDays}}</div><div class="label">Day streak</div></div>
</div>

<h2>Subject Breakdown</h2>
<table>
  <tr><th>Subject</th><th class="num">Sessions</th><th class="num">Time</th><th class="num">Avg effectiveness</th></tr>
  {{range .Breakdown}}
  <tr>
    <td>{{.Name}}</td>
    <td class="num">{{.Sessions}}</td>
    <td class="num">{{.TotalTime}}</td>
    <td class="num">{{printf "%.1f" .AvgEffectiveness}}</td>
  </tr>
  {{end}}
</table>
{{end}}

<h2>Confidence &amp; Deadlines</h2>
{{if not .Subjects}}
  <div class="notice warn">No subjects configured. Add them on the <a href="/subjects">Subjects</a> page.</div>
{{else}}
<table>
  <tr><th>Subject</th><th>Confidence</th><th>Exam</th></tr>
  {{range .Subjects}}
  <tr>
    <td>{{.Name}}</td>
    <td>
      {{if .Confidence}}
      <span class="bar"><span style="width: {{.ConfidencePct}}%"></span></span>
      {{.Confidence}}/10
      {{else}}<span class="muted">not set</span>{{end}}
    </td>
    <td>{{if .ExamSet}}{{if .Overdue}}<span class="overdue">{{.ExamLabel}}</span>{{else}}{{.ExamLabel}}{{end}}{{else}}<span class="muted">not set</span>{{end}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{if .Ranked}}
<h2>Up Next</h2>
<table>
  <tr><th class="num">#</th><th>Subject</th><th class="num">Score</th><th class="num">Days to exam</th><th class="num">Recent sessions</th></tr>
  {{range $i, $sc := .Ranked}}
  <tr>
    <td class="num">{{inc $i}}</td>
    <td>{{$sc.Subject}}</td>
    <td class="num">{{printf "%.2f" $sc.Score}}</td>
    <td class="num">{{$sc.DaysLeft}}</td>
    <td class="num">{{$sc.RecentSessions}}</td>
  </tr>
  {{end}}
</table>
{{else if .RankError}}
<h2>Up Next</h2>
<div class="notice warn">{{.RankError}}</div>
{{end}}
{{template "footer" .}}
{{end}}

{{define "log"}}
{{template "header" .}}
<h1>Log a Study Session</h1>
{{if not .Subjects}}
  <div class="notice warn">Add subjects on the <a href="/subjects">Subjects</a> page first.</div>
{{else}}
<form method="post" action="/log">
  <label for="subject">Subject</label>
  <select id="subject" name="subject">
    {{range .Subjects}}<option value="{{.Name}}" {{if eq .Name $.Selected}}selected{{end}}>{{.Name}}</option>{{end}}
  </select>

  <label for="duration">Minutes studied</label>
  <input id="duration" name="duration_mins" type="number" min="1" value="{{.DefaultMins}}">

  <label for="task">Task type</label>
  <input id="task" name="task_type" type="text" placeholder="e.g. Flashcards, Essay" value="{{.TaskType}}">

  <label for="effectiveness">Effectiveness (1–10)</label>
  <input id="effectiveness" name="effectiveness" type="number" min="1" max="10" value="5">

  <label for="confidence">Update confidence (1–10, optional)</label>
  <input id="confidence" name="new_confidence" type="number" min="1" max="10" placeholder="leave blank to keep">

  <button type="submit">Log Session</button>
</form>
{{end}}
{{template "footer" .}}
{{end}}

{{define "sessions"}}
{{template "header" .}}
<h1>Past Sessions</h1>
<form method="get" action="/sessions">
  <label for="subject">Subject</label>
  <select id="subject" name="subject">
    <option value="">All</option>
    {{range .Subjects}}<option value="{{.Name}}" {{if eq .Name $.Selected}}selected{{end}}>{{.Name}}</option>{{end}}
  </select>
  <label for="days">Last N days (0 for all)</label>
  <input id="days" name="days" type="number" min="0" value="{{.Days}}">
  <button type="submit">Filter</button>
</form>

{{if not .Sessions}}
  <div class="notice warn">No sessions match.</div>
{{else}}
<table>
  <tr><th>When</th><th>Subject</th><th>Task</th><th class="num">Duration</th><th class="num">Effectiveness</th></tr>
  {{range .Sessions}}
  <tr>
    <td>{{.When}}</td>
    <td>{{.Subject}}</td>
    <td>{{.TaskType}}</td>
    <td class="num">{{.Duration}}</td>
    <td class="num">{{.Effectiveness}}/10</td>
  </tr>
  {{end}}
</table>
{{end}}
{{template "footer" .}}
{{end}}

{{define "subjects"}}
{{template "header" .}}
<h1>Subjects</h1>

{{range .Subjects}}
<h2>{{.Name}}</h2>
<form method="post" action="/subjects/save">
  <input type="hidden" name="name" value="{{.Name}}">
  <label>Confidence (1–10)</label>
  <input name="confidence" type="number" min="1" max="10" value="{{if .Confidence}}{{.Confidence}}{{end}}">
  <label>Exam date</label>
  <input name="exam_date" type="date" value="{{.ExamValue}}">
  <button type="submit">Save</button>
</form>
<form class="inline" method="post" action="/subjects/delete">
  <input type="hidden" name="name" value="{{.Name}}">
  <button class="danger" type="submit">Delete {{.Name}}</button>
</form>
{{end}}

<h2>Add a Subject</h2>
<form method="post" action="/subjects/add">
  <label for="new-name">Name</label>
  <input id="new-name" name="name" type="text">
  <button type="submit">Add Subject</button>
</form>
{{template "footer" .}}
{{end}}

{{define "suggest"}}
{{template "header" .}}
<h1>Instant Mode</h1>
{{if .RankError}}
  <div class="notice warn">{{.RankError}}</div>
{{else}}
<form method="get" action="/suggest">
  <label for="minutes">How many minutes do you have?</label>
  <input id="minutes" name="minutes" type="number" min="5" max="240" value="{{.Minutes}}">
  <label for="energy">Energy level</label>
  <select id="energy" name="energy">
    <option value="low" {{if eq .Energy "low"}}selected{{end}}>low</option>
    <option value="medium" {{if eq .Energy "medium"}}selected{{end}}>medium</option>
    <option value="high" {{if eq .Energy "high"}}selected{{end}}>high</option>
  </select>
  <button type="submit">Suggest a Subject</button>
</form>

{{if .Chosen}}
<div class="notice">Suggestion: revise <strong>{{.Chosen}}</strong>: {{.Task}} for {{.Minutes}} minutes.</div>

<h2>Full Ranking</h2>
<table>
  <tr><th class="num">#</th><th>Subject</th><th class="num">Score</th><th class="num">Days to exam</th></tr>
  {{range $i, $sc := .Ranked}}
  <tr><td class="num">{{inc $i}}</td><td>{{$sc.Subject}}</td><td class="num">{{printf "%.2f" $sc.Score}}</td><td class="num">{{$sc.DaysLeft}}</td></tr>
  {{end}}
</table>

<h2>Log this session</h2>
<form method="post" action="/log">
  <input type="hidden" name="subject" value="{{.Chosen}}">
  <input type="hidden" name="duration_mins" value="{{.Minutes}}">
  <input type="hidden" name="task_type" value="{{.Task}}">
  <label for="s-eff">Effectiveness (1–10)</label>
  <input id="s-eff" name="effectiveness" type="number" min="1" max="10" value="5">
  <label for="s-conf">Update confidence (1–10, optional)</label>
  <input id="s-conf" name="new_confidence" type="number" min="1" max="10" placeholder="leave blank to keep">
  <button type="submit">Log Session</button>
</form>
{{end}}
{{end}}
{{template "footer" .}}
{{end}}
`
