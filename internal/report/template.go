package report

// ReportTemplate is the HTML template for the sentiment report.
// It is embedded as a Go constant, so reports have no external file
// dependencies.
const ReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2563eb;
    --green: #10b981;
    --gray: #6b7280;
    --red: #ef4444;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 860px;
    margin: 0 auto;
    padding: 20px;
  }
  h1, h2 { font-weight: 600; }
  h1 { font-size: 1.5rem; margin-bottom: 4px; }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  p { margin: 6px 0; }
  .muted { color: var(--muted); font-size: 0.85rem; }

  /* Header */
  .header {
    display: flex;
    justify-content: space-between;
    align-items: flex-start;
    border-bottom: 3px solid var(--accent);
    padding-bottom: 12px;
    margin-bottom: 16px;
  }
  .header-left h1 { color: var(--accent); }
  .header-right { text-align: right; }
  .query-badge {
    display: inline-block;
    background: var(--accent);
    color: white;
    padding: 2px 12px;
    border-radius: 4px;
    font-weight: 700;
    font-size: 1.1rem;
    margin-right: 8px;
  }

  /* Summary bar */
  .summary-bar {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(120px, 1fr));
    gap: 8px;
    background: var(--section-bg);
    padding: 12px;
    border-radius: 8px;
    margin-bottom: 16px;
  }
  .summary-item { text-align: center; }
  .summary-item .label { font-size: 0.75rem; color: var(--muted); text-transform: uppercase; }
  .summary-item .value { font-size: 1rem; font-weight: 600; }
  .summary-item .value.positive { color: var(--green); }
  .summary-item .value.neutral { color: var(--gray); }
  .summary-item .value.negative { color: var(--red); }

  /* Overall verdict box */
  .overall-box {
    display: flex;
    align-items: center;
    justify-content: space-between;
    gap: 16px;
    padding: 16px;
    border-radius: 8px;
    margin: 12px 0;
  }
  .overall-box.positive { background: #d1fae5; border-left: 5px solid var(--green); }
  .overall-box.neutral { background: #f3f4f6; border-left: 5px solid var(--gray); }
  .overall-box.negative { background: #fee2e2; border-left: 5px solid var(--red); }
  .overall-label { font-size: 1.4rem; font-weight: 700; }
  .overall-box.positive .overall-label { color: var(--green); }
  .overall-box.neutral .overall-label { color: var(--gray); }
  .overall-box.negative .overall-label { color: var(--red); }

  /* Headline table */
  table { width: 100%; border-collapse: collapse; margin: 8px 0 16px; font-size: 0.9rem; }
  th { background: var(--section-bg); text-align: left; padding: 8px; font-weight: 600; }
  td { padding: 8px; border-bottom: 1px solid var(--border); }
  td a { color: var(--text); text-decoration: none; }
  td a:hover { color: var(--accent); }
  .badge {
    display: inline-block;
    padding: 1px 8px;
    border-radius: 3px;
    font-size: 0.8rem;
    font-weight: 600;
  }
  .badge.positive { background: #d1fae5; color: var(--green); }
  .badge.neutral { background: #f3f4f6; color: var(--gray); }
  .badge.negative { background: #fee2e2; color: var(--red); }

  /* Chart container */
  .chart-container {
    margin: 12px 0;
    overflow-x: auto;
  }
  .chart-container svg { max-width: 100%; height: auto; }
  .gauge-inline { display: flex; align-items: center; gap: 12px; }
  .gauge-inline svg { flex-shrink: 0; }

  /* Footer */
  .footer {
    margin-top: 30px;
    padding-top: 12px;
    border-top: 2px solid var(--border);
    font-size: 0.8rem;
    color: var(--muted);
    text-align: center;
  }

  @media print {
    body { max-width: 100%; padding: 10px; }
    .section { page-break-inside: avoid; }
  }
</style>
</head>
<body>

<!-- ═══════ HEADER ═══════ -->
<div class="header">
  <div class="header-left">
    <h1><span class="query-badge">{{.Query}}</span> Sentiment Report</h1>
    <p class="muted">{{.WindowLabel}} · {{.Mode}} scan{{if .Provider}} · via {{.Provider}}{{end}}</p>
  </div>
  <div class="header-right">
    <p class="muted">{{.GeneratedAt}}</p>
    <p class="muted">{{.Author}}</p>
  </div>
</div>

<!-- ═══════ SUMMARY BAR ═══════ -->
<div class="summary-bar">
  <div class="summary-item">
    <div class="label">Articles</div>
    <div class="value">{{.Total}}</div>
  </div>
  <div class="summary-item">
    <div class="label">Positive</div>
    <div class="value positive">{{.Positive}}</div>
  </div>
  <div class="summary-item">
    <div class="label">Neutral</div>
    <div class="value neutral">{{.Neutral}}</div>
  </div>
  <div class="summary-item">
    <div class="label">Negative</div>
    <div class="value negative">{{.Negative}}</div>
  </div>
  <div class="summary-item">
    <div class="label">Avg Score</div>
    <div class="value">{{.AverageScore}}</div>
  </div>
</div>

<!-- ═══════ OVERALL ═══════ -->
<div class="section">
  <div class="overall-box {{.OverallClass}}">
    <div>
      <div class="overall-label">{{.Overall}}</div>
      <div class="muted">Overall sentiment across {{.Total}} articles</div>
    </div>
    <div class="gauge-inline">{{.GaugeChart}}</div>
  </div>
</div>

<!-- ═══════ BREAKDOWN CHART ═══════ -->
<div class="section">
  <h2>Breakdown</h2>
  <div class="chart-container">{{.BarChart}}</div>
</div>

<!-- ═══════ HEADLINES ═══════ -->
{{if .Headlines}}
<div class="section">
  <h2>Headlines</h2>
  <table>
    <thead><tr><th>Headline</th><th>Source</th><th>Published</th><th>Sentiment</th><th>Score</th></tr></thead>
    <tbody>
    {{range .Headlines}}
    <tr>
      <td>{{if .URL}}<a href="{{.URL}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</td>
      <td>{{.Source}}</td>
      <td>{{.Published}}</td>
      <td><span class="badge {{.Badge}}">{{.Sentiment}}</span></td>
      <td>{{.Score}}</td>
    </tr>
    {{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ FOOTER ═══════ -->
<div class="footer">
  <p>Sentiment scores are produced by automated lexicon analysis of article text and may misread sarcasm, negation, or nuance.</p>
  <p>Generated by {{.Author}} · {{.GeneratedAt}}</p>
</div>

</body>
</html>`
