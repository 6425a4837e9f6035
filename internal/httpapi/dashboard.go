package httpapi

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ingester</title>
<style>
  body { font-family: ui-monospace, monospace; background: #0b0d10; color: #d6d9dd; margin: 2rem; }
  h1 { font-size: 1.1rem; color: #8fd3ff; }
  .grid { display: grid; grid-template-columns: repeat(3, minmax(140px, 1fr)); gap: 0.75rem; max-width: 720px; }
  .card { background: #14171c; border: 1px solid #262b33; border-radius: 6px; padding: 0.75rem; }
  .card .label { color: #8a8f98; font-size: 0.75rem; text-transform: uppercase; }
  .card .value { font-size: 1.4rem; }
  .ok { color: #6bd98f; }
  .bad { color: #e0686b; }
  table { border-collapse: collapse; margin-top: 1.25rem; width: 100%; max-width: 900px; }
  th, td { text-align: left; padding: 0.35rem 0.6rem; border-bottom: 1px solid #1f232a; font-size: 0.85rem; }
  th { color: #8a8f98; font-weight: normal; }
</style>
</head>
<body>
<h1>biodiversity firehose ingester</h1>
<div class="grid" id="cards"></div>
<table>
  <thead><tr><th>type</th><th>action</th><th>uri</th><th>time</th></tr></thead>
  <tbody id="events"></tbody>
</table>
<script>
function fmtCard(label, value, cls) {
  return '<div class="card"><div class="label">' + label + '</div><div class="value ' + (cls || '') + '">' + value + '</div></div>';
}

async function poll() {
  try {
    const res = await fetch('/api/stats');
    const s = await res.json();
    const cards = [
      fmtCard('connected', s.connected ? 'yes' : 'no', s.connected ? 'ok' : 'bad'),
      fmtCard('cursor', s.cursor ?? '-'),
      fmtCard('uptime (s)', s.uptime_secs),
      fmtCard('occurrences', s.stats.occurrences),
      fmtCard('identifications', s.stats.identifications),
      fmtCard('comments', s.stats.comments),
      fmtCard('interactions', s.stats.interactions),
      fmtCard('likes', s.stats.likes),
      fmtCard('errors', s.stats.errors, s.stats.errors > 0 ? 'bad' : 'ok'),
    ];
    document.getElementById('cards').innerHTML = cards.join('');

    const rows = (s.recentEvents || []).map(function (e) {
      return '<tr><td>' + e.type + '</td><td>' + e.action + '</td><td>' + e.uri + '</td><td>' + e.time + '</td></tr>';
    });
    document.getElementById('events').innerHTML = rows.join('');
  } catch (e) {
    // next poll will retry
  }
}

poll();
setInterval(poll, 2000);
</script>
</body>
</html>
`
