package reporting

import (
	"fmt"
	"os"
	"time"

	"wifiwarden/internal/detect"
)

// GenerateSessionReport writes a report of the session's alerts and window
// history. Currently supports "html" format.
func GenerateSessionReport(evaluator *detect.Evaluator, alerts *detect.AlertLog, format string) (string, error) {
	if format != "html" {
		return "", fmt.Errorf("unsupported format: %s", format)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("report_%s.html", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	allAlerts := alerts.All()
	summaries := evaluator.Summaries()

	var uptime time.Duration
	if len(summaries) > 0 {
		uptime = summaries[len(summaries)-1].Uptime
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>wifiwarden Session Report - %s</title>
    <style>
        body { font-family: sans-serif; margin: 20px; color: #333; }
        h1, h2 { color: #2c3e50; }
        table { width: 100%%; border-collapse: collapse; margin-bottom: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .summary { background: #eef; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .alert { color: #d9534f; font-weight: bold; }
    </style>
</head>
<body>
    <h1>wifiwarden Session Report</h1>
    <div class="summary">
        <p><strong>Date:</strong> %s</p>
        <p><strong>Uptime:</strong> %s</p>
        <p><strong>Windows evaluated:</strong> %d</p>
    </div>

    <h2>Alerts</h2>
    <table>
        <thead>
            <tr>
                <th>Time</th>
                <th>Kind</th>
                <th>Source</th>
                <th>Message</th>
            </tr>
        </thead>
        <tbody>
`, timestamp, time.Now().Format(time.RFC1123), uptime.Truncate(time.Second), len(summaries))

	if len(allAlerts) == 0 {
		html += "            <tr><td colspan=\"4\">No alerts triggered during this session.</td></tr>\n"
	} else {
		for _, alert := range allAlerts {
			html += fmt.Sprintf("            <tr><td>%s</td><td class=\"alert\">%s</td><td>%s</td><td>%s</td></tr>\n",
				alert.Timestamp.Format("15:04:05"), alert.Kind, alert.Source, alert.Message)
		}
	}

	html += `        </tbody>
    </table>

    <h2>Window History</h2>
    <table>
        <thead>
            <tr>
                <th>Time</th>
                <th>Channel</th>
                <th>Deauth</th>
                <th>Beacon</th>
                <th>Probe</th>
                <th>Hidden SSID</th>
                <th>Unique MACs</th>
                <th>Randomized</th>
            </tr>
        </thead>
        <tbody>
`

	if len(summaries) == 0 {
		html += "            <tr><td colspan=\"8\">No windows completed.</td></tr>\n"
	} else {
		for _, s := range summaries {
			mode := "lock"
			if s.Channel.Hopping {
				mode = "hop"
			}
			html += fmt.Sprintf("            <tr><td>%s</td><td>%d (%s)</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d%%</td></tr>\n",
				s.Timestamp.Format("15:04:05"), s.Channel.Channel, mode,
				s.Deauth, s.Beacon, s.Probe, s.Hidden, s.UniqueAddresses, s.RandomizedPct)
		}
	}

	html += `        </tbody>
    </table>
</body>
</html>`

	_, err = file.WriteString(html)
	if err != nil {
		return "", err
	}

	return filename, nil
}
