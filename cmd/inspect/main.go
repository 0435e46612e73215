// Command inspect is a local terminal pretty-printer for a Snapshot
// document: `inspect snapshot.json` renders the game's players,
// resources and any pending request. It is a read-only collaborator,
// outside the engine's own scope — it never calls Execute, only
// to_data's output.
//
// Grounded on the teacher's cmd/cli/ui.go: lipgloss panel styling sized
// against the real terminal width via golang.org/x/term, the same
// two-dependency pairing.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/hexclash/engine/internal/game"
	"github.com/hexclash/engine/internal/playerstate"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#10B981")
	mutedColor   = lipgloss.Color("#94A3B8")
	warningColor = lipgloss.Color("#F59E0B")

	headerStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	valueStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	pendStyle  = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <snapshot.json>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		fmt.Fprintln(os.Stderr, "invalid snapshot:", err)
		os.Exit(1)
	}

	width := terminalWidth()
	fmt.Println(render(snap, width))
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		var w int
		if _, err := fmt.Sscanf(cols, "%d", &w); err == nil && w > 0 {
			return w
		}
	}
	return 80
}

func render(snap game.Snapshot, width int) string {
	style := panelStyle
	if width > 20 {
		style = style.Width(width - 4)
	}

	header := headerStyle.Render(fmt.Sprintf("Game %s — %s (round %d)", snap.ID, snap.Status, snap.Turn.Round))
	var lines []string
	lines = append(lines, header, "")

	for _, p := range snap.Players {
		lines = append(lines, renderPlayer(p))
	}

	if snap.Pending != nil {
		lines = append(lines, "", pendStyle.Render(fmt.Sprintf("pending: %s request for player %d", snap.Pending.Kind, snap.Pending.PlayerIndex)))
	}
	for _, frame := range snap.EventFrames {
		lines = append(lines, pendStyle.Render(fmt.Sprintf("persistent event: %s (current player %d)", frame.EventType, frame.CurrentPlayer)))
	}

	body := ""
	for i, l := range lines {
		if i > 0 {
			body += "\n"
		}
		body += l
	}
	return style.Render(body)
}

func renderPlayer(p *playerstate.Player) string {
	res := p.Resources
	return fmt.Sprintf("%s  %s: food=%d wood=%d ore=%d ideas=%d gold=%d mood_tokens=%d culture_tokens=%d  %s %d cities, %d units",
		valueStyle.Render(fmt.Sprintf("P%d", p.Index)),
		labelStyle.Render(p.Civilization),
		res.Food, res.Wood, res.Ore, res.Ideas, res.Gold, res.MoodTokens, res.CultureToken,
		labelStyle.Render("|"),
		len(p.Cities), len(p.Units),
	)
}
