package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/bowl"
	"github.com/matzehuels/sightline/pkg/profile"
)

// inspectCommand creates the inspect command for browsing row geometry.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [profile.toml]",
		Short: "Browse per-row geometry in an interactive table",
		Long: `Browse per-row geometry in an interactive table.

The inspect command synthesizes the section and opens a terminal table of
every row: nose position, riser height, eye position, and achieved C-value.
Obstructed rows are highlighted.

Keys: up/down move rows, left/right switch tiers, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := profile.Load(args[0])
			if err != nil {
				return err
			}
			sec, err := prof.Section()
			if err != nil {
				return err
			}
			model := newSectionModel(sec)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// SectionModel is the bubbletea model for browsing section rows.
type SectionModel struct {
	Section *bowl.Section
	Tier    int
	Cursor  int
	Height  int
	Offset  int
}

// newSectionModel creates a section browser starting at tier 0, row 0.
func newSectionModel(sec *bowl.Section) SectionModel {
	return SectionModel{Section: sec, Height: 15}
}

func (m SectionModel) Init() tea.Cmd {
	return nil
}

func (m SectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.tier().RowCount-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "left", "h":
			if m.Tier > 0 {
				m.Tier--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l":
			if m.Tier < len(m.Section.Tiers())-1 {
				m.Tier++
				m.Cursor, m.Offset = 0, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SectionModel) tier() *bowl.Tier {
	return m.Section.Tier(m.Tier)
}

func (m SectionModel) View() string {
	var b strings.Builder

	t := m.tier()
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Tier %d/%d", m.Tier+1, len(m.Section.Tiers()))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ rows  ←/→ tiers  q quit"))
	b.WriteString("\n\n")

	noses := t.NosePoints()
	risers := t.RiserHeights()
	specs := t.Spectators()

	end := m.Offset + m.Height
	if end > t.RowCount {
		end = t.RowCount
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		riser := "—"
		if i < len(risers) {
			riser = fmt.Sprintf("%.3f", risers[i])
		}
		cval := "—"
		if !math.IsNaN(specs[i].CValue) {
			cval = fmt.Sprintf("%.3f", specs[i].CValue)
		}

		status := "clear"
		if !specs[i].Unobstructed {
			status = "obstructed"
		}
		var flags []string
		if specs[i].SuperRiser {
			flags = append(flags, "super")
		}
		if specs[i].Vomitory {
			flags = append(flags, "vom")
		}
		if len(flags) > 0 {
			status += " " + strings.Join(flags, "+")
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.3f", noses[i].H),
			fmt.Sprintf("%.3f", noses[i].V),
			riser,
			fmt.Sprintf("%.3f", specs[i].SeatedEye.V),
			cval,
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Row", "Nose H", "Nose V", "Riser", "Eye V", "C-value", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(specs) {
				return lipgloss.NewStyle()
			}
			if !specs[actualIdx].Unobstructed {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [row %d/%d]", m.Cursor+1, t.RowCount)))

	return b.String()
}
