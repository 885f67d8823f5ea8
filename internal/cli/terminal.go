package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	rankStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(4).Align(lipgloss.Right)
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	hintStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("75")).
			Padding(0, 2)
)

// Renderer prints results to a terminal.
type Renderer struct {
	out        io.Writer
	showScores bool
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, showScores bool) *Renderer {
	return &Renderer{out: out, showScores: showScores}
}

// Banner renders the version box shown by -version and at REPL start.
func Banner(version string) string {
	body := titleStyle.Render("goodname") + " " + version + "\n" +
		hintStyle.Render("find words hidden in a description")
	return bannerStyle.Render(body)
}

// Matches prints the ranked matches of one enumeration.
func (r *Renderer) Matches(res *Result) {
	e, matches := res.Enumerator, res.Matches
	if len(matches) == 0 {
		fmt.Fprintln(r.out, hintStyle.Render(fmt.Sprintf("no words found in %q", e.Text())))
		return
	}

	width := 0
	words := make([]string, len(matches))
	descs := make([]string, len(matches))
	for i, m := range matches {
		words[i], descs[i] = e.Format(m)
		width = max(width, len(words[i]))
	}

	var b strings.Builder
	for i, m := range matches {
		b.WriteString(rankStyle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(wordStyle.Render(words[i] + strings.Repeat(" ", width-len(words[i]))))
		b.WriteString("  ")
		b.WriteString(descStyle.Render(descs[i]))
		if r.showScores {
			b.WriteString("  ")
			b.WriteString(scoreStyle.Render(utils.FormatWithCommas(int(m.Score))))
		}
		b.WriteString("\n")
	}
	fmt.Fprint(r.out, b.String())
	fmt.Fprintln(r.out, hintStyle.Render(fmt.Sprintf("%d of %s matches in %v",
		len(matches), utils.FormatWithCommas(res.Total), res.Elapsed.Round(time.Microsecond))))
}

// Suggestions prints prefix lookup results.
func (r *Renderer) Suggestions(prefix string, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(r.out, hintStyle.Render(fmt.Sprintf("no words start with %q", prefix)))
		return
	}
	for i, s := range suggestions {
		fmt.Fprintf(r.out, "%s %s\n", rankStyle.Render(fmt.Sprintf("%d.", i+1)), wordStyle.Render(s.Word))
	}
}

// Info prints a hint line.
func (r *Renderer) Info(format string, args ...any) {
	fmt.Fprintln(r.out, hintStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error line.
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.out, errorStyle.Render("error: "+err.Error()))
}
