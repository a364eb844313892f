package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/gamedeck/internal/domain"
	"github.com/mmcdole/gamedeck/internal/images"
	"github.com/mmcdole/gamedeck/internal/tui/styles"
)

// InsightsStatus tracks the AI analysis of the displayed game
type InsightsStatus int

const (
	InsightsIdle InsightsStatus = iota
	InsightsLoading
	InsightsReady
	InsightsFailed
)

// Layout constants for the inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector shows the full record of one game plus its AI insights
type Inspector struct {
	summary  domain.GameSummary
	detail   *domain.GameDetail
	loading  bool
	err      error
	favorite bool

	insights       *domain.Insights
	insightsStatus InsightsStatus
	insightsErr    string

	images *images.Optimizer

	width      int
	height     int
	offset     int
	maxVisible int
}

// NewInspector creates an inspector that rewrites image links through opt
func NewInspector(opt *images.Optimizer) Inspector {
	if opt == nil {
		opt = images.NewOptimizer("")
	}
	return Inspector{images: opt}
}

// Show starts displaying game from its listing record while the full
// record loads.
func (i *Inspector) Show(game domain.GameSummary) {
	i.summary = game
	i.detail = nil
	i.loading = true
	i.err = nil
	i.insights = nil
	i.insightsStatus = InsightsIdle
	i.insightsErr = ""
	i.offset = 0
}

// GameID returns the ID of the displayed game
func (i Inspector) GameID() int {
	return i.summary.ID
}

// Detail returns the loaded record, or nil while loading or after a failure
func (i Inspector) Detail() *domain.GameDetail {
	return i.detail
}

func (i *Inspector) SetDetail(d *domain.GameDetail) {
	i.detail = d
	i.summary = d.GameSummary
	i.loading = false
	i.err = nil
}

func (i *Inspector) SetError(err error) {
	i.loading = false
	i.err = err
}

func (i *Inspector) SetFavorite(favorite bool) {
	i.favorite = favorite
}

func (i *Inspector) SetInsightsLoading() {
	i.insightsStatus = InsightsLoading
	i.insightsErr = ""
}

func (i *Inspector) SetInsights(ins *domain.Insights) {
	i.insights = ins
	i.insightsStatus = InsightsReady
}

func (i *Inspector) SetInsightsError(msg string) {
	i.insightsStatus = InsightsFailed
	i.insightsErr = msg
}

func (i Inspector) InsightsStatus() InsightsStatus {
	return i.insightsStatus
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// title line and blank line
	i.maxVisible = height - InspectorBorderHeight - InspectorScrollIndicators - 2
	if i.maxVisible < 1 {
		i.maxVisible = 1
	}
}

// ScrollDown moves the body down n lines; View clamps the offset.
func (i *Inspector) ScrollDown(n int) {
	i.offset += n
}

func (i *Inspector) ScrollUp(n int) {
	i.offset = max(i.offset-n, 0)
}

// View renders the component
func (i Inspector) View() string {
	style := styles.ActiveBorder

	// Border takes 2 chars, leave 1 char safety margin
	contentWidth := max(i.width-3, 10)
	content := i.render(contentWidth)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Game", contentWidth))

	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := max(i.maxVisible-len(headerLines)-len(footerLines), 1)

	maxOffset := max(len(bodyLines)-availableForBody, 0)
	offset := min(i.offset, maxOffset)
	end := min(offset+availableForBody, len(bodyLines))
	visibleBody := bodyLines[offset:end]

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, ""}
	if content.header != "" {
		parts = append(parts, headerLines...)
	}
	parts = append(parts, up)
	parts = append(parts, visibleBody...)
	for j := len(visibleBody); j < availableForBody; j++ {
		parts = append(parts, "")
	}
	parts = append(parts, down)
	if content.footer != "" {
		parts = append(parts, footerLines...)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (i Inspector) render(width int) inspectorContent {
	if i.summary.ID == 0 {
		return inspectorContent{body: styles.DimStyle.Render("No game selected")}
	}
	return inspectorContent{
		header: i.renderHeader(width),
		body:   i.renderBody(width),
		footer: i.renderFooter(),
	}
}

func (i Inspector) renderHeader(width int) string {
	g := i.summary
	var b strings.Builder

	title := g.Name
	if i.favorite {
		title = styles.FavoriteStyle.Render(styles.FavoriteChar) + " " + title
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))
	b.WriteString("\n")

	var meta []string
	if g.Released != "" {
		meta = append(meta, g.Released)
	}
	if r := styles.Rating(g.Rating); r != "" {
		meta = append(meta, r)
	}
	if m := styles.Metacritic(g.Metacritic); m != "" {
		meta = append(meta, "Metacritic "+m)
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, styles.DimStyle.Render(" · ")))
		b.WriteString("\n")
	}

	if genres := g.GenreNames(); genres != "" {
		b.WriteString(field("Genres", genres, width))
	}
	if platforms := g.PlatformNames(); platforms != "" {
		b.WriteString(field("Platforms", platforms, width))
	}
	if i.detail != nil {
		if devs := i.detail.DeveloperNames(); devs != "" {
			b.WriteString(field("Developers", devs, width))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func field(label, value string, width int) string {
	return styles.DimStyle.Render(label+": ") +
		styles.SubtitleStyle.Render(styles.Truncate(value, width-len(label)-2)) + "\n"
}

func (i Inspector) renderBody(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	if i.loading {
		return styles.DimStyle.Render("Loading details...")
	}
	if i.err != nil {
		return styles.ErrorStyle.Render(wrap.Render("Could not load details: " + i.err.Error()))
	}
	d := i.detail
	if d == nil {
		return ""
	}

	var sections []string

	desc := d.DescriptionRaw
	if desc == "" {
		desc = d.Description
	}
	if desc != "" {
		sections = append(sections, styles.SubtitleStyle.Render(wrap.Render(desc)))
	}

	if d.BackgroundImage != "" {
		sections = append(sections, section("Artwork",
			styles.DimStyle.Render(i.images.URL(d.BackgroundImage, images.Hero))))
	}

	if len(d.Screenshots) > 0 {
		lines := make([]string, 0, len(d.Screenshots))
		for _, s := range d.Screenshots {
			lines = append(lines, styles.DimStyle.Render(i.images.URL(s.ImageURL, images.Screenshot)))
		}
		sections = append(sections, section(fmt.Sprintf("Screenshots (%d)", len(d.Screenshots)), strings.Join(lines, "\n")))
	}

	if len(d.Videos) > 0 {
		lines := make([]string, 0, len(d.Videos))
		for _, v := range d.Videos {
			lines = append(lines, styles.SubtitleStyle.Render(v.Name)+"\n  "+styles.DimStyle.Render(v.StreamURL))
		}
		sections = append(sections, section("Trailers", strings.Join(lines, "\n")))
	}

	if len(d.Stores) > 0 {
		names := make([]string, 0, len(d.Stores))
		for _, s := range d.Stores {
			names = append(names, s.Name)
		}
		sections = append(sections, section("Stores", styles.SubtitleStyle.Render(wrap.Render(strings.Join(names, ", ")))))
	}

	if d.Website != "" {
		sections = append(sections, section("Website", styles.AccentStyle.Render(d.Website)))
	}

	sections = append(sections, section("AI Insights", i.renderInsights(width)))

	return strings.Join(sections, "\n\n")
}

func section(title, body string) string {
	return styles.SectionStyle.Render(title) + "\n" + body
}

func (i Inspector) renderInsights(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	switch i.insightsStatus {
	case InsightsIdle:
		return styles.DimStyle.Render("Press a to analyze this game")
	case InsightsLoading:
		return styles.SpinnerStyle.Render("Analyzing...")
	case InsightsFailed:
		return styles.ErrorStyle.Render(wrap.Render(i.insightsErr))
	}

	ins := i.insights
	if ins == nil {
		return styles.DimStyle.Render("No insights")
	}
	var b strings.Builder
	a := ins.Analysis
	for _, kv := range [][2]string{
		{"Sentiment", a.Sentiment},
		{"Difficulty", a.Difficulty},
		{"Replayability", a.Replayability},
		{"Audience", a.TargetAudience},
	} {
		if kv[1] != "" {
			b.WriteString(field(kv[0], kv[1], width))
		}
	}

	if len(ins.Summary.Pros) > 0 {
		b.WriteString("\n" + styles.SuccessStyle.Render("Pros") + "\n")
		b.WriteString(bullets(ins.Summary.Pros, wrap))
	}
	if len(ins.Summary.Cons) > 0 {
		b.WriteString("\n" + styles.ErrorStyle.Render("Cons") + "\n")
		b.WriteString(bullets(ins.Summary.Cons, wrap))
	}
	if len(ins.Tips) > 0 {
		b.WriteString("\n" + styles.AccentStyle.Render("Tips") + "\n")
		b.WriteString(bullets(ins.Tips, wrap))
	}
	if len(ins.Tricks) > 0 {
		b.WriteString("\n" + styles.AccentStyle.Render("Tricks") + "\n")
		b.WriteString(bullets(ins.Tricks, wrap))
	}
	for _, rec := range ins.Recommendations {
		b.WriteString("\n" + styles.AccentStyle.Render(rec.Name) + "\n")
		b.WriteString(styles.SubtitleStyle.Render(wrap.Render(strings.Join(rec.Games, ", "))) + "\n")
		if rec.Reason != "" {
			b.WriteString(styles.DimStyle.Render(wrap.Render(rec.Reason)) + "\n")
		}
	}
	if ins.Summary.Verdict != "" {
		b.WriteString("\n" + styles.TitleStyle.Render(wrap.Render(ins.Summary.Verdict)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func bullets(items []string, wrap lipgloss.Style) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(wrap.Render("• "+it) + "\n")
	}
	return b.String()
}

func (i Inspector) renderFooter() string {
	hint := func(k, desc string) string {
		return styles.HelpKeyStyle.Render(k) + " " + styles.HelpDescStyle.Render(desc)
	}
	return strings.Join([]string{
		hint("space", "favorite"),
		hint("a", "insights"),
		hint("esc", "back"),
	}, "  ")
}
