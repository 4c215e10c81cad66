package probe

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/ai-alpha/internal/helper"
	"github.com/tidwall/pretty"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

const summaryTemplate = `
📊 Test Results
{{ repeat 15 "=" }}
Passed: {{ .Passed }}/{{ .Total }}
{{- if .OK }}
{{ success "🎉 All tests passed! AI-Alpha is working correctly." }}

🌐 You can now access:
{{- range .Links }}
   • {{ .Name }}: {{ .URL | trimSuffix "/" }}
{{- end }}
{{- else }}
{{ failure "💥 Some tests failed. Please check the application." }}
   Failed: {{ .Failed | join ", " }}
{{- end }}
`

type link struct {
	Name string
	URL  string
}

var convenienceLinks = []link{
	{Name: "Main API", URL: "/"},
	{Name: "Health Check", URL: "/health"},
	{Name: "Agent Info", URL: "/api/v1/agent"},
	{Name: "API Docs", URL: "/openapi.json"},
}

type summaryData struct {
	Passed int
	Total  int
	OK     bool
	Failed []string
	Links  []link
}

type reportDocument struct {
	BaseURL string   `json:"baseURL"`
	Ready   bool     `json:"ready"`
	Passed  int      `json:"passed"`
	Total   int      `json:"total"`
	OK      bool     `json:"ok"`
	Results []Result `json:"results"`
}

// Reporter renders probe progress and results for an operator.
type Reporter struct {
	out     io.Writer
	format  Format
	verbose bool

	stylePassed    lipgloss.Style
	styleFailed    lipgloss.Style
	styleHighlight lipgloss.Style
	styleBody      lipgloss.Style

	summary *template.Template
}

func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	renderer := lipgloss.NewRenderer(out)

	r := &Reporter{
		out:     out,
		format:  format,
		verbose: verbose,

		stylePassed:    renderer.NewStyle().Foreground(lipgloss.Color("#00B785")).Bold(true),
		styleFailed:    renderer.NewStyle().Foreground(lipgloss.Color("#e1244c")).Bold(true),
		styleHighlight: renderer.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true),
		styleBody:      renderer.NewStyle().PaddingLeft(3),
	}

	funcs := sprig.TxtFuncMap()
	funcs["success"] = func(s string) string { return r.stylePassed.Render(s) }
	funcs["failure"] = func(s string) string { return r.styleFailed.Render(s) }
	r.summary = template.Must(template.New("summary").Funcs(funcs).Parse(summaryTemplate))

	return r
}

func (r *Reporter) text() bool {
	return r.format != FormatJSON
}

// Progress is where polling progress lines go.
func (r *Reporter) Progress() io.Writer {
	if !r.text() {
		return io.Discard
	}
	return r.out
}

func (r *Reporter) Banner() {
	if !r.text() {
		return
	}
	fmt.Fprintln(r.out, "🧪 AI-Alpha Installation Test")
	fmt.Fprintln(r.out, "=============================")
	fmt.Fprintln(r.out, "⏳ Waiting for server to start...")
}

func (r *Reporter) Ready() {
	if !r.text() {
		return
	}
	fmt.Fprintln(r.out, "🚀 Server is running, starting tests...")
	fmt.Fprintln(r.out)
}

func (r *Reporter) TimedOut(baseURL string, budget time.Duration) error {
	if !r.text() {
		return r.writeJSON(reportDocument{BaseURL: baseURL, Results: []Result{}})
	}
	fmt.Fprintln(r.out, r.styleFailed.Render(fmt.Sprintf("❌ Server did not start within %s", budget)))
	fmt.Fprintf(r.out, "💡 Make sure the AI-Alpha application is running at %s\n", baseURL)
	return nil
}

func (r *Reporter) Result(res Result) {
	if !r.text() {
		return
	}

	if res.Passed {
		fmt.Fprintln(r.out, lipgloss.JoinHorizontal(lipgloss.Left,
			r.stylePassed.Render("✅"), " ",
			r.styleHighlight.Render(res.Endpoint), ": ",
			fmt.Sprintf("%d", res.StatusCode),
		))
	} else {
		fmt.Fprintln(r.out, lipgloss.JoinHorizontal(lipgloss.Left,
			r.styleFailed.Render("❌"), " ",
			r.styleHighlight.Render(res.Endpoint), ": ",
			res.Reason,
		))
	}

	if r.verbose && len(res.Body) > 0 {
		fmt.Fprintln(r.out, r.styleBody.Render(formatBody(res.Body)))
	}
}

func (r *Reporter) Summary(s Summary, baseURL string) error {
	if !r.text() {
		return r.writeJSON(reportDocument{
			BaseURL: baseURL,
			Ready:   true,
			Passed:  s.Passed(),
			Total:   s.Total(),
			OK:      s.OK(),
			Results: s.Results,
		})
	}

	links := make([]link, 0, len(convenienceLinks))
	for _, l := range convenienceLinks {
		links = append(links, link{Name: l.Name, URL: helper.JoinURL(baseURL, l.URL)})
	}

	return r.summary.Execute(r.out, summaryData{
		Passed: s.Passed(),
		Total:  s.Total(),
		OK:     s.OK(),
		Failed: s.Failed(),
		Links:  links,
	})
}

func (r *Reporter) writeJSON(doc reportDocument) error {
	out, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.out.Write(pretty.Pretty(out))
	return err
}

func formatBody(body []byte) string {
	if !json.Valid(body) {
		return strings.TrimSpace(string(body))
	}
	return strings.TrimSpace(string(pretty.Color(pretty.Pretty(body), nil)))
}
