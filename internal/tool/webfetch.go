package tool

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// WebFetch retrieves a URL for <webfetch url="..."/> and converts HTML
// responses to Markdown before they reach the model.
type WebFetch struct {
	Client  *http.Client
	Limits  Limits
	MaxBody int64
}

func NewWebFetch(timeout time.Duration, limits Limits) *WebFetch {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limits.MaxLines <= 0 {
		limits.MaxLines = 2000
	}
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = 51200
	}
	return &WebFetch{
		Client:  &http.Client{Timeout: timeout},
		Limits:  limits,
		MaxBody: 4 << 20,
	}
}

func (t *WebFetch) Name() string { return "webfetch" }

func (t *WebFetch) Usage() string { return `<webfetch url="https://example.com"/>` }

func (t *WebFetch) Validate(attrs map[string]string) error {
	raw := strings.TrimSpace(attrs["url"])
	if raw == "" {
		return fmt.Errorf("webfetch.url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("webfetch.url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("webfetch.url must use http or https")
	}
	return nil
}

func (t *WebFetch) Execute(ctx context.Context, attrs map[string]string) (Result, error) {
	if err := t.Validate(attrs); err != nil {
		return Result{OK: false, ForModel: err.Error()}, err
	}
	target := strings.TrimSpace(attrs["url"])

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("webfetch failed: %w", err)
	}
	req.Header.Set("User-Agent", "tagclaw/1.0")

	resp, err := t.Client.Do(req)
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("webfetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.MaxBody))
	if err != nil {
		return Result{OK: false, ForModel: err.Error()}, fmt.Errorf("webfetch read failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("webfetch non-success status=%d url=%s", resp.StatusCode, target)
		return Result{OK: false, ForModel: err.Error()}, err
	}

	text := string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		if md, convErr := HTMLToMarkdown(text); convErr == nil {
			text = md
		}
	}

	text, truncLines, truncBytes := ApplyOutputLimits(text, t.Limits)
	return Result{
		OK:             true,
		ForModel:       text,
		ForUser:        fmt.Sprintf("fetched %s (%s)", target, HumanSize(int64(len(body)))),
		TruncatedLines: truncLines,
		TruncatedBytes: truncBytes,
	}, nil
}

// HTMLToMarkdown converts an HTML document to plain Markdown: headings,
// paragraphs, lists, links, and code blocks. Script and style subtrees are
// dropped entirely.
func HTMLToMarkdown(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	renderMarkdown(&b, doc)
	return collapseBlankLines(b.String()), nil
}

func renderMarkdown(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head", "noscript":
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			b.WriteString("\n" + strings.Repeat("#", level) + " " + nodeText(n) + "\n")
			return
		case "a":
			href := attrValue(n, "href")
			text := strings.TrimSpace(nodeText(n))
			if text == "" {
				text = href
			}
			if href != "" {
				fmt.Fprintf(b, "[%s](%s)", text, href)
			} else {
				b.WriteString(text)
			}
			return
		case "li":
			b.WriteString("\n- " + strings.TrimSpace(nodeText(n)))
			return
		case "pre":
			b.WriteString("\n```\n" + strings.TrimRight(nodeText(n), "\n") + "\n```\n")
			return
		case "code":
			b.WriteString("`" + nodeText(n) + "`")
			return
		case "br":
			b.WriteString("\n")
		case "p", "div", "section", "article", "tr":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			b.WriteString(text + " ")
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderMarkdown(b, c)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "section", "article", "ul", "ol", "table":
			b.WriteString("\n")
		}
	}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			blank++
			if blank > 1 {
				continue
			}
			trimmed = ""
		} else {
			blank = 0
		}
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}
