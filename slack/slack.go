package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"mealcart/shopping"
)

// maxTextLen keeps messages under Slack's 40k character limit for the text field.
const maxTextLen = 39000

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	payload, err := json.Marshal(map[string]any{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		if reason := strings.TrimSpace(string(body)); reason != "" {
			return fmt.Errorf("failed to post message: %s: %s", resp.Status, reason)
		}
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}

// PostShoppingList posts the text rendering of l as a preformatted block headed by its recipe names.
func (c *Client) PostShoppingList(ctx context.Context, channel string, l *shopping.List) error {
	return c.PostMessage(ctx, channel, FormatShoppingList(l))
}

// FormatShoppingList builds the Slack message for a list.
func FormatShoppingList(l *shopping.List) string {
	names := make([]string, len(l.Recipes))
	for i, r := range l.Recipes {
		names[i] = l.RecipeName(r.ID)
	}

	text := shopping.RenderAsText(l)
	if text == "" {
		text = "Nothing to buy.\n"
	}
	if len(text) > maxTextLen {
		text = truncate(text, maxTextLen) + "\n(truncated)\n"
	}

	var b strings.Builder
	b.WriteString(":shopping_trolley: *Shopping list*")
	if len(names) > 0 {
		fmt.Fprintf(&b, " for %s", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, " (%d items)\n```\n%s```", l.Len(), text)
	return b.String()
}

// truncate cuts s to at most n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
