package probe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/twmb/murmur3"
	htmlparser "golang.org/x/net/html"
)

var errNotJSON = errors.New("response is not JSON")

// evalExpect runs e.Query against the JSON body and renders the first value.
// A missing value (null, no output, query error) is returned as an error.
func evalExpect(e *Expect, body []byte) (string, error) {
	v, err := queryJSON(e.Query, body)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", fmt.Errorf("missing %s", labelOf(e))
	}
	switch t := v.(type) {
	case []any:
		return fmt.Sprintf("%d %s", len(t), labelOf(e)), nil
	case map[string]any:
		return fmt.Sprintf("%d %s", len(t), labelOf(e)), nil
	}
	return labelOf(e) + "=" + scalarString(v), nil
}

// queryJSON decodes body and returns the first value produced by query,
// or nil when the query yields nothing.
func queryJSON(query string, body []byte) (any, error) {
	q, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("bad query %q: %w", query, err)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errNotJSON
	}
	iter := q.Run(doc)
	v, ok := iter.Next()
	if !ok {
		return nil, nil
	}
	if err, ok := v.(error); ok {
		return nil, fmt.Errorf("query %q: %w", query, err)
	}
	return v, nil
}

func labelOf(e *Expect) string {
	if e.Label != "" {
		return e.Label
	}
	return strings.TrimPrefix(e.Query, ".")
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// inspectPage returns the page title (<title>, falling back to og:title) and
// the murmur3 hash of the body.
func inspectPage(body []byte) (title, bodyHash string) {
	bodyHash = fmt.Sprintf("%d", murmur3.Sum32(body))

	doc, err := htmlparser.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", bodyHash
	}

	var htmlTitle, ogTitle string
	var walk func(*htmlparser.Node)
	walk = func(n *htmlparser.Node) {
		if n.Type == htmlparser.ElementNode {
			switch n.Data {
			case "title":
				if htmlTitle == "" && n.FirstChild != nil {
					htmlTitle = n.FirstChild.Data
				}
			case "meta":
				var property, content string
				for _, a := range n.Attr {
					switch a.Key {
					case "property":
						property = a.Val
					case "content":
						content = a.Val
					}
				}
				if property == "og:title" && ogTitle == "" {
					ogTitle = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if t := strings.TrimSpace(htmlTitle); t != "" {
		return t, bodyHash
	}
	return strings.TrimSpace(ogTitle), bodyHash
}
