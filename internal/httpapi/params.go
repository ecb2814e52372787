package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nhle/workdesk/internal/view"
)

// viewParams are the raw view parameters from a query string or a
// websocket message.
type viewParams struct {
	Type     string `json:"type,omitempty"`
	Search   string `json:"search"`
	Tab      string `json:"tab"`
	Sort     string `json:"sort"`
	Dir      string `json:"dir"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

func viewParamsFromValues(values url.Values) (viewParams, error) {
	page, err := parseIntParam(values.Get("page"), 1)
	if err != nil {
		return viewParams{}, fmt.Errorf("invalid page")
	}
	size, err := parseIntParam(values.Get("page_size"), 0)
	if err != nil {
		return viewParams{}, fmt.Errorf("invalid page_size")
	}
	return viewParams{
		Search:   values.Get("search"),
		Tab:      values.Get("tab"),
		Sort:     values.Get("sort"),
		Dir:      values.Get("dir"),
		Page:     page,
		PageSize: size,
	}, nil
}

// query validates p. Without a sort column the view is newest first.
func (p viewParams) query(defaultPageSize int) (view.Query, error) {
	q := view.Query{
		Search:   p.Search,
		Tab:      p.Tab,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if q.Tab == "" {
		q.Tab = view.TabAll
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}

	switch strings.ToLower(strings.TrimSpace(p.Dir)) {
	case "", "asc":
	case "desc":
		q.Desc = true
	default:
		return view.Query{}, fmt.Errorf("invalid dir %q", p.Dir)
	}

	if p.Sort == "" {
		q.Sort = view.ColDateOfWork
		if p.Dir == "" {
			q.Desc = true
		}
		return q, nil
	}
	col, ok := view.ParseColumn(p.Sort)
	if !ok {
		return view.Query{}, fmt.Errorf("invalid sort column %q", p.Sort)
	}
	q.Sort = col
	return q, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func parseBoolParam(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
