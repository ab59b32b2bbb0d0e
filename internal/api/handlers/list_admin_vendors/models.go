package list_admin_vendors

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/WeddingMarketService/internal/service/vendors/models"
)

const defaultLimit = 50

// parseQuery ?approved=&category=&city=&q=&limit=&offset=
// Без approved возвращаются все вендоры
func parseQuery(q url.Values) (*models.ListVendorsRequest, error) {
	req := &models.ListVendorsRequest{Limit: defaultLimit}

	if v := q.Get("approved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid approved %q: %w", v, err)
		}
		req.Approved = &approved
	}

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		req.Category = &v
	}
	if v := strings.TrimSpace(q.Get("city")); v != "" {
		req.City = &v
	}
	if v := strings.TrimSpace(q.Get("q")); v != "" {
		req.Search = &v
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil || limit == 0 {
			return nil, fmt.Errorf("invalid limit %q", v)
		}
		req.Limit = limit
	}

	if v := q.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid offset %q", v)
		}
		req.Offset = offset
	}

	return req, nil
}
