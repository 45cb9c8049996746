package feed

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Product is the canonical product record after normalization. Price-like
// fields stay as upstream text to avoid float precision and locale loss.
type Product struct {
	ID            *int64   `json:"product_id,omitempty"`
	Title         string   `json:"product_title,omitempty"`
	CategoryName  string   `json:"category_name,omitempty"`
	Price         string   `json:"app_sale_price,omitempty"`
	OriginalPrice string   `json:"original_price,omitempty"`
	Discount      string   `json:"discount,omitempty"`
	Rating        string   `json:"evaluate_rate,omitempty"`
	Orders        int      `json:"lastest_volume"`
	ImageURLs     []string `json:"product_small_image_urls,omitempty"`
	ProductURL    string   `json:"product_url,omitempty"`
	ShopName      string   `json:"shop_name,omitempty"`
	ShopID        *int64   `json:"shop_id,omitempty"`
}

// rawRecord is one upstream product entry with keys folded to lower case,
// values kept as raw JSON so each attribute can be decoded per its own rules.
type rawRecord map[string]json.RawMessage

// Candidate field names per logical attribute, live-API name first. The feed
// has shipped two naming schemes over time; resolution is first match.
var (
	idFields       = []string{"product_id", "id"}
	titleFields    = []string{"product_title", "title"}
	categoryFields = []string{"category_name", "category"}
	priceFields    = []string{"app_sale_price", "price", "sale_price"}
	origPriceField = []string{"original_price"}
	discountFields = []string{"discount"}
	ratingFields   = []string{"evaluate_rate", "rating"}
	ordersFields   = []string{"lastest_volume", "orders"}
	imageFields    = []string{"product_small_image_urls", "image_urls"}
	urlFields      = []string{"product_url", "url"}
	shopNameFields = []string{"shop_name"}
	shopIDFields   = []string{"shop_id"}
)

func (r rawRecord) normalize(includeImages bool) Product {
	p := Product{
		ID:            r.int64Field(idFields),
		Title:         r.stringField(titleFields),
		CategoryName:  r.stringField(categoryFields),
		Price:         r.stringField(priceFields),
		OriginalPrice: r.stringField(origPriceField),
		Discount:      r.stringField(discountFields),
		Rating:        r.stringField(ratingFields),
		Orders:        r.intField(ordersFields),
		ProductURL:    r.stringField(urlFields),
		ShopName:      r.stringField(shopNameFields),
		ShopID:        r.int64Field(shopIDFields),
	}
	if includeImages {
		p.ImageURLs = r.imageField(imageFields)
	}
	if p.Orders < 0 {
		p.Orders = 0
	}
	return p
}

func (r rawRecord) first(names []string) (json.RawMessage, bool) {
	for _, name := range names {
		if raw, ok := r[name]; ok && !isNull(raw) {
			return raw, true
		}
	}
	return nil, false
}

// stringField returns the attribute as text, preserving the original wire
// representation for unquoted values (e.g. a numeric rating 95.5 -> "95.5").
func (r rawRecord) stringField(names []string) string {
	raw, ok := r.first(names)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// int64Field decodes a 64-bit identifier that may arrive as a JSON number or
// a numeric string. Anything else resolves to absent.
func (r rawRecord) int64Field(names []string) *int64 {
	raw, ok := r.first(names)
	if !ok {
		return nil
	}
	text := string(bytes.TrimSpace(raw))
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = strings.TrimSpace(s)
	}
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}

func (r rawRecord) intField(names []string) int {
	if v := r.int64Field(names); v != nil {
		return int(*v)
	}
	return 0
}

// imageField accepts both the live-API wrapper {"string": [...]} and a bare
// array of URL strings.
func (r rawRecord) imageField(names []string) []string {
	raw, ok := r.first(names)
	if !ok {
		return nil
	}

	var wrapped struct {
		String []string `json:"string"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.String != nil {
		return wrapped.String
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		return urls
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeRecords parses the top-level payload, which the feed returns as a
// bare array of records. Keys are folded to lower case so decoding stays
// case-insensitive across feed revisions.
func decodeRecords(body []byte) ([]rawRecord, error) {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}

	records := make([]rawRecord, 0, len(entries))
	for _, entry := range entries {
		rec := make(rawRecord, len(entry))
		for key, value := range entry {
			folded := strings.ToLower(key)
			if _, exists := rec[folded]; exists && key != folded {
				continue
			}
			rec[folded] = value
		}
		records = append(records, rec)
	}
	return records, nil
}
