package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Page is a normalised limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// NewPage clamps limit into [1, MaxLimit] and offset to be non-negative.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// FromToken resolves the page a continuation token points at. An empty
// token starts at offset zero.
func FromToken(limit int, token string) (Page, error) {
	if token == "" {
		return NewPage(limit, 0), nil
	}
	offset, err := DecodeOffsetToken(token)
	if err != nil {
		return Page{}, err
	}
	return NewPage(limit, offset), nil
}

// Next returns the token for the following page, or nil when total is exhausted.
func (p Page) Next(total int64) *string {
	next := p.Offset + p.Limit
	if int64(next) >= total {
		return nil
	}
	token := EncodeOffsetToken(next)
	return &token
}

// EncodeOffsetToken creates an opaque continuation token for an offset.
func EncodeOffsetToken(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte("offset|" + strconv.Itoa(offset)))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken.
func DecodeOffsetToken(token string) (int, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[0] != "offset" {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset parse)")
	}
	return offset, nil
}
