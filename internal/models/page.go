package models

// PageMeta is the pagination block backend list responses carry.
type PageMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// HasMore reports whether another page exists past this one.
func (m *PageMeta) HasMore() bool {
	if m == nil || m.Limit <= 0 {
		return false
	}
	return m.Offset+m.Limit < m.Total
}
