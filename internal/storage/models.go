package storage

// document is the on-disk shape of the persisted display order.
type document struct {
	SortOrder []string `json:"sort_order"`
}
