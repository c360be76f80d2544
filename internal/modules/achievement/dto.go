package achievement

// Input carries multipart form values; nil means the field was not sent.
type Input struct {
	Title       *string
	Description *string
	Date        *string
	Category    *string
	Featured    *string
	Order       *string
}

type ReorderItem struct {
	ID int64 `json:"id"`
}

type ReorderRequest struct {
	Items *[]ReorderItem `json:"items"`
}
