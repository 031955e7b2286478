package models

// Listing holds the display fields of one finance quote page, exactly as
// they appear in the rendered markup.
type Listing struct {
	Name   string `json:"name" yaml:"name"`
	Price  string `json:"price" yaml:"price"`
	Change string `json:"change" yaml:"change"`
}

// Quote pairs a source URL with the listing extracted from it.
type Quote struct {
	URL  string  `json:"url"`
	Data Listing `json:"data"`
}
